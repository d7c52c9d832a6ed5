package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/google/uuid"

	"triviasnake/internal/model"
	"triviasnake/internal/repository"
)

// Moderator gates adventure persistence on a content verdict.
type Moderator interface {
	Moderate(ctx context.Context, content string) model.ModerationVerdict
}

// SubmitAdventureInput carries a new or updated adventure from the
// client. Image is a data-URI encoded string; on update it may be empty
// to keep the existing cover image.
type SubmitAdventureInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Image       string           `json:"image"`
	Questions   []model.Question `json:"questions"`
	CreatedBy   string           `json:"createdBy"`
	Genre       string           `json:"genre"`
}

// AdventureService owns the submission pipeline: validate, moderate,
// store the image, persist the adventure. Moderation strictly precedes
// any write; a rejected submission leaves no blob and no catalog entry.
type AdventureService struct {
	repo      repository.AdventureRepo
	images    repository.ImageStore
	moderator Moderator
}

// NewAdventureService creates a new adventure service
func NewAdventureService(repo repository.AdventureRepo, images repository.ImageStore, moderator Moderator) *AdventureService {
	return &AdventureService{
		repo:      repo,
		images:    images,
		moderator: moderator,
	}
}

// Submit runs the full creation pipeline and returns the persisted
// adventure with verificationStatus=verified.
func (s *AdventureService) Submit(ctx context.Context, input SubmitAdventureInput) (*model.Adventure, error) {
	if err := validateAdventureInput(input, true); err != nil {
		return nil, err
	}
	if err := s.moderate(ctx, input); err != nil {
		return nil, err
	}

	contentType, data, err := decodeImagePayload(input.Image)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}

	id := uuid.New().String()
	imageURL, err := s.images.Put(ctx, uuid.New().String(), contentType, data)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	adventure := &model.Adventure{
		ID:                 id,
		Name:               input.Name,
		Description:        input.Description,
		ImageURL:           imageURL,
		Questions:          input.Questions,
		CreatedBy:          input.CreatedBy,
		Genre:              input.Genre,
		VerificationStatus: model.VerificationVerified,
	}
	if err := s.repo.Create(ctx, adventure); err != nil {
		// The blob is already stored at this point; the stores offer no
		// cross-resource transaction, so the orphan is reported, not hidden.
		return nil, fmt.Errorf("save adventure (stored image %s is orphaned): %w", imageURL, err)
	}
	return adventure, nil
}

// Get returns one adventure by id.
func (s *AdventureService) Get(ctx context.Context, id string) (*model.Adventure, error) {
	adventure, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if adventure == nil {
		return nil, ErrAdventureNotFound
	}
	return adventure, nil
}

// List returns all adventures in the catalog.
func (s *AdventureService) List(ctx context.Context) ([]*model.Adventure, error) {
	adventures, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if adventures == nil {
		adventures = []*model.Adventure{}
	}
	return adventures, nil
}

// Update replaces the mutable fields of an existing adventure. Updated
// content goes through the same moderation gate as new submissions. An
// absent image payload keeps the current cover image.
func (s *AdventureService) Update(ctx context.Context, id string, input SubmitAdventureInput) (*model.Adventure, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrAdventureNotFound
	}

	if err := validateAdventureInput(input, false); err != nil {
		return nil, err
	}
	if err := s.moderate(ctx, input); err != nil {
		return nil, err
	}

	imageURL := existing.ImageURL
	oldImageURL := ""
	if input.Image != "" {
		contentType, data, err := decodeImagePayload(input.Image)
		if err != nil {
			return nil, fmt.Errorf("decode image payload: %w", err)
		}
		imageURL, err = s.images.Put(ctx, uuid.New().String(), contentType, data)
		if err != nil {
			return nil, fmt.Errorf("store image: %w", err)
		}
		oldImageURL = existing.ImageURL
	}

	updated := &model.Adventure{
		ID:                 existing.ID,
		Name:               input.Name,
		Description:        input.Description,
		ImageURL:           imageURL,
		Questions:          input.Questions,
		CreatedBy:          input.CreatedBy,
		Genre:              input.Genre,
		VerificationStatus: model.VerificationVerified,
		CreatedAt:          existing.CreatedAt,
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	if oldImageURL != "" {
		if err := s.images.Delete(ctx, path.Base(oldImageURL)); err != nil {
			log.Printf("delete replaced image %s: %v", oldImageURL, err)
		}
	}
	return updated, nil
}

// Delete removes an adventure and its cover image.
func (s *AdventureService) Delete(ctx context.Context, id string) error {
	adventure, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if adventure == nil {
		return ErrAdventureNotFound
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrAdventureNotFound
	}

	if adventure.ImageURL != "" {
		if err := s.images.Delete(ctx, path.Base(adventure.ImageURL)); err != nil {
			log.Printf("delete image for adventure %s: %v", id, err)
		}
	}
	return nil
}

// Image returns the stored cover image bytes and content type.
func (s *AdventureService) Image(ctx context.Context, id string) ([]byte, string, error) {
	return s.images.Get(ctx, id)
}

func (s *AdventureService) moderate(ctx context.Context, input SubmitAdventureInput) error {
	serialized, err := json.Marshal(input.Questions)
	if err != nil {
		return fmt.Errorf("serialize questions for moderation: %w", err)
	}
	content := strings.Join([]string{input.Name, input.Description, string(serialized)}, "\n")

	verdict := s.moderator.Moderate(ctx, content)
	if !verdict.IsAppropriate {
		return &ModerationError{Reason: verdict.Reason}
	}
	return nil
}

func validateAdventureInput(input SubmitAdventureInput, imageRequired bool) error {
	if strings.TrimSpace(input.Name) == "" {
		return invalidInput("name is required")
	}
	if imageRequired && input.Image == "" {
		return invalidInput("image is required")
	}
	if len(input.Questions) == 0 {
		return invalidInput("at least one question is required")
	}
	for _, q := range input.Questions {
		if err := q.Validate(); err != nil {
			return invalidInput("%s", err.Error())
		}
	}
	if strings.TrimSpace(input.CreatedBy) == "" {
		return invalidInput("createdBy is required")
	}
	if strings.TrimSpace(input.Genre) == "" {
		return invalidInput("genre is required")
	}
	return nil
}

// decodeImagePayload splits a data-URI style string ("data:image/png;base64,...")
// into its content type and decoded bytes. The payload is everything
// after the first comma.
func decodeImagePayload(payload string) (string, []byte, error) {
	idx := strings.Index(payload, ",")
	if idx < 0 {
		return "", nil, fmt.Errorf("image payload is not a data URI")
	}

	contentType := "image/png"
	header := payload[:idx]
	if rest, ok := strings.CutPrefix(header, "data:"); ok {
		if ct, _, found := strings.Cut(rest, ";"); found && ct != "" {
			contentType = ct
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload[idx+1:])
	if err != nil {
		return "", nil, fmt.Errorf("base64 decode: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("image payload is empty")
	}
	return contentType, data, nil
}
