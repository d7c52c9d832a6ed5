package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"triviasnake/internal/config"
	"triviasnake/internal/model"
)

// injectionIndicators are phrases that mark prompt-injection attempts.
// Matching is case-insensitive substring; a hit rejects the input
// before any upstream call.
var injectionIndicators = []string{
	"ignore previous instructions",
	"disregard above",
	"system prompt",
	"you are now",
	"ignore rules",
}

const (
	defaultQuizQuestions = 10
	minQuizQuestions     = 1
	maxQuizQuestions     = 30
)

// QuizAIService talks to the Gemini API for content moderation and quiz
// generation. Both operations share one schema-constrained invocation
// path, but their failure defaults differ on purpose: moderation fails
// closed (inappropriate), generation fails with an explicit error.
type QuizAIService struct {
	config *config.AIConfig
	client *http.Client
}

// NewQuizAIService creates a new AI service from the given config.
func NewQuizAIService(cfg *config.AIConfig) *QuizAIService {
	return &QuizAIService{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Moderate classifies content as appropriate or not. With the AI
// integration administratively disabled, every verdict is appropriate;
// this escape hatch is deliberate and documented behavior. Any
// invocation failure produces an inappropriate verdict with a
// diagnostic reason; an unreviewable submission is never approved.
func (s *QuizAIService) Moderate(ctx context.Context, content string) model.ModerationVerdict {
	if !s.config.IsEnabled() {
		return model.ModerationVerdict{IsAppropriate: true, Reason: "moderation disabled"}
	}

	if phrase := findInjectionIndicator(content); phrase != "" {
		return model.ModerationVerdict{
			IsAppropriate: false,
			Reason:        fmt.Sprintf("content contains a prompt-injection marker (%q)", phrase),
		}
	}

	prompt := fmt.Sprintf(`You are a content moderator for a family-friendly trivia game.
Classify the following user-submitted quiz content. It is inappropriate if it
contains profanity, hate speech, sexual content, or targeted harassment.

Content:
%s`, content)

	raw, err := s.invoke(ctx, prompt, moderationSchema())
	if err != nil {
		return model.ModerationVerdict{IsAppropriate: false, Reason: "moderation unavailable: " + err.Error()}
	}

	var verdict model.ModerationVerdict
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return model.ModerationVerdict{IsAppropriate: false, Reason: "moderation returned malformed verdict"}
	}
	if !verdict.IsAppropriate && verdict.Reason == "" {
		verdict.Reason = "content flagged as inappropriate"
	}
	return verdict
}

// GenerateQuiz produces exactly questionCount questions on the topic.
// Returns ErrAIDisabled when the integration is off, ErrUnsafePrompt if
// the topic trips the injection filter, and GenerationError when the
// model output fails structural validation. A malformed result is never
// truncated or padded into a partial answer.
func (s *QuizAIService) GenerateQuiz(ctx context.Context, topic string, questionCount int) ([]model.Question, error) {
	if !s.config.IsEnabled() {
		return nil, ErrAIDisabled
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, invalidInput("topic is required")
	}
	if questionCount <= 0 {
		questionCount = defaultQuizQuestions
	}
	if questionCount < minQuizQuestions || questionCount > maxQuizQuestions {
		return nil, invalidInput("questionCount must be between %d and %d", minQuizQuestions, maxQuizQuestions)
	}

	if phrase := findInjectionIndicator(topic); phrase != "" {
		return nil, fmt.Errorf("%w: topic contains %q", ErrUnsafePrompt, phrase)
	}

	prompt := fmt.Sprintf(`Generate exactly %d multiple-choice trivia questions about the topic: %s.
Each question must have exactly %d plausible options and the correctAnswer must be
copied verbatim from the options.`, questionCount, topic, model.QuestionOptionCount)

	raw, err := s.invoke(ctx, prompt, quizSchema())
	if err != nil {
		return nil, &GenerationError{Message: "quiz generation failed", Err: err}
	}

	var questions []model.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, &GenerationError{Message: "quiz generation returned malformed output", Err: err}
	}
	if len(questions) != questionCount {
		return nil, &GenerationError{
			Message: fmt.Sprintf("quiz generation returned %d questions, expected %d", len(questions), questionCount),
		}
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, &GenerationError{Message: "quiz generation returned an invalid question", Err: err}
		}
	}
	return questions, nil
}

// invoke calls the Gemini generateContent endpoint with a declared
// response schema and returns the raw JSON text of the first candidate.
func (s *QuizAIService) invoke(ctx context.Context, prompt string, schema map[string]interface{}) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"responseSchema":   schema,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", s.config.ModelEndpoint(), s.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model endpoint returned status %d", resp.StatusCode)
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("empty response from model")
}

func findInjectionIndicator(input string) string {
	lowered := strings.ToLower(input)
	for _, phrase := range injectionIndicators {
		if strings.Contains(lowered, phrase) {
			return phrase
		}
	}
	return ""
}

func moderationSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"isAppropriate": map[string]interface{}{"type": "BOOLEAN"},
			"reason":        map[string]interface{}{"type": "STRING"},
		},
		"required": []string{"isAppropriate", "reason"},
	}
}

func quizSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "ARRAY",
		"items": map[string]interface{}{
			"type": "OBJECT",
			"properties": map[string]interface{}{
				"question": map[string]interface{}{"type": "STRING"},
				"options": map[string]interface{}{
					"type":  "ARRAY",
					"items": map[string]interface{}{"type": "STRING"},
				},
				"correctAnswer": map[string]interface{}{"type": "STRING"},
			},
			"required": []string{"question", "options", "correctAnswer"},
		},
	}
}
