package model

import (
	"fmt"
	"strings"
	"time"
)

// VerificationStatus tracks whether an adventure passed content moderation
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
	VerificationPending  VerificationStatus = "pending"
)

// Adventure is a user-authored quiz pack (name, cover image, question set)
type Adventure struct {
	ID                 string             `json:"id" bson:"_id"`
	Name               string             `json:"name" bson:"name"`
	Description        string             `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL           string             `json:"imageUrl" bson:"imageUrl"`
	Questions          []Question         `json:"questions" bson:"questions"`
	CreatedBy          string             `json:"createdBy" bson:"createdBy"`
	Genre              string             `json:"genre" bson:"genre"`
	VerificationStatus VerificationStatus `json:"verificationStatus" bson:"verificationStatus"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// QuestionOptionCount is the fixed number of answer options per question
const QuestionOptionCount = 4

// Question is a single multiple-choice question. The wire field for the
// prompt is "question", matching the original client payloads.
type Question struct {
	Text          string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer string   `json:"correctAnswer" bson:"correctAnswer"`
}

// Validate enforces the question invariant: non-empty prompt, exactly
// four non-empty options, and a correct answer that is one of them.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text is required")
	}
	if len(q.Options) != QuestionOptionCount {
		return fmt.Errorf("question %q must have exactly %d options, got %d", q.Text, QuestionOptionCount, len(q.Options))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("question %q option %d is empty", q.Text, i+1)
		}
	}
	for _, opt := range q.Options {
		if opt == q.CorrectAnswer {
			return nil
		}
	}
	return fmt.Errorf("question %q correct answer is not one of the options", q.Text)
}
