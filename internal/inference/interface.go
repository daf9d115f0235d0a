package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	ExplainTopic(ctx context.Context, params ExplainTopicRequest) (ExplainTopicResponse, error)
}

// Mistake describes a review where the learner underperformed, used as
// context for the explanation.
type Mistake struct {
	Topic            string  `json:"topic"`
	Accuracy         float64 `json:"accuracy"`
	QuestionsTotal   int     `json:"questions_total"`
	QuestionsCorrect int     `json:"questions_correct"`
}

// ExplainTopicRequest holds parameters for explaining a study topic
type ExplainTopicRequest struct {
	Subject        string    `json:"subject"`
	Topic          string    `json:"topic"`
	ExamTrack      string    `json:"exam_track,omitempty"` // e.g. "enare-2026", used to anchor the exam style
	RecentMistakes []Mistake `json:"recent_mistakes,omitempty"`
}

type ExplainTopicResponse struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	CommonTraps []string `json:"common_traps"`
	StudyAdvice string   `json:"study_advice"`
}

const (
	DefaultMaxRetryAttempts = 3
)
