package quizgen

import (
	"context"

	"auralearn/internal/domain"
)

// StaticGenerator implements domain.QuizGenerator with a fixed,
// deterministic payload. It stands in for a real model so the
// workflow can be exercised end to end without any inference backend.
type StaticGenerator struct{}

// NewStaticGenerator creates a new StaticGenerator.
func NewStaticGenerator() domain.QuizGenerator {
	return &StaticGenerator{}
}

// GenerateQuiz returns the sample quiz regardless of input content.
func (g *StaticGenerator) GenerateQuiz(ctx context.Context, file *domain.SourceFile) (*domain.GeneratedQuiz, error) {
	return &domain.GeneratedQuiz{
		MultipleChoice: []domain.MultipleChoiceItem{
			{
				Question:     "What is the capital of France?",
				Options:      []string{"London", "Paris", "Berlin", "Madrid"},
				CorrectIndex: 1,
			},
			{
				Question:     "Which planet is known as the Red Planet?",
				Options:      []string{"Venus", "Mars", "Jupiter", "Saturn"},
				CorrectIndex: 1,
			},
		},
		ShortAnswers: []string{
			"Explain the process of photosynthesis.",
			"Describe the water cycle in detail.",
		},
		Summary: "This quiz covers fundamental concepts in Geography and Science, focusing on capitals, planetary systems, and natural processes.",
	}, nil
}

// Static assertion to ensure StaticGenerator implements QuizGenerator
var _ domain.QuizGenerator = (*StaticGenerator)(nil)
