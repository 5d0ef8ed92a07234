package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"auralearn/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

const quizPrompt = `You are an expert quiz generator. A teacher uploaded a syllabus document
named "%s". Based on the document content below, create a quiz.

Respond with a single JSON object, no prose, in exactly this shape:
{
  "multiple_choice": [
    { "question": "...", "options": ["...", "...", "...", "..."], "correct_index": 0 }
  ],
  "short_answers": ["...", "..."],
  "summary": "..."
}

Rules:
1. Produce 2 to 5 multiple-choice questions, each with exactly 4 options.
2. "correct_index" is the zero-based index of the correct option.
3. Produce 2 to 3 short-answer prompts.
4. "summary" is a single descriptive study-guide paragraph.

Document content:
%s
`

// OllamaGenerator implements domain.QuizGenerator against a local
// Ollama server through LangchainGo.
type OllamaGenerator struct {
	llm    *ollama.LLM
	logger *zap.Logger
}

// NewOllamaGenerator creates a new OllamaGenerator.
func NewOllamaGenerator(serverURL, modelName string, logger *zap.Logger) (domain.QuizGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("ollama server URL cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("ollama model name cannot be empty")
	}
	logger.Info("Initializing OllamaGenerator", zap.String("model", modelName))

	llm, err := ollama.New(ollama.WithServerURL(serverURL), ollama.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaGenerator{llm: llm, logger: logger}, nil
}

// GenerateQuiz prompts the model with the document content and parses
// the JSON response into a GeneratedQuiz.
func (g *OllamaGenerator) GenerateQuiz(ctx context.Context, file *domain.SourceFile) (*domain.GeneratedQuiz, error) {
	prompt := fmt.Sprintf(quizPrompt, file.Name, string(file.Content))

	response, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		g.logger.Error("LLM call failed", zap.Error(err), zap.String("file", file.Name))
		return nil, domain.NewGenerationFailedError(err)
	}

	quiz, err := parseQuizResponse(response)
	if err != nil {
		g.logger.Error("Failed to parse LLM quiz response",
			zap.Error(err),
			zap.String("file", file.Name),
			zap.String("response", response))
		return nil, domain.NewGenerationFailedError(err)
	}

	g.logger.Info("Quiz generated",
		zap.String("file", file.Name),
		zap.Int("mcq_count", len(quiz.MultipleChoice)),
		zap.Int("short_answer_count", len(quiz.ShortAnswers)))
	return quiz, nil
}

// parseQuizResponse decodes a model response into a GeneratedQuiz.
// Models tend to wrap JSON in markdown fences, so those are stripped.
func parseQuizResponse(response string) (*domain.GeneratedQuiz, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var quiz domain.GeneratedQuiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		return nil, fmt.Errorf("failed to parse quiz response: %w", err)
	}
	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("model produced an invalid quiz: %w", err)
	}
	return &quiz, nil
}

// Static assertion to ensure OllamaGenerator implements QuizGenerator
var _ domain.QuizGenerator = (*OllamaGenerator)(nil)
