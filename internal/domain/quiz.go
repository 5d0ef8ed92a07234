package domain

// MultipleChoiceItem is a single multiple-choice question with exactly
// four options and the index of the correct one.
type MultipleChoiceItem struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// GeneratedQuiz is the materialized output of one generation run.
type GeneratedQuiz struct {
	MultipleChoice []MultipleChoiceItem `json:"multiple_choice"`
	ShortAnswers   []string             `json:"short_answers"`
	Summary        string               `json:"summary"`
}

// Validate validates the generated quiz
func (q *GeneratedQuiz) Validate() error {
	if len(q.MultipleChoice) == 0 {
		return ValidationErrors{NewMissingFieldError("multiple_choice")}
	}
	for _, item := range q.MultipleChoice {
		if item.Question == "" {
			return ValidationErrors{NewMissingFieldError("question")}
		}
		if len(item.Options) != 4 {
			return ValidationErrors{NewFieldError("options", CodeInvalidValue, "each question needs exactly 4 options")}
		}
		if item.CorrectIndex < 0 || item.CorrectIndex > 3 {
			return ValidationErrors{NewFieldError("correct_index", CodeInvalidValue, "correct_index must be between 0 and 3")}
		}
	}
	if q.Summary == "" {
		return ValidationErrors{NewMissingFieldError("summary")}
	}
	return nil
}
