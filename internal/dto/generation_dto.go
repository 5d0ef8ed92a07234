package dto

import "auralearn/internal/domain"

// GenerationStateResponse is the snapshot the UI renders: the current
// workflow status, the selected file (if any) and the result once the
// job completes.
type GenerationStateResponse struct {
	Status   string                 `json:"status"`
	FileName string                 `json:"file_name,omitempty"`
	Result   *GeneratedQuizResponse `json:"result,omitempty"`
}

// GeneratedQuizResponse mirrors domain.GeneratedQuiz on the wire.
type GeneratedQuizResponse struct {
	MultipleChoice []MultipleChoiceItemResponse `json:"multiple_choice"`
	ShortAnswers   []string                     `json:"short_answers"`
	Summary        string                       `json:"summary"`
}

type MultipleChoiceItemResponse struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// NewGeneratedQuizResponse converts a domain quiz into its response shape.
func NewGeneratedQuizResponse(quiz *domain.GeneratedQuiz) *GeneratedQuizResponse {
	if quiz == nil {
		return nil
	}
	resp := &GeneratedQuizResponse{
		MultipleChoice: make([]MultipleChoiceItemResponse, 0, len(quiz.MultipleChoice)),
		ShortAnswers:   quiz.ShortAnswers,
		Summary:        quiz.Summary,
	}
	for _, item := range quiz.MultipleChoice {
		resp.MultipleChoice = append(resp.MultipleChoice, MultipleChoiceItemResponse{
			Question:     item.Question,
			Options:      item.Options,
			CorrectIndex: item.CorrectIndex,
		})
	}
	return resp
}
