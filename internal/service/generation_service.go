package service

import (
	"context"
	"sync"
	"time"

	"auralearn/internal/domain"
	"auralearn/internal/dto"
	"auralearn/internal/logger"

	"go.uber.org/zap"
)

// GenerationService drives the quiz-generation workflow: file intake,
// simulated-or-real generation, and result materialization. One job is
// tracked per authenticated user.
type GenerationService interface {
	// SelectFile validates the file and moves the user's job to
	// file_selected, clearing any prior result.
	SelectFile(ctx context.Context, userID, filename string, content []byte) (*dto.GenerationStateResponse, error)

	// StartGeneration moves a file_selected job to generating and
	// schedules completion. Calling it while generating is a no-op.
	StartGeneration(ctx context.Context, userID string) (*dto.GenerationStateResponse, error)

	// GetState returns the snapshot the UI renders.
	GetState(ctx context.Context, userID string) *dto.GenerationStateResponse
}

type generationServiceImpl struct {
	generator domain.QuizGenerator
	delay     time.Duration
	timeout   time.Duration

	mu   sync.Mutex
	jobs map[string]*domain.GenerationJob
}

// NewGenerationService creates a new GenerationService. The delay is
// the fixed processing time observed by the caller before a result
// appears; timeout bounds the generator call itself.
func NewGenerationService(generator domain.QuizGenerator, delay, timeout time.Duration) GenerationService {
	return &generationServiceImpl{
		generator: generator,
		delay:     delay,
		timeout:   timeout,
		jobs:      make(map[string]*domain.GenerationJob),
	}
}

func (s *generationServiceImpl) SelectFile(ctx context.Context, userID, filename string, content []byte) (*dto.GenerationStateResponse, error) {
	if filename == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}
	// Unsupported types are rejected at selection, not at generation.
	if !domain.IsSupportedFile(filename) {
		return nil, domain.ValidationErrors{
			domain.NewFieldError("file", domain.CodeUnsupportedFileType,
				"only pdf, doc, docx and txt files are supported"),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.jobForUser(userID)
	if job.Status == domain.StatusGenerating {
		return nil, domain.NewError(domain.CodeInvalidInput, "generation is in progress; wait for it to finish", nil)
	}

	job.SelectFile(&domain.SourceFile{Name: filename, Content: content})
	logger.Get().Info("Source file selected",
		zap.String("userID", userID),
		zap.String("file", filename),
		zap.Int("size", len(content)))

	return s.stateLocked(job), nil
}

func (s *generationServiceImpl) StartGeneration(ctx context.Context, userID string) (*dto.GenerationStateResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.jobForUser(userID)
	switch job.Status {
	case domain.StatusIdle:
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("file")}
	case domain.StatusGenerating:
		// Re-entrant generate requests are ignored, not errors.
		return s.stateLocked(job), nil
	case domain.StatusCompleted:
		// Regenerate: re-enter generating with the same file.
	}

	job.Status = domain.StatusGenerating
	job.Result = nil
	job.StartedAt = time.Now()
	file := job.File

	logger.Get().Info("Quiz generation started",
		zap.String("userID", userID),
		zap.String("file", file.Name),
		zap.Duration("delay", s.delay))

	time.AfterFunc(s.delay, func() {
		s.finishGeneration(userID, file)
	})

	return s.stateLocked(job), nil
}

func (s *generationServiceImpl) GetState(ctx context.Context, userID string) *dto.GenerationStateResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked(s.jobForUser(userID))
}

// finishGeneration runs the generator and completes the job. The
// request that started the job is long gone, so a background context
// bounded by the configured timeout is used.
func (s *generationServiceImpl) finishGeneration(userID string, file *domain.SourceFile) {
	appLogger := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	quiz, err := s.generator.GenerateQuiz(ctx, file)

	s.mu.Lock()
	defer s.mu.Unlock()

	job := s.jobForUser(userID)
	if job.Status != domain.StatusGenerating || job.File != file {
		// The job moved on (new file selected) while we were working.
		appLogger.Warn("Discarding stale generation result", zap.String("userID", userID), zap.String("file", file.Name))
		return
	}

	if err != nil {
		// Recoverable: the file stays selected so the user can retry.
		appLogger.Error("Quiz generation failed", zap.Error(err), zap.String("userID", userID), zap.String("file", file.Name))
		job.Status = domain.StatusFileSelected
		job.Result = nil
		return
	}

	job.Complete(quiz)
	appLogger.Info("Quiz generation completed",
		zap.String("userID", userID),
		zap.String("file", file.Name),
		zap.Duration("took", time.Since(job.StartedAt)))
}

// jobForUser returns the user's job, creating an idle one on first use.
// Callers must hold s.mu.
func (s *generationServiceImpl) jobForUser(userID string) *domain.GenerationJob {
	job, ok := s.jobs[userID]
	if !ok {
		job = domain.NewGenerationJob()
		s.jobs[userID] = job
	}
	return job
}

// stateLocked snapshots a job. Callers must hold s.mu.
func (s *generationServiceImpl) stateLocked(job *domain.GenerationJob) *dto.GenerationStateResponse {
	state := &dto.GenerationStateResponse{Status: job.Status.String()}
	if job.File != nil {
		state.FileName = job.File.Name
	}
	if job.Status == domain.StatusCompleted {
		state.Result = dto.NewGeneratedQuizResponse(job.Result)
	}
	return state
}
