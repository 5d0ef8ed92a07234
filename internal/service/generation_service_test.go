package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"auralearn/internal/domain"

	"github.com/stretchr/testify/assert"
)

const (
	testDelay   = 10 * time.Millisecond
	testTimeout = time.Second
)

func newTestGenerationService(gen domain.QuizGenerator) GenerationService {
	return NewGenerationService(gen, testDelay, testTimeout)
}

func staticFake() *fakeGenerator {
	return &fakeGenerator{
		generate: func(ctx context.Context, file *domain.SourceFile) (*domain.GeneratedQuiz, error) {
			return sampleQuiz(), nil
		},
	}
}

func waitForStatus(t *testing.T, svc GenerationService, userID, status string) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return svc.GetState(context.Background(), userID).Status == status
	}, time.Second, time.Millisecond, "expected user %s to reach status %s", userID, status)
}

func TestGetState_NewUserIsIdle(t *testing.T) {
	svc := newTestGenerationService(staticFake())

	state := svc.GetState(context.Background(), "u1")
	assert.Equal(t, "idle", state.Status)
	assert.Empty(t, state.FileName)
	assert.Nil(t, state.Result)
}

func TestSelectFile_Validation(t *testing.T) {
	svc := newTestGenerationService(staticFake())
	ctx := context.Background()

	_, err := svc.SelectFile(ctx, "u1", "", nil)
	var validationErrs domain.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))
	assert.Equal(t, domain.CodeMissingField, validationErrs[0].Code)

	_, err = svc.SelectFile(ctx, "u1", "notes.png", []byte("img"))
	assert.True(t, errors.As(err, &validationErrs))
	assert.Equal(t, domain.CodeUnsupportedFileType, validationErrs[0].Code)

	// A rejected selection leaves the job untouched.
	assert.Equal(t, "idle", svc.GetState(ctx, "u1").Status)
}

func TestSelectFile_AcceptedExtensions(t *testing.T) {
	svc := newTestGenerationService(staticFake())
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.doc", "c.docx", "d.txt", "e.PDF"} {
		state, err := svc.SelectFile(ctx, "u1", name, []byte("content"))
		assert.NoError(t, err, "file %s", name)
		assert.Equal(t, "file_selected", state.Status)
		assert.Equal(t, name, state.FileName)
	}
}

func TestStartGeneration_WithoutFile(t *testing.T) {
	svc := newTestGenerationService(staticFake())

	_, err := svc.StartGeneration(context.Background(), "u1")
	var validationErrs domain.ValidationErrors
	assert.True(t, errors.As(err, &validationErrs))
	assert.Equal(t, "file", validationErrs[0].Field)
}

func TestGeneration_FullWorkflow(t *testing.T) {
	gen := staticFake()
	svc := newTestGenerationService(gen)
	ctx := context.Background()

	_, err := svc.SelectFile(ctx, "u1", "lecture.pdf", []byte("lecture notes"))
	assert.NoError(t, err)

	state, err := svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "generating", state.Status)
	assert.Nil(t, state.Result, "result must not surface before completion")

	waitForStatus(t, svc, "u1", "completed")

	state = svc.GetState(ctx, "u1")
	assert.Equal(t, "lecture.pdf", state.FileName)
	assert.NotNil(t, state.Result)
	assert.Len(t, state.Result.MultipleChoice, 1)
	assert.Equal(t, 1, state.Result.MultipleChoice[0].CorrectIndex)
	assert.Equal(t, 1, gen.callCount())
}

func TestStartGeneration_ReentrantIsNoOp(t *testing.T) {
	gen := staticFake()
	svc := newTestGenerationService(gen)
	ctx := context.Background()

	_, err := svc.SelectFile(ctx, "u1", "lecture.pdf", []byte("lecture notes"))
	assert.NoError(t, err)
	_, err = svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)

	// A second start while generating changes nothing and schedules
	// no extra work.
	state, err := svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "generating", state.Status)

	waitForStatus(t, svc, "u1", "completed")
	assert.Equal(t, 1, gen.callCount())
}

func TestSelectFile_RejectedDuringGeneration(t *testing.T) {
	svc := newTestGenerationService(staticFake())
	ctx := context.Background()

	_, err := svc.SelectFile(ctx, "u1", "lecture.pdf", []byte("lecture notes"))
	assert.NoError(t, err)
	_, err = svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)

	_, err = svc.SelectFile(ctx, "u1", "other.txt", []byte("other"))
	var domainErr *domain.DomainError
	assert.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)

	waitForStatus(t, svc, "u1", "completed")
	assert.Equal(t, "lecture.pdf", svc.GetState(ctx, "u1").FileName)
}

func TestSelectFile_AfterCompletionClearsResult(t *testing.T) {
	svc := newTestGenerationService(staticFake())
	ctx := context.Background()

	_, err := svc.SelectFile(ctx, "u1", "lecture.pdf", []byte("lecture notes"))
	assert.NoError(t, err)
	_, err = svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)
	waitForStatus(t, svc, "u1", "completed")

	state, err := svc.SelectFile(ctx, "u1", "chapter2.txt", []byte("chapter two"))
	assert.NoError(t, err)
	assert.Equal(t, "file_selected", state.Status)
	assert.Equal(t, "chapter2.txt", state.FileName)
	assert.Nil(t, state.Result, "prior result must be cleared on re-selection")
}

func TestStartGeneration_RegenerateAfterCompletion(t *testing.T) {
	gen := staticFake()
	svc := newTestGenerationService(gen)
	ctx := context.Background()

	_, err := svc.SelectFile(ctx, "u1", "lecture.pdf", []byte("lecture notes"))
	assert.NoError(t, err)
	_, err = svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)
	waitForStatus(t, svc, "u1", "completed")

	state, err := svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "generating", state.Status)
	assert.Nil(t, state.Result)

	waitForStatus(t, svc, "u1", "completed")
	assert.Equal(t, 2, gen.callCount())
}

func TestGeneration_FailureReturnsToFileSelected(t *testing.T) {
	gen := &fakeGenerator{
		generate: func(ctx context.Context, file *domain.SourceFile) (*domain.GeneratedQuiz, error) {
			return nil, errors.New("model unavailable")
		},
	}
	svc := newTestGenerationService(gen)
	ctx := context.Background()

	_, err := svc.SelectFile(ctx, "u1", "lecture.pdf", []byte("lecture notes"))
	assert.NoError(t, err)
	_, err = svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)

	// The file stays selected so the user can retry.
	waitForStatus(t, svc, "u1", "file_selected")
	state := svc.GetState(ctx, "u1")
	assert.Equal(t, "lecture.pdf", state.FileName)
	assert.Nil(t, state.Result)
}

func TestGeneration_JobsAreIsolatedPerUser(t *testing.T) {
	svc := newTestGenerationService(staticFake())
	ctx := context.Background()

	_, err := svc.SelectFile(ctx, "u1", "lecture.pdf", []byte("lecture notes"))
	assert.NoError(t, err)
	_, err = svc.StartGeneration(ctx, "u1")
	assert.NoError(t, err)

	assert.Equal(t, "idle", svc.GetState(ctx, "u2").Status)
	waitForStatus(t, svc, "u1", "completed")
	assert.Equal(t, "idle", svc.GetState(ctx, "u2").Status)
}
