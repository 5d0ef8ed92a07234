package domain

import (
	"context"
	"path/filepath"
	"strings"
	"time"
)

// JobStatus is the state of a quiz-generation job.
type JobStatus string

const (
	StatusIdle         JobStatus = "idle"
	StatusFileSelected JobStatus = "file_selected"
	StatusGenerating   JobStatus = "generating"
	StatusCompleted    JobStatus = "completed"
)

func (s JobStatus) String() string {
	return string(s)
}

// supportedExtensions matches the accept-filter of the upload UI.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

// IsSupportedFile reports whether the file name carries one of the
// accepted source-document extensions.
func IsSupportedFile(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// SourceFile is a selected source document: a name plus its content.
type SourceFile struct {
	Name    string
	Content []byte
}

// GenerationJob tracks one run of the quiz-generation workflow, from
// file selection to completed result. Result is set if and only if
// Status is StatusCompleted.
type GenerationJob struct {
	Status      JobStatus
	File        *SourceFile
	Result      *GeneratedQuiz
	StartedAt   time.Time
	CompletedAt time.Time
}

// NewGenerationJob creates a job in its initial state. No transition
// leads back to StatusIdle afterwards.
func NewGenerationJob() *GenerationJob {
	return &GenerationJob{Status: StatusIdle}
}

// SelectFile transitions the job to StatusFileSelected and clears any
// prior result. Selecting while generating is rejected by the caller.
func (j *GenerationJob) SelectFile(file *SourceFile) {
	j.File = file
	j.Result = nil
	j.Status = StatusFileSelected
}

// Complete materializes the result and finishes the job.
func (j *GenerationJob) Complete(quiz *GeneratedQuiz) {
	j.Result = quiz
	j.Status = StatusCompleted
	j.CompletedAt = time.Now()
}

// QuizGenerator defines the interface for producing a quiz from a
// source document. The default implementation is deterministic; an
// LLM-backed implementation can be substituted without touching the
// workflow state machine.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, file *SourceFile) (*GeneratedQuiz, error)
}
