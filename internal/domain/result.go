package domain

import "time"

// Outcome classifies one finished upload attempt.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeFailed  Outcome = "failed"
)

// UploadResult is the per-file record produced by the pipeline, used for
// logging, the batch report and the history file.
type UploadResult struct {
	SourceFile string
	Outcome    Outcome
	// URL of the created dictionary page; set only for OutcomeCreated.
	URL string
	// Message explains the failure; set only for OutcomeFailed.
	Message    string
	FinishedAt time.Time
}

func Created(sourceFile, url string, at time.Time) UploadResult {
	return UploadResult{SourceFile: sourceFile, Outcome: OutcomeCreated, URL: url, FinishedAt: at}
}

func Failed(sourceFile, message string, at time.Time) UploadResult {
	return UploadResult{SourceFile: sourceFile, Outcome: OutcomeFailed, Message: message, FinishedAt: at}
}
