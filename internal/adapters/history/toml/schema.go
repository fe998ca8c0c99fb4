package toml

import (
	"fmt"
	"time"

	"github.com/101Room/berezin-dicts/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Uploads []uploadSchema `toml:"uploads"`
}

type uploadSchema struct {
	SourceFile string `toml:"source_file"`
	Outcome    string `toml:"outcome"`
	URL        string `toml:"url,omitempty"`
	Message    string `toml:"message,omitempty"`
	FinishedAt string `toml:"finished_at"`
}

func (f *fileSchema) applyDefaults() {
	if f.Version == 0 {
		f.Version = currentSchemaVersion
	}
}

func (f fileSchema) validateVersion() error {
	if f.Version != 0 && f.Version != currentSchemaVersion {
		return fmt.Errorf("unsupported history file version %d", f.Version)
	}
	return nil
}

func toSchema(result domain.UploadResult) uploadSchema {
	return uploadSchema{
		SourceFile: result.SourceFile,
		Outcome:    string(result.Outcome),
		URL:        result.URL,
		Message:    result.Message,
		FinishedAt: formatTime(result.FinishedAt),
	}
}

func fromSchema(entry uploadSchema) domain.UploadResult {
	return domain.UploadResult{
		SourceFile: entry.SourceFile,
		Outcome:    domain.Outcome(entry.Outcome),
		URL:        entry.URL,
		Message:    entry.Message,
		FinishedAt: parseTime(entry.FinishedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
