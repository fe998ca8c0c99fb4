package report

import (
	"fmt"

	"github.com/101Room/berezin-dicts/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Render formats a finished batch for the terminal.
func Render(results []domain.UploadResult) string {
	return renderView(results, newStyles())
}

func renderView(results []domain.UploadResult, s styles) string {
	created := 0
	for _, result := range results {
		if result.Outcome == domain.OutcomeCreated {
			created++
		}
	}

	lines := []string{
		s.title.Render("Dictionary uploads"),
		s.header.Render(fmt.Sprintf("files: %d, created: %d, failed: %d", len(results), created, len(results)-created)),
	}

	if len(results) == 0 {
		lines = append(lines, s.empty.Render("Nothing uploaded."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, result := range results {
		lines = append(lines, renderResult(result, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderResult(result domain.UploadResult, s styles) string {
	if result.Outcome == domain.OutcomeCreated {
		return fmt.Sprintf("%s %s %s",
			s.created.Render("✓"),
			s.file.Render(result.SourceFile),
			s.detail.Render(result.URL),
		)
	}

	return fmt.Sprintf("%s %s %s",
		s.failed.Render("✗"),
		s.file.Render(result.SourceFile),
		s.detail.Render(result.Message),
	)
}
