package worklist

import (
	"strings"

	"github.com/nomindnick/worktracker-v1/internal/models"
)

const PreviewLines = 3

// Preview is the first lines of the latest status note.
type Preview struct {
	Text     string `json:"text"`
	HasMore  bool   `json:"has_more"`
	FullText string `json:"full_text,omitempty"`
}

// StatusPreview returns nil when there is no note to show.
func StatusPreview(update *models.StatusUpdate, maxLines int) *Preview {
	if update == nil || strings.TrimSpace(update.Notes) == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSpace(update.Notes), "\n")
	if len(lines) <= maxLines {
		return &Preview{Text: strings.Join(lines, "\n")}
	}
	return &Preview{
		Text:     strings.Join(lines[:maxLines], "\n"),
		HasMore:  true,
		FullText: update.Notes,
	}
}
