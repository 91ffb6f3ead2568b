// package formatter renders a wrapped summary as a shareable card (Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/wrapped/internal/models"
	"github.com/desertthunder/wrapped/internal/shared"
)

// Format is a share card output format.
type Format string

const (
	Markdown Format = "markdown"
	Text     Format = "text"
	JSON     Format = "json"
)

// ParseFormat maps a user-supplied name to a [Format].
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md", "":
		return Markdown, nil
	case "text", "txt", "plain":
		return Text, nil
	case "json":
		return JSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	switch f {
	case Text:
		return ".txt"
	case JSON:
		return ".json"
	default:
		return ".md"
	}
}

// Export renders summary in the given format.
func Export(summary *models.UserSummary, format Format) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("%w: nil summary", shared.ErrInvalidInput)
	}
	switch format {
	case Text:
		return ExportToText(summary)
	case JSON:
		return ExportToJSON(summary)
	default:
		return ExportToMarkdown(summary)
	}
}

// ExportToMarkdown converts a UserSummary to a Markdown share card.
func ExportToMarkdown(summary *models.UserSummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s · Wrapped\n\n", summary.Username))
	buf.WriteString(fmt.Sprintf("**Rank**: %s\n", summary.RankLabel))
	if summary.ProfileURL != "" {
		buf.WriteString(fmt.Sprintf("**Profile**: %s\n", summary.ProfileURL))
	}

	if stats := statLines(summary.Stats); len(stats) > 0 {
		buf.WriteString("\n## Stats\n\n")
		for _, line := range stats {
			buf.WriteString(fmt.Sprintf("- %s\n", line))
		}
	}

	buf.WriteString("\n## Slides\n\n")
	for i, slide := range summary.Insights {
		buf.WriteString(fmt.Sprintf("%d. %s **%s** — %s\n", i+1, slide.Emoji, slide.Title, slide.Body))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a UserSummary to a plain text share card.
func ExportToText(summary *models.UserSummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(summary.Username)))
	buf.WriteString(fmt.Sprintf("Rank: %s\n", summary.RankLabel))
	for _, line := range statLines(summary.Stats) {
		buf.WriteString(line + "\n")
	}
	buf.WriteString("\n")

	for i, slide := range summary.Insights {
		buf.WriteString(fmt.Sprintf("%d. %s %s\n   %s\n", i+1, slide.Emoji, slide.Title, slide.Body))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts a UserSummary to indented JSON using the response field names.
func ExportToJSON(summary *models.UserSummary) ([]byte, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteShareCard writes the share card for summary into dir and returns the file path.
//
// The file is named after the username, e.g. ahmet-wrapped.md.
func WriteShareCard(dir string, summary *models.UserSummary, format Format) (string, error) {
	data, err := Export(summary, format)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	name := shared.Slugify(summary.Username)
	if name == "" {
		name = "profile"
	}
	path := filepath.Join(dir, name+"-wrapped"+format.Extension())

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write share card: %w", err)
	}

	return path, nil
}

func statLines(stats *models.ProfileStats) []string {
	if stats == nil {
		return nil
	}
	var lines []string
	for _, f := range []struct{ label, value string }{
		{"iTrader", stats.TradeCount},
		{"Forum rank", stats.Rank},
		{"Joined", stats.JoinDate},
		{"Member ID", stats.MemberID},
		{"Posts", stats.TotalPosts},
	} {
		if f.value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", f.label, f.value))
		}
	}
	return lines
}
