package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DraftSection is one heading/body pair of the drafted application.
type DraftSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// DraftContent is the validated shape of a drafting response. Provider
// output is never trusted as well-formed; ParseDraft validates it at the
// boundary.
type DraftContent struct {
	Title      string         `json:"title"`
	Summary    string         `json:"summary"`
	Sections   []DraftSection `json:"sections"`
	KeyPhrases []string       `json:"keyPhrases"`
}

// ParseDraft parses and validates a raw drafting response.
func ParseDraft(raw json.RawMessage) (DraftContent, error) {
	var content DraftContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return DraftContent{}, fmt.Errorf("draft output parse: %w", err)
	}
	if err := validateDraft(&content); err != nil {
		return DraftContent{}, err
	}
	return content, nil
}

func validateDraft(content *DraftContent) error {
	if strings.TrimSpace(content.Title) == "" {
		return fmt.Errorf("draft output invalid: title is required")
	}
	if len(content.Sections) == 0 {
		return fmt.Errorf("draft output invalid: sections must not be empty")
	}
	for i, section := range content.Sections {
		if strings.TrimSpace(section.Heading) == "" {
			return fmt.Errorf("draft output invalid: sections[%d].heading is required", i)
		}
		if strings.TrimSpace(section.Body) == "" {
			return fmt.Errorf("draft output invalid: sections[%d].body is required", i)
		}
	}

	cleaned := make([]string, 0, len(content.KeyPhrases))
	for _, phrase := range content.KeyPhrases {
		if trimmed := strings.TrimSpace(phrase); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	content.KeyPhrases = cleaned
	return nil
}
