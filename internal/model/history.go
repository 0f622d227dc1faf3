package model

import "time"

// PromptHistoryEntry is one remembered submission. Entries are kept
// most-recent-first and consecutive duplicates (timestamp excluded) are
// collapsed by the history store.
type PromptHistoryEntry struct {
	Prompt          string    `json:"prompt"`
	NegativePrompt  string    `json:"negative_prompt,omitempty"`
	ContextImageURL string    `json:"context_image_url,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// SameContent reports whether two entries are field-wise identical, ignoring
// the timestamp.
func (e PromptHistoryEntry) SameContent(other PromptHistoryEntry) bool {
	return e.Prompt == other.Prompt &&
		e.NegativePrompt == other.NegativePrompt &&
		e.ContextImageURL == other.ContextImageURL
}
