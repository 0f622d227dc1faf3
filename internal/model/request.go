package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerationRequest carries everything the generation service needs for one
// image. Width and Height must already satisfy the service constraints
// (multiples of the dimension factor, within the allowed range); the
// negotiator guarantees that before a request is built.
type GenerationRequest struct {
	Prompt          string
	NegativePrompt  string
	ContextImageURL string
	Steps           int
	Width           int
	Height          int
	Model           string
}

// Signature returns the deterministic key that groups outputs of equivalent
// requests: same prompt (trimmed, case preserved), model, and dimensions
// always hash to the same value across process restarts.
func (r *GenerationRequest) Signature() string {
	key := fmt.Sprintf("%s|%s|%dx%d", strings.TrimSpace(r.Prompt), r.Model, r.Width, r.Height)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// HistoryEntry converts the request into its prompt-history form.
func (r *GenerationRequest) HistoryEntry() PromptHistoryEntry {
	return PromptHistoryEntry{
		Prompt:          strings.TrimSpace(r.Prompt),
		NegativePrompt:  strings.TrimSpace(r.NegativePrompt),
		ContextImageURL: strings.TrimSpace(r.ContextImageURL),
	}
}
