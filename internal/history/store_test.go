package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubux/ai-image-studio/internal/model"
)

func tempStore(t *testing.T, capacity int) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt_history.json")
	return NewStore(path, capacity), path
}

func entry(prompt string) model.PromptHistoryEntry {
	return model.PromptHistoryEntry{Prompt: prompt}
}

func TestRecordInsertsAtHead(t *testing.T) {
	s, _ := tempStore(t, 10)

	assert.True(t, s.Record(entry("first")))
	assert.True(t, s.Record(entry("second")))

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Prompt)
	assert.Equal(t, "first", list[1].Prompt)
}

func TestRecordDedupsConsecutiveHead(t *testing.T) {
	s, _ := tempStore(t, 10)

	assert.True(t, s.Record(entry("same")))
	assert.False(t, s.Record(entry("same")), "identical head insert must be a no-op")
	assert.Equal(t, 1, s.Len())

	// Dedup is only against the head, not the whole list
	assert.True(t, s.Record(entry("other")))
	assert.True(t, s.Record(entry("same")))
	assert.Equal(t, 3, s.Len())
}

func TestRecordHonorsCapacity(t *testing.T) {
	s, _ := tempStore(t, 3)

	for i := 0; i < 10; i++ {
		s.Record(entry(fmt.Sprintf("p%d", i)))
	}

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, "p9", list[0].Prompt, "newest entry survives truncation")
	assert.Equal(t, "p7", list[2].Prompt, "oldest entries are dropped silently")
}

func TestRecordIgnoresEmptyPrompt(t *testing.T) {
	s, _ := tempStore(t, 10)
	assert.False(t, s.Record(entry("")))
	assert.Equal(t, 0, s.Len())
}

func TestRecordStampsTimestamp(t *testing.T) {
	s, _ := tempStore(t, 10)
	s.Record(entry("p"))
	assert.False(t, s.List()[0].Timestamp.IsZero())
}

func TestPersistenceRoundTrip(t *testing.T) {
	s, path := tempStore(t, 10)
	s.Record(model.PromptHistoryEntry{
		Prompt:          "a castle",
		NegativePrompt:  "blur",
		ContextImageURL: "https://example.com/ctx.png",
	})
	s.Record(entry("a bridge"))

	reloaded := NewStore(path, 10)
	list := reloaded.List()
	require.Len(t, list, 2)
	assert.Equal(t, "a bridge", list[0].Prompt)
	assert.Equal(t, "a castle", list[1].Prompt)
	assert.Equal(t, "blur", list[1].NegativePrompt)
	assert.Equal(t, "https://example.com/ctx.png", list[1].ContextImageURL)
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt_history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s := NewStore(path, 10)
	assert.Equal(t, 0, s.Len(), "corrupt history must not be fatal")

	// And the store recovers on the next mutation
	assert.True(t, s.Record(entry("fresh")))
	assert.Equal(t, 1, NewStore(path, 10).Len())
}

func TestLoadTruncatesOversizedFile(t *testing.T) {
	s, path := tempStore(t, 10)
	for i := 0; i < 10; i++ {
		s.Record(entry(fmt.Sprintf("p%d", i)))
	}

	small := NewStore(path, 4)
	assert.Equal(t, 4, small.Len())
	assert.Equal(t, "p9", small.List()[0].Prompt)
}

func TestPersistenceFailureIsNotFatal(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing-dir", "history.json"), 10)

	// The write fails (parent directory missing) but the in-memory list
	// still advances.
	assert.True(t, s.Record(entry("kept in memory")))
	assert.Equal(t, 1, s.Len())
	assert.Error(t, s.Save())
}
