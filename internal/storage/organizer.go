package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kubux/ai-image-studio/internal/model"
	"github.com/kubux/ai-image-studio/internal/platform"
)

// LatestLinkName is the convenience symlink in the base directory pointing
// at the most recently written image.
const LatestLinkName = "latest.png"

// Error marks disk-level failures (permissions, space) that are surfaced to
// the user rather than retried.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Organizer maps request signatures to directories under a base directory
// and writes image bytes into them.
type Organizer struct {
	baseDir string
}

// NewOrganizer creates an organizer rooted at baseDir. The base directory
// itself is created eagerly; signature directories are created on first use.
func NewOrganizer(baseDir string) (*Organizer, error) {
	if err := platform.CreateDirectoryIfNotExists(baseDir); err != nil {
		return nil, &Error{Op: "init", Err: err}
	}
	return &Organizer{baseDir: baseDir}, nil
}

// BaseDir returns the root of the organized image tree.
func (o *Organizer) BaseDir() string {
	return o.baseDir
}

// Resolve returns the directory for the request's signature, creating it if
// needed. Identical (prompt, model, dimensions) always resolve to the same
// directory, across calls and process restarts.
func (o *Organizer) Resolve(req *model.GenerationRequest) (string, error) {
	dir := filepath.Join(o.baseDir, req.Signature())
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return "", &Error{Op: "resolve", Err: err}
	}
	return dir, nil
}

// Write stores the image bytes under dir with a unique name and records the
// request alongside it. The image lands via temp-file-and-rename; an
// existing file is never overwritten.
func (o *Organizer) Write(dir string, data []byte, req *model.GenerationRequest) (string, error) {
	name := uniqueImageName("generated", ".png")
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil {
		return "", &Error{Op: "write", Err: fmt.Errorf("refusing to overwrite %s", path)}
	}

	if err := platform.WriteFileAtomic(path, data); err != nil {
		return "", &Error{Op: "write", Err: err}
	}

	o.writeSidecars(dir, req)
	o.linkLatest(path)

	return path, nil
}

// writeSidecars records the textual parameters next to the images so a
// directory is self-describing. Best effort only.
func (o *Organizer) writeSidecars(dir string, req *model.GenerationRequest) {
	sidecars := map[string]string{
		"prompt.txt":          req.Prompt,
		"negative-prompt.txt": req.NegativePrompt,
		"context_url.txt":     req.ContextImageURL,
	}
	for name, content := range sidecars {
		if content == "" {
			continue
		}
		if err := platform.WriteFileAtomic(filepath.Join(dir, name), []byte(content)); err != nil {
			logrus.WithError(err).WithField("file", name).Warn("could not write sidecar")
		}
	}
}

// linkLatest points the base-directory symlink at the newest image. Best
// effort; some filesystems do not support symlinks.
func (o *Organizer) linkLatest(path string) {
	link := filepath.Join(o.baseDir, LatestLinkName)
	_ = os.Remove(link)
	if err := os.Symlink(path, link); err != nil {
		logrus.WithError(err).Debug("could not update latest-image link")
	}
}

// uniqueImageName builds a timestamp-plus-random filename that cannot
// collide within a directory.
func uniqueImageName(category, ext string) string {
	ts := time.Now().Format("2006-01-02-15-04-05.000000")
	token := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s%s", ts, category, token, ext)
}
