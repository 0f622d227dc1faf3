package generate

import (
	"context"

	"github.com/kubux/ai-image-studio/internal/model"
)

// GenerationClient is the remote text-to-image service. Implementations
// return raw image bytes on success and classify failures as *ServiceError
// so the pipeline can decide whether to retry.
type GenerationClient interface {
	Generate(ctx context.Context, req *model.GenerationRequest) ([]byte, error)
}

// ResultStore receives successful generation output. Only after a
// successful write does a job complete.
type ResultStore interface {
	Resolve(req *model.GenerationRequest) (string, error)
	Write(dir string, data []byte, req *model.GenerationRequest) (string, error)
}

// Generator defines the interface for the generation service.
type Generator interface {
	SetUpdateCallback(func(*model.GenerationJob))
	Submit(req model.GenerationRequest) *model.GenerationJob
	Cancel()
	Current() (*model.GenerationJob, bool)
	Close()
}
