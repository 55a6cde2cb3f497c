package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/genai"
)

// Thematic framing prepended to every user prompt.
const imagePromptFormat = "Historical scene from the Mongol Empire: %s. Cinematic lighting, photorealistic, high detail."

// User-facing failure guidance, distinct from the logged cause.
const imageFailureMessage = "Failed to generate image. Please ensure you have selected a valid API key (image models may require a billed project)."

// ImageService runs the image request pipeline. The pipeline tracks a
// single generation at a time through the states empty, loading, ready
// and failed; exactly one of image and error is live. Each generation
// carries a tag so a superseded request cannot overwrite the latest
// one when it finally resolves.
type ImageService struct {
	client genai.ImageClient
	gate   genai.CredentialGate
	logger *zap.Logger

	mu    sync.Mutex
	state domain.ImageState
	seq   uint64
}

// NewImageService creates a new image service
func NewImageService(client genai.ImageClient, gate genai.CredentialGate, logger *zap.Logger) *ImageService {
	return &ImageService{
		client: client,
		gate:   gate,
		logger: logger,
		state:  domain.ImageState{Phase: domain.ImageEmpty},
	}
}

// State returns the pipeline's current state.
func (s *ImageService) State() domain.ImageState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Generate runs one generation. Blank prompts are a no-op that leaves
// the pipeline state untouched. The credential gate is consulted on
// every call, not just the first.
func (s *ImageService) Generate(ctx context.Context, prompt string, resolution domain.Resolution) (domain.ImageState, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return s.State(), domain.ErrBlankInput
	}

	if !s.gate.HasCredential(ctx) {
		if err := s.gate.RequestCredential(ctx); err != nil {
			return s.State(), err
		}
	}

	full := fmt.Sprintf(imagePromptFormat, prompt)

	s.mu.Lock()
	s.seq++
	tag := s.seq
	s.state = domain.ImageState{Phase: domain.ImageLoading, Prompt: full}
	s.mu.Unlock()

	img, err := s.client.Generate(ctx, full, resolution)

	s.mu.Lock()
	defer s.mu.Unlock()
	if tag != s.seq {
		// A newer generation owns the state now.
		s.logger.Info("discarding superseded image generation")
		return s.state, nil
	}
	if err != nil {
		s.logger.Warn("image generation failed", zap.Error(err))
		s.state = domain.ImageState{Phase: domain.ImageFailed, Prompt: full, Error: imageFailureMessage}
		return s.state, nil
	}

	s.state = domain.ImageState{
		Phase:   domain.ImageReady,
		Prompt:  full,
		DataURI: fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data)),
	}
	return s.state, nil
}
