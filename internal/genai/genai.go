// Package genai abstracts the hosted chat and image generation
// services. Both are consumed as opaque request/response endpoints;
// the production implementation speaks an OpenAI-compatible API.
package genai

import (
	"context"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
)

// ChatSession is a server-held conversational context bound to one
// persona's system instruction for the duration of its use.
type ChatSession interface {
	// Send forwards a user message and returns the model's reply.
	Send(ctx context.Context, text string) (string, error)
}

// ChatClient creates persona-bound chat sessions.
type ChatClient interface {
	CreateSession(ctx context.Context, systemInstruction string, temperature float32) (ChatSession, error)
}

// Image is a generated image ready to be wrapped in a data URI.
type Image struct {
	MIMEType string
	Data     []byte
}

// ImageClient requests generated images from the hosted model.
type ImageClient interface {
	Generate(ctx context.Context, prompt string, resolution domain.Resolution) (Image, error)
}

// CredentialGate is the interactive credential-selection precondition
// of the image service. It is consulted before every generation, not
// just once.
type CredentialGate interface {
	HasCredential(ctx context.Context) bool
	// RequestCredential triggers the credential-selection step and
	// blocks the generation until it resolves.
	RequestCredential(ctx context.Context) error
}
