package genai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
)

// silentReply replaces empty model output so the transcript never
// shows a blank bubble.
const silentReply = "I remain silent."

// Wide 16:9 pixel sizes per resolution tier.
var imageSizes = map[domain.Resolution]string{
	domain.Resolution1K: "1024x576",
	domain.Resolution2K: "2048x1152",
	domain.Resolution4K: "4096x2304",
}

// Client talks to an OpenAI-compatible endpoint for both chat and
// image generation.
type Client struct {
	api        *openai.Client
	chatModel  string
	imageModel string
	logger     *zap.Logger
}

// ClientOptions configures the hosted endpoint.
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
}

// NewClient builds a client for the hosted generative endpoint.
func NewClient(opts ClientOptions, logger *zap.Logger) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &Client{
		api:        openai.NewClientWithConfig(cfg),
		chatModel:  opts.ChatModel,
		imageModel: opts.ImageModel,
		logger:     logger,
	}
}

// CreateSession binds a new conversational context to the given system
// instruction and sampling temperature.
func (c *Client) CreateSession(ctx context.Context, systemInstruction string, temperature float32) (ChatSession, error) {
	if c.chatModel == "" {
		return nil, fmt.Errorf("%w: no chat model configured", domain.ErrSessionUnavailable)
	}
	return &chatSession{
		client:      c.api,
		model:       c.chatModel,
		temperature: temperature,
		history: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
		},
	}, nil
}

type chatSession struct {
	client      *openai.Client
	model       string
	temperature float32

	mu      sync.Mutex
	history []openai.ChatCompletionMessage
}

func (s *chatSession) Send(ctx context.Context, text string) (string, error) {
	s.mu.Lock()
	messages := append(append([]openai.ChatCompletionMessage(nil), s.history...),
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text})
	s.mu.Unlock()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		Messages:    messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return silentReply, nil
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		reply = silentReply
	}

	s.mu.Lock()
	s.history = append(s.history,
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: text},
		openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
	)
	s.mu.Unlock()

	return reply, nil
}

// Generate requests one image at the tier's wide 16:9 size and decodes
// the base64 payload.
func (c *Client) Generate(ctx context.Context, prompt string, resolution domain.Resolution) (Image, error) {
	size, ok := imageSizes[resolution]
	if !ok {
		return Image{}, domain.ErrInvalidResolution
	}

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           size,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return Image{}, fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return Image{}, fmt.Errorf("image generation returned no data")
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image payload: %w", err)
	}

	return Image{MIMEType: "image/png", Data: raw}, nil
}
