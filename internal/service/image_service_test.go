package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/genai"
)

type fakeImageClient struct {
	mu      sync.Mutex
	img     genai.Image
	err     error
	onCall  func()
	prompts []string
	sizes   []domain.Resolution
}

func (f *fakeImageClient) Generate(ctx context.Context, prompt string, resolution domain.Resolution) (genai.Image, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.sizes = append(f.sizes, resolution)
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall()
	}
	return f.img, f.err
}

type fakeGate struct {
	has        bool
	requestErr error
	checks     int
}

func (g *fakeGate) HasCredential(ctx context.Context) bool { g.checks++; return g.has }
func (g *fakeGate) RequestCredential(ctx context.Context) error {
	if g.requestErr != nil {
		return g.requestErr
	}
	g.has = true
	return nil
}

func newImageService(client genai.ImageClient, gate genai.CredentialGate) *ImageService {
	return NewImageService(client, gate, zap.NewNop())
}

func TestGenerateTransitionsToReady(t *testing.T) {
	client := &fakeImageClient{img: genai.Image{MIMEType: "image/png", Data: []byte{1, 2, 3}}}
	svc := newImageService(client, &fakeGate{has: true})

	require.Equal(t, domain.ImageEmpty, svc.State().Phase)

	st, err := svc.Generate(context.Background(), "a siege", domain.Resolution2K)
	require.NoError(t, err)

	assert.Equal(t, domain.ImageReady, st.Phase)
	assert.Contains(t, st.Prompt, "Historical scene from the Mongol Empire: ")
	assert.Contains(t, st.Prompt, "a siege")
	assert.Contains(t, st.DataURI, "data:image/png;base64,")
	assert.Empty(t, st.Error)

	require.Len(t, client.sizes, 1)
	assert.Equal(t, domain.Resolution2K, client.sizes[0])
}

func TestGenerateBlankPromptIsNoop(t *testing.T) {
	client := &fakeImageClient{}
	svc := newImageService(client, &fakeGate{has: true})

	for _, prompt := range []string{"", "   ", "\t\n"} {
		st, err := svc.Generate(context.Background(), prompt, domain.Resolution1K)
		assert.ErrorIs(t, err, domain.ErrBlankInput)
		assert.Equal(t, domain.ImageEmpty, st.Phase, "state unchanged")
	}
	assert.Empty(t, client.prompts, "no request issued")
}

func TestGenerateFailureHoldsGuidanceMessage(t *testing.T) {
	client := &fakeImageClient{err: errors.New("quota exceeded")}
	svc := newImageService(client, &fakeGate{has: true})

	st, err := svc.Generate(context.Background(), "a siege", domain.Resolution1K)
	require.NoError(t, err)

	assert.Equal(t, domain.ImageFailed, st.Phase)
	assert.Equal(t, imageFailureMessage, st.Error)
	assert.NotContains(t, st.Error, "quota exceeded", "raw cause stays out of the user message")
	assert.Empty(t, st.DataURI)
}

func TestGenerateClearsPriorError(t *testing.T) {
	client := &fakeImageClient{err: errors.New("boom")}
	svc := newImageService(client, &fakeGate{has: true})

	_, err := svc.Generate(context.Background(), "a siege", domain.Resolution1K)
	require.NoError(t, err)
	require.Equal(t, domain.ImageFailed, svc.State().Phase)

	client.err = nil
	client.img = genai.Image{MIMEType: "image/png", Data: []byte{9}}
	st, err := svc.Generate(context.Background(), "a feast", domain.Resolution1K)
	require.NoError(t, err)
	assert.Equal(t, domain.ImageReady, st.Phase)
	assert.Empty(t, st.Error)
}

func TestGenerateChecksCredentialEveryTime(t *testing.T) {
	gate := &fakeGate{has: true}
	client := &fakeImageClient{img: genai.Image{MIMEType: "image/png", Data: []byte{1}}}
	svc := newImageService(client, gate)

	_, err := svc.Generate(context.Background(), "one", domain.Resolution1K)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), "two", domain.Resolution1K)
	require.NoError(t, err)

	assert.Equal(t, 2, gate.checks)
}

func TestGenerateBlockedWithoutCredential(t *testing.T) {
	gate := &fakeGate{has: false, requestErr: domain.ErrCredentialMissing}
	client := &fakeImageClient{}
	svc := newImageService(client, gate)

	st, err := svc.Generate(context.Background(), "a siege", domain.Resolution1K)
	assert.ErrorIs(t, err, domain.ErrCredentialMissing)
	assert.Equal(t, domain.ImageEmpty, st.Phase)
	assert.Empty(t, client.prompts, "no request issued without a credential")
}

func TestGenerateResolvedCredentialProceeds(t *testing.T) {
	gate := &fakeGate{has: false} // RequestCredential resolves it
	client := &fakeImageClient{img: genai.Image{MIMEType: "image/png", Data: []byte{1}}}
	svc := newImageService(client, gate)

	st, err := svc.Generate(context.Background(), "a siege", domain.Resolution1K)
	require.NoError(t, err)
	assert.Equal(t, domain.ImageReady, st.Phase)
}

func TestSupersededGenerationDiscarded(t *testing.T) {
	client := &fakeImageClient{img: genai.Image{MIMEType: "image/png", Data: []byte{1}}}
	svc := newImageService(client, &fakeGate{has: true})

	// While the first generation is in flight, a second one starts and
	// completes; the first must not overwrite it.
	client.onCall = func() {
		client.onCall = nil
		client.img = genai.Image{MIMEType: "image/png", Data: []byte{2}}
		_, err := svc.Generate(context.Background(), "newer scene", domain.Resolution1K)
		require.NoError(t, err)
	}

	_, err := svc.Generate(context.Background(), "older scene", domain.Resolution1K)
	require.NoError(t, err)

	st := svc.State()
	assert.Equal(t, domain.ImageReady, st.Phase)
	assert.Contains(t, st.Prompt, "newer scene", "latest request owns the state")
}
