package genai

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
)

// KeyGate gates image generation on a configured API credential. The
// server cannot open an interactive selection dialog itself, so
// RequestCredential surfaces guidance to the caller; the UI turns it
// into the selection prompt.
type KeyGate struct {
	lookup func() string
	logger *zap.Logger
}

// NewKeyGate builds a gate over a credential lookup. The lookup is
// re-evaluated on every check so a credential selected mid-session is
// picked up without a restart.
func NewKeyGate(lookup func() string, logger *zap.Logger) *KeyGate {
	return &KeyGate{lookup: lookup, logger: logger}
}

// HasCredential reports whether a credential is currently selected.
func (g *KeyGate) HasCredential(ctx context.Context) bool {
	return strings.TrimSpace(g.lookup()) != ""
}

// RequestCredential reports the missing credential to the caller.
func (g *KeyGate) RequestCredential(ctx context.Context) error {
	g.logger.Warn("image generation requested without a selected credential")
	return domain.ErrCredentialMissing
}
