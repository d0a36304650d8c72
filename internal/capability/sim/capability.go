package sim

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"nearby/internal/crypto"
	"nearby/internal/domain"
)

// ErrUnsupported is returned by NewSession when the capability is disabled.
var ErrUnsupported = errors.New("sim: ranging not supported")

// Config tunes the simulated device.
type Config struct {
	Supported    bool
	Interval     time.Duration // between Updated batches
	BaseDistance float64       // meters; the shared baseline is scaled into [0.5, 1.5) of it
	Amplitude    float64       // meters
}

// DefaultConfig returns a supported device updating twice a second.
func DefaultConfig() Config {
	return Config{
		Supported:    true,
		Interval:     500 * time.Millisecond,
		BaseDistance: 2.0,
		Amplitude:    0.5,
	}
}

// Capability hands out simulated ranging sessions.
type Capability struct {
	cfg Config
	log zerolog.Logger
}

// New returns a capability using cfg. A non-positive interval falls back to
// the default.
func New(cfg Config, log zerolog.Logger) *Capability {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	return &Capability{cfg: cfg, log: log}
}

// Supported reports whether the simulated device can range.
func (c *Capability) Supported() bool { return c.cfg.Supported }

// NewSession generates fresh session keys and signs the local token.
func (c *Capability) NewSession(l domain.Listener) (domain.CapabilitySession, error) {
	s, err := c.Open(l)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Open is NewSession returning the concrete session, for callers that
// inject callbacks.
func (c *Capability) Open(l domain.Listener) (*Session, error) {
	if !c.cfg.Supported {
		return nil, ErrUnsupported
	}
	keys, err := crypto.NewSessionKeys()
	if err != nil {
		return nil, fmt.Errorf("generate session keys: %w", err)
	}

	token := encodeToken(keys.Public, keys.Signer, keys.Sig)
	s := &Session{
		cfg:      c.cfg,
		log:      c.log.With().Str("token", string(crypto.Fingerprint(token))).Logger(),
		listener: l,
		keys:     keys,
		token:    token,
	}
	s.log.Debug().Msg("simulated session opened")
	return s, nil
}

// ValidateToken accepts only tokens produced by this capability's format.
func (c *Capability) ValidateToken(t domain.DiscoveryToken) error {
	_, err := parseToken(t)
	return err
}

var _ domain.Capability = (*Capability)(nil)
