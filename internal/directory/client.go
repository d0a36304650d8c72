package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"nearby/internal/domain"
	"nearby/internal/metrics"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client is the HTTP implementation of domain.DirectoryClient.
type Client struct {
	Base string
	HTTP *http.Client

	// Validate vets fetched tokens beyond base64 decoding. Nil accepts any
	// non-empty token.
	Validate func(domain.DiscoveryToken) error

	log zerolog.Logger
}

// NewHTTP returns a client for the directory rooted at base.
func NewHTTP(base string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		Base: strings.TrimRight(base, "/"),
		HTTP: httpClient,
		log:  log,
	}
}

var _ domain.DirectoryClient = (*Client)(nil)

// Publish uploads token and returns the id the directory assigned to it.
func (c *Client) Publish(ctx context.Context, token domain.DiscoveryToken) (id domain.TokenID, err error) {
	start := time.Now()
	defer func() { c.record("publish", err, start) }()

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(domain.PublishRequest{Token: token.Base64()}); err != nil {
		return 0, fmt.Errorf("%w: encode publish body: %w", ErrNetwork, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base, buf)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")

	entry, err := c.do(req)
	if err != nil {
		return 0, err
	}
	c.log.Debug().Int("id", int(entry.ID)).Msg("published local token")
	return entry.ID, nil
}

// Fetch downloads and decodes the token published under id.
func (c *Client) Fetch(ctx context.Context, id domain.TokenID) (token domain.DiscoveryToken, err error) {
	start := time.Now()
	defer func() { c.record("fetch", err, start) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+"/"+id.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	entry, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if entry.ID != id {
		return nil, fmt.Errorf("%w: asked for id %d, got entry %d", ErrDecode, id, entry.ID)
	}

	token, err = domain.DecodeBase64Token(entry.Token)
	if err != nil {
		return nil, fmt.Errorf("%w: id %d: %w", ErrTokenDecode, id, err)
	}
	if token.Empty() {
		return nil, fmt.Errorf("%w: id %d: empty token", ErrTokenDecode, id)
	}
	if c.Validate != nil {
		if err := c.Validate(token); err != nil {
			return nil, fmt.Errorf("%w: id %d: %w", ErrTokenDecode, id, err)
		}
	}
	c.log.Debug().Int("id", int(id)).Int("bytes", len(token)).Msg("fetched peer token")
	return token, nil
}

// wireEntry mirrors domain.DirectoryEntry with every field required.
type wireEntry struct {
	ID      *domain.TokenID `json:"id"`
	Token   *string         `json:"token"`
	Success *bool           `json:"success"`
}

func (c *Client) do(req *http.Request) (domain.DirectoryEntry, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return domain.DirectoryEntry{}, fmt.Errorf("%w: %s %s: %w", ErrNetwork, req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return domain.DirectoryEntry{}, &StatusError{
			Method:     req.Method,
			URL:        req.URL.String(),
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.DirectoryEntry{}, fmt.Errorf("%w: %s %s: reading body: %w", ErrNetwork, req.Method, req.URL, err)
	}
	return decodeEntry(body)
}

// decodeEntry checks the success flag before requiring the other fields so
// that a bare {"success":false} reads as a rejection.
func decodeEntry(body []byte) (domain.DirectoryEntry, error) {
	var w wireEntry
	if err := json.Unmarshal(body, &w); err != nil {
		return domain.DirectoryEntry{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if w.Success == nil {
		return domain.DirectoryEntry{}, fmt.Errorf("%w: missing success", ErrDecode)
	}
	if !*w.Success {
		return domain.DirectoryEntry{}, ErrServerRejected
	}
	if w.ID == nil || w.Token == nil {
		return domain.DirectoryEntry{}, fmt.Errorf("%w: missing id or token", ErrDecode)
	}
	return domain.DirectoryEntry{ID: *w.ID, Token: *w.Token, Success: true}, nil
}

func (c *Client) record(op string, err error, start time.Time) {
	elapsed := time.Since(start)
	metrics.RecordDirectoryRequest(op, outcome(err), elapsed)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Dur("elapsed", elapsed).Msg("directory request failed")
	}
}
