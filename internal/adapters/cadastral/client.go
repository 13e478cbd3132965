// Package cadastral provides the HTTP client for the municipal POT lookup
// source. The client does a single exchange per dispatch; timing, retries,
// and supersession are owned by the lookup session, never by the transport
package cadastral

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	perr "lotlens/internal/platform/errors"
	"lotlens/internal/platform/logger"
	"lotlens/internal/services/lookup/domain"

	"lotlens/internal/core/potrecord"
)

const (
	defaultTimeout = 60 * time.Second
	defaultUA      = "lotlens-api"
)

// Options configures the Client
type Options struct {
	BaseURL   string
	UserAgent string

	// Timeout bounds one HTTP exchange. Keep it above the session
	// deadline so the session, not the socket, decides the timeout
	Timeout time.Duration
}

// Client is the cadastral source client
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("cadastral"),
		now:  time.Now,
	}
}

// query is the upstream request body. Exactly one key is set per dispatch
type query struct {
	CBML      string `json:"cbml,omitempty"`
	Matricula string `json:"matricula,omitempty"`
	Direccion string `json:"direccion,omitempty"`
}

// response is the upstream reply shape
type response struct {
	Found bool               `json:"found"`
	Data  *potrecord.Payload `json:"data,omitempty"`
	Text  string             `json:"text,omitempty"`
}

// Dispatch implements domain.DispatcherPort with one POST exchange
func (c *Client) Dispatch(ctx context.Context, req domain.Request) (domain.RawResult, error) {
	var q query
	switch req.Kind {
	case domain.KindCadastralCode:
		q.CBML = req.Value
	case domain.KindRegistrationNumber:
		q.Matricula = req.Value
	case domain.KindAddress:
		q.Direccion = req.Value
	default:
		return domain.RawResult{}, perr.InvalidArgf("unsupported query kind %q", string(req.Kind))
	}

	body, err := json.Marshal(q)
	if err != nil {
		return domain.RawResult{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "cadastral marshal query failed")
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+"/consulta", bytes.NewReader(body))
	if err != nil {
		return domain.RawResult{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "cadastral new request failed")
	}
	hreq.Header.Set("User-Agent", c.opts.UserAgent)
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.http.Do(hreq)
	lat := c.now().Sub(start)
	if err != nil {
		return domain.RawResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "cadastral request failed")
	}
	defer resp.Body.Close()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Str("kind", string(req.Kind)).
		Msg("cadastral exchange")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck
		return domain.RawResult{}, perr.Upstreamf(resp.StatusCode, "cadastral source returned %d", resp.StatusCode)
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.RawResult{}, perr.Wrapf(err, perr.ErrorCodeParse, "cadastral response not decodable")
	}
	return domain.RawResult{Found: out.Found, Payload: out.Data, Text: out.Text}, nil
}

// Ping checks reachability for readiness probes
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"/", nil)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnknown, "cadastral ping request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "cadastral unreachable")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024)) //nolint:errcheck
	if resp.StatusCode >= 500 {
		return perr.Upstreamf(resp.StatusCode, "cadastral source unhealthy")
	}
	return nil
}
