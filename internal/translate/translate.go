// Package translate talks to the Google "gtx" translate endpoint.
package translate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"
	defaultTimeout  = 15 * time.Second
	defaultRate     = rate.Limit(2)
	defaultBurst    = 2

	maxResponseBytes = 1 << 20
)

type Language string

const (
	Thai    Language = "th"
	Spanish Language = "es"
)

// Direction is a source/target language pair.
type Direction struct {
	Source Language
	Target Language
}

var (
	ToSpanish = Direction{Source: Thai, Target: Spanish}
	ToThai    = Direction{Source: Spanish, Target: Thai}
)

func (d Direction) String() string {
	return string(d.Source) + "→" + string(d.Target)
}

type Request struct {
	Direction
	Text string
}

// Gateway translates plain text.
type Gateway interface {
	Translate(ctx context.Context, req Request) (string, error)
}

// ErrMalformedResponse is returned when the body is not the expected nested
// array.
var ErrMalformedResponse = errors.New("translate: malformed response")

// StatusError reports a non-2xx reply.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("translate: http %d", e.Code)
	}
	return fmt.Sprintf("translate: http %d: %s", e.Code, e.Body)
}

type Options struct {
	Endpoint string
	Timeout  time.Duration
	// RequestsPerSecond caps outgoing requests. Zero selects the default.
	RequestsPerSecond float64
	HTTPClient        *http.Client
}

// Client is a Gateway over HTTP. It is safe for concurrent use.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
}

func NewClient(opts Options) *Client {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	limit := defaultRate
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &Client{
		endpoint: endpoint,
		http:     httpClient,
		limiter:  rate.NewLimiter(limit, defaultBurst),
	}
}

func (c *Client) Translate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("translate: endpoint: %w", err)
	}
	q := u.Query()
	q.Set("client", "gtx")
	q.Set("sl", string(req.Source))
	q.Set("tl", string(req.Target))
	q.Set("dt", "t")
	q.Set("q", req.Text)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("translate: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{Code: resp.StatusCode, Body: snippet(body)}
	}
	return ParseResponse(body)
}

// ParseResponse extracts the translation from a gtx reply: element 0 of every
// segment of the first array, concatenated in order.
func ParseResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", ErrMalformedResponse
	}
	root := gjson.ParseBytes(body)
	segments := root.Get("0")
	if !root.IsArray() || !segments.IsArray() {
		return "", ErrMalformedResponse
	}
	var sb strings.Builder
	for _, seg := range segments.Array() {
		if !seg.IsArray() {
			return "", ErrMalformedResponse
		}
		if part := seg.Get("0"); part.Type == gjson.String {
			sb.WriteString(part.Str)
		}
	}
	return sb.String(), nil
}

const maxSnippet = 200

// snippet trims an error body for display without splitting a rune.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxSnippet {
		return s
	}
	i := maxSnippet
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[:i]
}
