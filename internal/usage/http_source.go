package usage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultURL          = "https://datapass.de"
	DefaultCookie       = "Apollo-Summation-Disabled=true; Apollo-Lang=en_DE_TMDE"
	DefaultFetchTimeout = 30 * time.Second
	maxRedirects        = 10
	maxBodyBytes        = 5 << 20

	// The page blocks obvious non-browser clients.
	browserUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/144.0.0.0 Safari/537.36"
)

type HTTPOptions struct {
	URL     string
	Cookie  string
	Timeout time.Duration
	// NoFingerprint leaves the transport as is instead of mimicking a
	// browser TLS handshake.
	NoFingerprint bool
}

type HTTPSource struct {
	client *resty.Client
	url    string
	cookie string
}

func NewHTTPSource(opts HTTPOptions) *HTTPSource {
	url := strings.TrimSpace(opts.URL)
	if url == "" {
		url = DefaultURL
	}
	cookie := strings.TrimSpace(opts.Cookie)
	if cookie == "" {
		cookie = DefaultCookie
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(maxRedirects))
	client.SetHeaders(map[string]string{
		"User-Agent":      browserUserAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Cache-Control":   "no-cache",
		"Pragma":          "no-cache",
	})
	if !opts.NoFingerprint {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	return &HTTPSource{
		client: client,
		url:    url,
		cookie: cookie,
	}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) (string, error) {
	res, err := s.client.R().
		SetContext(ctx).
		SetHeader("Cookie", s.cookie).
		SetDoNotParseResponse(true).
		Get(s.url)
	if err != nil {
		return "", &TransportError{Source: s.url, Err: err}
	}
	body := res.RawBody()
	defer body.Close()

	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes+1))
	if err != nil {
		return "", &TransportError{Source: s.url, StatusCode: res.StatusCode(), Err: err}
	}
	if len(data) > maxBodyBytes {
		return "", &TransportError{
			Source:     s.url,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("response body exceeds %d bytes", maxBodyBytes),
		}
	}
	if !res.IsSuccess() {
		return "", &TransportError{
			Source:     s.url,
			StatusCode: res.StatusCode(),
			Err:        errors.New(summarizeBody(data)),
		}
	}
	return string(data), nil
}

func (s *HTTPSource) Close() error {
	return nil
}

func summarizeBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "empty response body"
	}
	if len(s) > 180 {
		return s[:180] + "..."
	}
	return s
}
