package covers

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	_ "golang.org/x/image/webp"
	"golang.org/x/time/rate"
)

// ErrBlank is returned for the 1x1 pixel image the covers host serves when it
// has no art for a key.
var ErrBlank = errors.New("blank cover image")

const (
	defaultTimeout   = 15 * time.Second
	defaultUserAgent = "bookfinder/0.1"
	maxImageBytes    = 10 << 20
)

// Loader downloads cover images and turns them into terminal art.
type Loader struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

type LoaderOption func(*Loader)

func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		if client != nil {
			l.http = client
		}
	}
}

// WithRate throttles image requests. A non-positive rate disables throttling.
func WithRate(perSecond float64, burst int) LoaderOption {
	return func(l *Loader) {
		if perSecond <= 0 {
			l.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		l.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		http:      &http.Client{Timeout: defaultTimeout},
		limiter:   rate.NewLimiter(rate.Limit(4), 8),
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Fetch downloads and decodes the image at url.
func (l *Loader) Fetch(ctx context.Context, url string) (image.Image, error) {
	if l.limiter != nil {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")
	req.Header.Set("User-Agent", l.userAgent)

	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("cover %s returned status %d", url, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if b := img.Bounds(); b.Dx() <= 1 || b.Dy() <= 1 {
		return nil, ErrBlank
	}
	return img, nil
}

// Load fetches url and renders it into a cols x rows block of cells.
func (l *Loader) Load(ctx context.Context, url string, cols, rows int) (string, error) {
	img, err := l.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return Render(img, cols, rows), nil
}
