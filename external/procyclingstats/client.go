package procyclingstats

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/cache"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cycling/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-cycling/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	DefaultBaseURL   = "https://www.procyclingstats.com"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	defaultTimeout   = 30 * time.Second
	defaultStartHour = 9
	maxRedirects     = 10
	maxBodyBytes     = 8 << 20
)

var errPCSTransient = crerr.New("procyclingstats transient failure")

// StatusError is a non-2xx answer from procyclingstats. Client errors
// (except 429) unwrap to usecase.ErrRemoteNoData; everything else to
// usecase.ErrDependencyUnavailable.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("procyclingstats status=%d url=%s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() []error {
	if isTransientStatus(e.StatusCode) {
		return []error{usecase.ErrDependencyUnavailable, errPCSTransient}
	}
	return []error{usecase.ErrRemoteNoData}
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Headers        map[string]string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Cache dedupes page fetches by URL for its TTL. Optional.
	Cache *cache.Store
	// Location and DefaultStart* place calendar dates on the clock.
	// 00:00 falls back to 09:00.
	Location           *time.Location
	DefaultStartHour   int
	DefaultStartMinute int
}

// Client fetches procyclingstats pages and parses them into usecase rows.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	headers     map[string]string
	logger      *logging.Logger
	breaker     *resilience.CircuitBreaker
	cache       *cache.Store
	flight      resilience.SingleFlight
	location    *time.Location
	startHour   int
	startMinute int
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:       timeout,
			Transport:     otelhttp.NewTransport(http.DefaultTransport),
			CheckRedirect: limitRedirects,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	headers := make(map[string]string, len(cfg.Headers)+1)
	for key, value := range cfg.Headers {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		headers[http.CanonicalHeaderKey(key)] = strings.TrimSpace(value)
	}
	if strings.TrimSpace(headers["User-Agent"]) == "" {
		headers["User-Agent"] = DefaultUserAgent
	}

	location := cfg.Location
	if location == nil {
		location = time.UTC
	}
	startHour, startMinute := cfg.DefaultStartHour, cfg.DefaultStartMinute
	if startHour == 0 && startMinute == 0 {
		startHour = defaultStartHour
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		headers:     headers,
		logger:      logger.Named("procyclingstats"),
		breaker:     cfg.CircuitBreaker.NewBreaker(),
		cache:       cfg.Cache,
		location:    location,
		startHour:   startHour,
		startMinute: startMinute,
	}
}

func (c *Client) FetchRaceResults(ctx context.Context, slug string, year int) ([]usecase.ParsedResultRow, error) {
	pageURL, err := c.racePageURL(slug, year, "result")
	if err != nil {
		return nil, err
	}

	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch results slug=%s year=%d: %w", slug, year, err)
	}

	return ParseResults(doc), nil
}

func (c *Client) FetchStartlist(ctx context.Context, slug string, year int) ([]usecase.ParsedStartlistEntry, error) {
	pageURL, err := c.racePageURL(slug, year, "startlist")
	if err != nil {
		return nil, err
	}

	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch startlist slug=%s year=%d: %w", slug, year, err)
	}

	return ParseStartlist(doc), nil
}

func (c *Client) FetchRaceCalendar(ctx context.Context, year int, filter usecase.CalendarFilter) ([]usecase.ParsedRaceRow, error) {
	if year <= 0 {
		return nil, fmt.Errorf("%w: year must be > 0", usecase.ErrInvalidInput)
	}
	pageURL := c.calendarURL(year, filter)

	doc, err := c.fetchDocument(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch race calendar year=%d circuit=%s class=%s: %w", year, filter.Circuit, filter.Class, err)
	}

	return ParseCalendar(doc, CalendarOptions{
		Year:          year,
		Location:      c.location,
		DefaultHour:   c.startHour,
		DefaultMinute: c.startMinute,
	}), nil
}

func (c *Client) racePageURL(slug string, year int, page string) (string, error) {
	escaped, err := escapeSlug(slug)
	if err != nil {
		return "", err
	}
	if year <= 0 {
		return "", fmt.Errorf("%w: year must be > 0", usecase.ErrInvalidInput)
	}

	return fmt.Sprintf("%s/race/%s/%d/%s", c.baseURL, escaped, year, page), nil
}

func (c *Client) calendarURL(year int, filter usecase.CalendarFilter) string {
	return fmt.Sprintf(
		"%s/races.php?s=&year=%d&circuit=%s&class=%s&filter=Filter",
		c.baseURL,
		year,
		url.QueryEscape(strings.TrimSpace(filter.Circuit)),
		url.QueryEscape(strings.TrimSpace(filter.Class)),
	)
}

// escapeSlug unescapes once and escapes once so pre-encoded slugs such as
// "tour-de-l%27avenir" are not double encoded.
func escapeSlug(slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return "", fmt.Errorf("%w: race slug is required", usecase.ErrInvalidInput)
	}

	unescaped, err := url.PathUnescape(slug)
	if err != nil {
		return "", fmt.Errorf("%w: race slug %q: %v", usecase.ErrInvalidInput, slug, err)
	}
	for _, candidate := range []string{slug, unescaped} {
		if strings.ContainsAny(candidate, "/?#") || strings.IndexFunc(candidate, unicode.IsSpace) >= 0 {
			return "", fmt.Errorf("%w: race slug %q contains a reserved character", usecase.ErrInvalidInput, slug)
		}
	}

	return url.PathEscape(unescaped), nil
}

func (c *Client) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := c.fetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

func (c *Client) fetchPage(ctx context.Context, pageURL string) ([]byte, error) {
	load := func(ctx context.Context) (any, error) {
		return c.guardedRequest(ctx, pageURL)
	}

	var (
		out any
		err error
	)
	if c.cache != nil {
		out, err = c.cache.GetOrLoad(ctx, pageURL, load)
	} else {
		out, err, _ = c.flight.Do(pageURL, func() (any, error) { return load(ctx) })
	}
	if err != nil {
		return nil, err
	}

	body, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected page payload type %T", out)
	}
	return body, nil
}

func (c *Client) guardedRequest(ctx context.Context, pageURL string) ([]byte, error) {
	if c.breaker != nil {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "procyclingstats circuit breaker rejected request", "url", pageURL, "state", c.breaker.State())
			return nil, fmt.Errorf("%w: procyclingstats is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	body, err := c.executeRequest(ctx, pageURL)
	if c.breaker != nil {
		if err != nil && isTransient(err) {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	if err != nil {
		var statusErr *StatusError
		if stderrors.As(err, &statusErr) {
			c.logger.WarnContext(ctx, "procyclingstats request failed", "url", pageURL, "status", statusErr.StatusCode, "body", statusErr.Body, "error", err)
		} else {
			c.logger.WarnContext(ctx, "procyclingstats request failed", "url", pageURL, "error", err)
		}
		return nil, err
	}

	return body, nil
}

func (c *Client) executeRequest(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w: send request: %v", usecase.ErrDependencyUnavailable, errPCSTransient, err)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w: read response body: %v", usecase.ErrDependencyUnavailable, errPCSTransient, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			URL:        pageURL,
			Body:       abbreviateBody(buf.B),
		}
	}

	body := make([]byte, buf.Len())
	copy(body, buf.B)
	return body, nil
}

func limitRedirects(_ *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return nil
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errPCSTransient)
}

// Anything that is not a plain client error may succeed on a later run.
func isTransientStatus(code int) bool {
	if code == http.StatusTooManyRequests {
		return true
	}
	return code < http.StatusBadRequest || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
