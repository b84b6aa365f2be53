package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aluiziolira/go-artist-catalog/config"
	"github.com/gocolly/colly/v2"
)

const (
	bodyKey   = "body"
	statusKey = "status"
)

// Resolver looks up artist images on the instant-answer API. Lookups are
// synchronous and never retried.
type Resolver struct {
	cfg       *config.Config
	endpoint  *url.URL
	collector *colly.Collector
	Metrics   *Metrics
}

// New builds a resolver configured from cfg.
func New(cfg *config.Config) (*Resolver, error) {
	endpoint, err := url.Parse(cfg.APIEndpoint)
	if err != nil {
		return nil, fmt.Errorf("parse api endpoint: %w", err)
	}
	if endpoint.Host == "" {
		return nil, fmt.Errorf("api endpoint must include a host")
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(endpoint.Hostname()),
		colly.UserAgent(cfg.UserAgent),
		colly.AllowURLRevisit(),
	)
	collector.SetRequestTimeout(cfg.Timeout)
	collector.IgnoreRobotsTxt = true
	collector.WithTransport(&http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	})

	r := &Resolver{
		cfg:       cfg,
		endpoint:  endpoint,
		collector: collector,
		Metrics:   NewMetrics(),
	}
	r.configureHandlers()
	return r, nil
}

func (r *Resolver) configureHandlers() {
	r.collector.OnRequest(func(req *colly.Request) {
		req.Ctx.Put("start", time.Now())
		r.Metrics.IncRequest("started")
	})

	r.collector.OnResponse(func(resp *colly.Response) {
		if start, ok := resp.Request.Ctx.GetAny("start").(time.Time); ok {
			r.Metrics.ObserveDuration(time.Since(start))
		}
		r.Metrics.IncRequest("completed")
		resp.Ctx.Put(bodyKey, resp.Body)
	})

	r.collector.OnError(func(resp *colly.Response, err error) {
		statusCode := 0
		if resp != nil {
			statusCode = resp.StatusCode
			if resp.Ctx != nil {
				resp.Ctx.Put(statusKey, statusCode)
			}
		}
		r.Metrics.IncRequest("failed")
		slog.Debug("instant-answer request failed",
			slog.Int("status", statusCode),
			slog.Any("error", err),
		)
	})
}

// SetTransport replaces the HTTP transport used for lookups.
func (r *Resolver) SetTransport(rt http.RoundTripper) {
	r.collector.WithTransport(rt)
}

// QueryURL returns the instant-answer URL queried for an artist.
func (r *Resolver) QueryURL(artist string) string {
	u := *r.endpoint
	q := url.Values{}
	q.Set("q", artist+" musician")
	q.Set("format", "json")
	q.Set("no_html", "1")
	q.Set("skip_disambig", "1")
	u.RawQuery = q.Encode()
	return u.String()
}

// Resolve issues a single GET for the artist and extracts an image URL.
// Every failure is reported as NotFound; nothing is retried.
func (r *Resolver) Resolve(artist string) Lookup {
	lookup := r.resolve(artist)
	if lookup.Found {
		r.Metrics.IncLookup("found")
		return lookup
	}
	label := ErrorTypeLabel(lookup.Err)
	r.Metrics.IncLookup("not_found")
	r.Metrics.IncError(label)
	slog.Debug("image lookup missed",
		slog.String("artist", artist),
		slog.String("category", label),
		slog.Any("error", lookup.Err),
	)
	return lookup
}

func (r *Resolver) resolve(artist string) Lookup {
	ctx := colly.NewContext()
	hdr := http.Header{}
	hdr.Set("User-Agent", r.cfg.UserAgent)
	hdr.Set("Accept", "application/json")

	if err := r.collector.Request(http.MethodGet, r.QueryURL(artist), nil, ctx, hdr); err != nil {
		status, _ := ctx.GetAny(statusKey).(int)
		return NotFound(classifyError(err, status))
	}

	body, ok := ctx.GetAny(bodyKey).([]byte)
	if !ok {
		return NotFound(ErrDecode{Err: errors.New("empty response")})
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return NotFound(ErrDecode{Err: err})
	}

	img := ExtractImage(doc, r.cfg.SiteURL)
	if img == "" {
		return NotFound(errNoImage)
	}
	return Found(img)
}

func classifyError(err error, statusCode int) error {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}

	if statusCode != 0 {
		wrapped := err
		if wrapped == nil {
			wrapped = fmt.Errorf("http status %d", statusCode)
		}
		switch statusCode {
		case http.StatusForbidden:
			return ErrForbidden{Err: wrapped}
		case http.StatusNotFound:
			return ErrNotFound{Err: wrapped}
		case http.StatusTooManyRequests:
			return ErrRateLimited{Err: wrapped}
		}
	}

	return err
}
