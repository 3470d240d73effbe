// Package tmdb is a catalog.Provider backed by The Movie Database REST API.
package tmdb

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/rubsen49-sketch/MovieMatch/catalog"
	"github.com/rubsen49-sketch/MovieMatch/internal/constants"
	"github.com/rubsen49-sketch/MovieMatch/internal/errors"
	"github.com/rubsen49-sketch/MovieMatch/internal/log"
	intotel "github.com/rubsen49-sketch/MovieMatch/internal/otel"
	"github.com/rubsen49-sketch/MovieMatch/internal/retry"
)

const (
	tracerName = "catalog.tmdb"

	// subscription, rental and purchase offers all count as available
	monetizationTypes = "flatrate|rent|buy"
)

type clientImpl struct {
	http          *resty.Client
	language      string
	clock         clockwork.Clock
	retry         retry.Retry
	breaker       *gobreaker.CircuitBreaker[struct{}]
	discover      *expirable.LRU[string, *catalog.Page]
	providers     *expirable.LRU[string, []catalog.StreamingProvider]
	sf            singleflight.Group
	flightTimeout time.Duration // one shared upstream fetch, retries included
	logger        *log.Logger
}

func New(cfg Config, clock clockwork.Clock, logger *log.Logger) (catalog.Provider, error) {
	if !cfg.Enabled() {
		return nil, errors.New(catalog.ErrUnavailable, "tmdb api key is not configured")
	}
	if cfg.CacheSize <= 0 {
		return nil, errors.Newf(errors.ErrInvalidArgument, "invalid cache size %d", cfg.CacheSize)
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetQueryParam("api_key", cfg.APIKey).
		SetTimeout(cfg.Timeout)

	threshold := cfg.Breaker.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "tmdb",
		Timeout: cfg.Breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// missing movies and canceled callers say nothing about TMDB health
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, errors.ErrNotFound) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("tmdb circuit breaker state changed",
				log.String("from", from.String()),
				log.String("to", to.String()))
		},
	})

	return &clientImpl{
		http:          httpClient,
		breaker:       breaker,
		language:      cfg.Language,
		clock:         clock,
		retry:         retry.New(logger, cfg.Retry),
		discover:      expirable.NewLRU[string, *catalog.Page](cfg.CacheSize, nil, cfg.CacheTTL),
		providers:     expirable.NewLRU[string, []catalog.StreamingProvider](cfg.CacheSize, nil, cfg.CacheTTL),
		flightTimeout: cfg.Timeout + cfg.Retry.MaxElapsedTime,
		logger:        logger,
	}, nil
}

func (c *clientImpl) Discover(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	params := c.discoverParams(q)
	key := "discover?" + encode(params)

	if page, ok := c.discover.Get(key); ok {
		cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "discover")))
		return page, nil
	}
	cacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "discover")))

	v, err := c.collapse(ctx, key, func(ctx context.Context) (any, error) {
		var resp discoverResponse
		if err := c.get(ctx, "discover", "/discover/movie", params, &resp); err != nil {
			return nil, err
		}
		page := resp.toPage()
		c.discover.Add(key, page)
		return page, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*catalog.Page), nil
}

func (c *clientImpl) WatchProviders(ctx context.Context, movieID int, region string) ([]catalog.StreamingProvider, error) {
	if movieID <= 0 {
		return nil, errors.Newf(errors.ErrInvalidArgument, "invalid movie id %d", movieID)
	}
	region = strings.ToUpper(region)
	if region == "" {
		region = constants.DefaultRegion
	}
	key := fmt.Sprintf("providers/%d/%s", movieID, region)

	if list, ok := c.providers.Get(key); ok {
		cacheHits.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "providers")))
		return list, nil
	}
	cacheMisses.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "providers")))

	v, err := c.collapse(ctx, key, func(ctx context.Context) (any, error) {
		var resp watchProvidersResponse
		path := fmt.Sprintf("/movie/%d/watch/providers", movieID)
		if err := c.get(ctx, "providers", path, nil, &resp); err != nil {
			return nil, err
		}
		// a region missing from results means nothing streams there
		list := resp.Results[region].toProviders()
		c.providers.Add(key, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]catalog.StreamingProvider), nil
}

// collapse runs fetch once for every concurrent caller of key. The shared
// fetch is detached from the caller that started it; each caller only stops
// waiting when its own ctx ends.
func (c *clientImpl) collapse(
	ctx context.Context,
	key string,
	fetch func(ctx context.Context) (any, error),
) (any, error) {
	ch := c.sf.DoChan(key, func() (any, error) {
		fctx := context.WithoutCancel(ctx)
		if c.flightTimeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(fctx, c.flightTimeout)
			defer cancel()
		}
		return fetch(fctx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (c *clientImpl) discoverParams(q catalog.Query) map[string]string {
	params := map[string]string{
		"include_adult": "false",
		"page":          strconv.Itoa(max(q.Page, 1)),
		"sort_by":       q.SortBy,
	}
	if q.SortBy == "" {
		params["sort_by"] = catalog.SortPopularity
	}
	if c.language != "" {
		params["language"] = c.language
	}
	if len(q.Genres) > 0 {
		params["with_genres"] = joinInts(q.Genres)
	}
	if q.MinRating > 0 {
		params["vote_average.gte"] = strconv.FormatFloat(q.MinRating, 'f', -1, 64)
	}
	if q.MinVotes > 0 {
		params["vote_count.gte"] = strconv.Itoa(q.MinVotes)
	}
	if len(q.Providers) > 0 {
		region := q.Region
		if region == "" {
			region = constants.DefaultRegion
		}
		params["with_watch_providers"] = joinInts(q.Providers)
		params["watch_region"] = region
		params["with_watch_monetization_types"] = monetizationTypes
	}
	if q.YearFrom > 0 {
		params["primary_release_date.gte"] = fmt.Sprintf("%04d-01-01", q.YearFrom)
	}
	if q.YearTo > 0 {
		params["primary_release_date.lte"] = fmt.Sprintf("%04d-12-31", q.YearTo)
	} else if q.YearFrom > 0 {
		params["primary_release_date.lte"] = c.clock.Now().Format(time.DateOnly)
	}
	return params
}

// get issues a GET through the circuit breaker. fetch retries transport
// errors, rate limiting and 5xx answers.
func (c *clientImpl) get(ctx context.Context, op, path string, params map[string]string, out any) (err error) {
	ctx, span := intotel.StartSpan(ctx, tracerName, "tmdb."+op, attribute.String("tmdb.path", path))
	start := c.clock.Now()
	defer func() {
		attrs := metric.WithAttributes(attribute.String("op", op))
		upstreamDuration.Record(ctx, c.clock.Since(start).Seconds(), attrs)
		if err != nil {
			upstreamFailures.Add(ctx, 1, attrs)
		}
		intotel.EndSpan(span, err)
	}()

	_, err = c.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, c.fetch(ctx, op, path, params, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = errors.Wrap(catalog.ErrUnavailable, err, "tmdb circuit open")
	}
	if err != nil {
		c.logger.Warn("tmdb lookup failed",
			log.String("op", op),
			log.String("path", path),
			log.Error(err))
	}
	return err
}

func (c *clientImpl) fetch(ctx context.Context, op, path string, params map[string]string, out any) error {
	return c.retry.Do(ctx, func() error {
		upstreamRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))

		var apiErr errorResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetResult(out).
			SetError(&apiErr).
			Get(path)
		if err != nil {
			if ctx.Err() != nil {
				return retry.Permanent(errors.Wrap(catalog.ErrUpstream, err, "tmdb request canceled"))
			}
			return errors.Wrap(catalog.ErrUpstream, err, "tmdb request failed")
		}
		if !resp.IsError() {
			return nil
		}

		status := resp.StatusCode()
		failure := errors.Newf(catalog.ErrUpstream, "tmdb http error: (code: %d, message: %s)", status, apiErr.StatusMessage)
		if status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
			return failure
		}
		if status == http.StatusNotFound {
			return retry.Permanent(errors.Wrap(errors.ErrNotFound, failure, "tmdb resource not found"))
		}
		return retry.Permanent(failure)
	})
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "|")
}

// encode renders params in key order so equal queries share a cache slot.
func encode(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}
