package tmdb

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/rubsen49-sketch/MovieMatch/internal/otel"
)

var (
	cacheHits        metric.Int64Counter
	cacheMisses      metric.Int64Counter
	upstreamRequests metric.Int64Counter
	upstreamFailures metric.Int64Counter
	upstreamDuration metric.Float64Histogram
)

func init() {
	f := intotel.NewFactory("catalog.tmdb", intotel.PrefixCatalog)

	f.Int64Counter(&cacheHits, "cache.hits",
		metric.WithDescription("Catalog lookups answered from cache"))

	f.Int64Counter(&cacheMisses, "cache.misses",
		metric.WithDescription("Catalog lookups that went upstream"))

	f.Int64Counter(&upstreamRequests, "upstream.requests",
		metric.WithDescription("HTTP requests sent to TMDB, retries included"))

	f.Int64Counter(&upstreamFailures, "upstream.failures",
		metric.WithDescription("TMDB requests that failed after retries"))

	f.Float64Histogram(&upstreamDuration, "upstream.duration",
		metric.WithDescription("TMDB lookup time including retries"),
		metric.WithUnit("s"))
}
