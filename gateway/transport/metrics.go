package transport

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/rubsen49-sketch/MovieMatch/internal/otel"
)

var (
	discoverRequests  metric.Int64Counter
	providerRequests  metric.Int64Counter
	catalogFailures   metric.Int64Counter
	libraryReads      metric.Int64Counter
	libraryWrites     metric.Int64Counter
	libraryFailures   metric.Int64Counter
	snapshotsNotFound metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("gateway.transport", intotel.PrefixLibrary)

	f.Int64Counter(&libraryReads, "reads",
		metric.WithDescription("Library documents served"))

	f.Int64Counter(&libraryWrites, "writes",
		metric.WithDescription("Library upserts accepted"))

	f.Int64Counter(&libraryFailures, "failures",
		metric.WithDescription("Library requests that failed in the store"))

	c := intotel.NewFactory("gateway.transport", intotel.PrefixCatalog)

	c.Int64Counter(&discoverRequests, "http.discover",
		metric.WithDescription("Discover requests served over HTTP"))

	c.Int64Counter(&providerRequests, "http.providers",
		metric.WithDescription("Watch provider requests served over HTTP"))

	c.Int64Counter(&catalogFailures, "http.failures",
		metric.WithDescription("Catalog HTTP requests that failed upstream"))

	r := intotel.NewFactory("gateway.transport", intotel.PrefixRooms)

	r.Int64Counter(&snapshotsNotFound, "http.snapshot_not_found",
		metric.WithDescription("Room snapshot requests for unknown rooms"))
}
