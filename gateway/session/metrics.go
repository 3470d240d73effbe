package session

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/rubsen49-sketch/MovieMatch/internal/otel"
)

// sessions
var (
	sessionsOpen   metric.Int64UpDownCounter
	sessionsOpened metric.Int64Counter
	sessionsClosed metric.Int64Counter
	tokenChecks    metric.Int64Counter
	tokensRejected metric.Int64Counter
)

// methods, tagged with the method name
var (
	methodCalls      metric.Int64Counter
	methodErrors     metric.Int64Counter
	methodLatency    metric.Float64Histogram
	methodsThrottled metric.Int64Counter
)

// room events pushed to clients, tagged with the event name
var (
	eventsDelivered metric.Int64Counter
	eventsDropped   metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("gateway.session", intotel.PrefixSession)

	f.Int64UpDownCounter(&sessionsOpen, "open",
		metric.WithDescription("Players currently connected"))
	f.Int64Counter(&sessionsOpened, "opened",
		metric.WithDescription("Player connections accepted"))
	f.Int64Counter(&sessionsClosed, "closed",
		metric.WithDescription("Player connections closed, for any reason"))
	f.Int64Counter(&tokenChecks, "token.checks",
		metric.WithDescription("Connect tokens presented"))
	f.Int64Counter(&tokensRejected, "token.rejected",
		metric.WithDescription("Connect tokens refused at upgrade"))

	f.Int64Counter(&methodCalls, "method.calls",
		metric.WithDescription("Room methods handled"))
	f.Int64Counter(&methodErrors, "method.errors",
		metric.WithDescription("Room methods answered with an error"))
	f.Float64Histogram(&methodLatency, "method.latency",
		metric.WithDescription("Time spent inside a room method"),
		metric.WithUnit("ms"))
	f.Int64Counter(&methodsThrottled, "method.throttled",
		metric.WithDescription("Calls refused by the per-connection limiter"))

	f.Int64Counter(&eventsDelivered, "events.delivered",
		metric.WithDescription("Room events queued on a player connection"))
	f.Int64Counter(&eventsDropped, "events.dropped",
		metric.WithDescription("Room events that could not be queued"))
}
