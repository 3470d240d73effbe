package service

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/rubsen49-sketch/MovieMatch/internal/otel"
)

var (
	// Room lifecycle
	roomsCreated  metric.Int64Counter
	roomsRemoved  metric.Int64Counter
	roomsReplaced metric.Int64Counter

	// Membership
	joinsTotal     metric.Int64Counter
	joinsNotFound  metric.Int64Counter
	hostMigrations metric.Int64Counter

	// Voting
	votesTotal    metric.Int64Counter
	votesRepeated metric.Int64Counter
	votesOutsider metric.Int64Counter
	matchesTotal  metric.Int64Counter
	gamesStarted  metric.Int64Counter

	// Invitations
	invitesDelivered metric.Int64Counter
	invitesOffline   metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("rooms.service", intotel.PrefixRooms)

	f.Int64Counter(&roomsCreated, "created",
		metric.WithDescription("Total rooms created"))

	f.Int64Counter(&roomsRemoved, "removed",
		metric.WithDescription("Total rooms removed after their last participant left"))

	f.Int64Counter(&roomsReplaced, "replaced",
		metric.WithDescription("Rooms dropped because their code was created again"))

	f.Int64Counter(&joinsTotal, "joins.total",
		metric.WithDescription("Total successful room joins"))

	f.Int64Counter(&joinsNotFound, "joins.not_found",
		metric.WithDescription("Join attempts on unknown room codes"))

	f.Int64Counter(&hostMigrations, "host.migrations",
		metric.WithDescription("Total host promotions after the host left"))

	f.Int64Counter(&votesTotal, "votes.total",
		metric.WithDescription("Total votes received"))

	f.Int64Counter(&votesRepeated, "votes.repeated",
		metric.WithDescription("Votes from a voter who already liked that movie"))

	f.Int64Counter(&votesOutsider, "votes.outsider",
		metric.WithDescription("Votes from connections that are not room members"))

	f.Int64Counter(&matchesTotal, "matches.total",
		metric.WithDescription("Total match_found broadcasts"))

	f.Int64Counter(&gamesStarted, "games.started",
		metric.WithDescription("Total start_game calls accepted"))

	f.Int64Counter(&invitesDelivered, "invites.delivered",
		metric.WithDescription("Invitations delivered to at least one connection"))

	f.Int64Counter(&invitesOffline, "invites.offline",
		metric.WithDescription("Invitations whose target had no live connection"))
}
