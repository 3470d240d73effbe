package otel

// Metric name prefixes, one per component.
const (
	PrefixSession = "moviematch.session"
	PrefixRooms   = "moviematch.rooms"
	PrefixCatalog = "moviematch.catalog"
	PrefixLibrary = "moviematch.library"
)
