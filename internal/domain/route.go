package domain

// RouteLeg is the computed travel between two consecutive stops in
// routing order. Distance and duration come entirely from an external
// route leg provider; the engine only shapes requests and results.
type RouteLeg struct {
	FromLabel       string
	ToLabel         string
	DistanceMeters  int
	DurationSeconds int
}

// RouteTotals aggregates leg metrics for a whole routing-ready trip.
// A nil *RouteTotals means leg data was unavailable (provider failure);
// the trip remains usable without it.
type RouteTotals struct {
	DistanceMeters  int
	DurationSeconds int
}
