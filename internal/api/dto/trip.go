package dto

type SetHomeRequest struct {
	Label   string   `json:"label"`
	Address string   `json:"address"`
	Zip     string   `json:"zip"`
	Lon     *float64 `json:"lon"`
	Lat     *float64 `json:"lat"`
}

type SetHomeResponse struct {
	Home     StopResponse `json:"home"`
	Resolved bool         `json:"resolved"`
}

type AddStopRequest struct {
	LocationID string `json:"location_id"`
}

type AddStopResponse struct {
	Added     bool `json:"added"`
	StopCount int  `json:"stop_count"`
}

type StopResponse struct {
	Kind     string      `json:"kind"`
	Label    string      `json:"label"`
	Retailer string      `json:"retailer"`
	Address  string      `json:"address"`
	City     string      `json:"city"`
	State    string      `json:"state"`
	Zip      string      `json:"zip"`
	Phone    string      `json:"phone"`
	Contact  string      `json:"contact"`
	Coord    *[2]float64 `json:"coord"`
}

type TripResponse struct {
	Home  *StopResponse  `json:"home"`
	Stops []StopResponse `json:"stops"`
}

type RouteRequest struct {
	Mode string `json:"mode"`
}

type RouteLegResponse struct {
	FromLabel       string `json:"from_label"`
	ToLabel         string `json:"to_label"`
	DistanceMeters  int    `json:"distance_meters"`
	DurationSeconds int    `json:"duration_seconds"`
}

type RouteTotalsResponse struct {
	DistanceMeters  int `json:"distance_meters"`
	DurationSeconds int `json:"duration_seconds"`
}

type RouteResponse struct {
	Mode   string               `json:"mode"`
	Stops  []StopResponse       `json:"stops"`
	Legs   []RouteLegResponse   `json:"legs"`
	Totals *RouteTotalsResponse `json:"totals"`
}

type LinksResponse struct {
	Provider string   `json:"provider"`
	Links    []string `json:"links"`
}
