package domain

// Marker is a labeled point on the timeline ruler (spec §3).
type Marker struct {
	ID       string  `json:"id"`
	Position float64 `json:"position"`
	Icon     string  `json:"icon"`
	Vector   string  `json:"vector"`
}
