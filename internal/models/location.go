package models

// Coordinates is a geocoded latitude/longitude pair. It is never persisted.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
