package dto

import "time"

type CalculateRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	// km, miles or both; empty means km.
	Metric string `json:"metric,omitempty"`
}

type CoordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type EndpointResponse struct {
	Address     string              `json:"address"`
	Coordinates CoordinatesResponse `json:"coordinates"`
}

type CalculateResponse struct {
	ID            string           `json:"id"`
	Distance      float64          `json:"distance"`
	DistanceMiles *float64         `json:"distance_miles,omitempty"`
	Metric        string           `json:"metric"`
	Source        EndpointResponse `json:"source"`
	Destination   EndpointResponse `json:"destination"`
	CreatedAt     time.Time        `json:"created_at"`
}

type SuggestionResponse struct {
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type QueryResponse struct {
	ID                string               `json:"id"`
	Source            string               `json:"source"`
	Destination       string               `json:"destination"`
	Distance          float64              `json:"distance"`
	SourceCoords      *CoordinatesResponse `json:"source_coords,omitempty"`
	DestinationCoords *CoordinatesResponse `json:"destination_coords,omitempty"`
	UserID            string               `json:"user_id,omitempty"`
	CreatedAt         time.Time            `json:"created_at"`
}

type NotFoundResponse struct {
	Status             int      `json:"status"`
	Message            string   `json:"message"`
	Tip                string   `json:"tip"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}
