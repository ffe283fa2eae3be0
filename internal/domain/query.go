package domain

import "time"

// Persisted record of one successful distance calculation.
// A DistanceQuery is only built after both addresses and both resolved
// coordinate pairs have passed validation; it is never mutated afterwards.
// UserID is empty for anonymous calculations.
type DistanceQuery struct {
	ID                string
	Source            string
	Destination       string
	DistanceKm        float64
	SourceCoords      *Coordinates
	DestinationCoords *Coordinates
	UserID            string
	CreatedAt         time.Time
}
