package model

import "time"

// RiderProfile holds the presence flag matching scans over. Upserted
// when the rider toggles online/offline.
type RiderProfile struct {
	RiderID   string    `db:"rider_id" json:"rider_id"`
	IsOnline  bool      `db:"is_online" json:"is_online"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RiderLocation is the most recent known position, one per rider, kept
// in Redis. No history is retained.
type RiderLocation struct {
	RiderID   string    `json:"rider_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Heading   float64   `json:"heading"`
	SpeedKmh  float64   `json:"speed_kmh"`
	IsMoving  bool      `json:"is_moving"`
	UpdatedAt time.Time `json:"updated_at"`
}
