package dto

type SetOnlineInput struct {
	IsOnline bool `json:"is_online"`
}

type LocationInput struct {
	Lat      float64 `json:"lat" validate:"required,latitude"`
	Lng      float64 `json:"lng" validate:"required,longitude"`
	Heading  float64 `json:"heading" validate:"gte=0,lt=360"`
	SpeedKmh float64 `json:"speed_kmh" validate:"gte=0"`
}
