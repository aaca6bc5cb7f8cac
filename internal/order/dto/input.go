package dto

// DeliveryTarget is a closed sum: an order is delivered either to a
// saved address or to an inline drop-off point, never both.
type DeliveryTarget interface{ isDeliveryTarget() }

type SavedAddress struct {
	AddressID string
}

type InlineLocation struct {
	Lat  float64
	Lng  float64
	Text string
}

func (SavedAddress) isDeliveryTarget()   {}
func (InlineLocation) isDeliveryTarget() {}

type InlineLocationInput struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Text string  `json:"address"`
}

type CheckoutInput struct {
	AddressID     string               `json:"address_id"`
	Location      *InlineLocationInput `json:"current_location"`
	PaymentMethod string               `json:"payment_method" validate:"required,oneof=cod card bank"`
	Note          string               `json:"note"`
}

type TransitionInput struct {
	PrepTimeMinutes *int `json:"prep_time_minutes"`
}

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type ChatInput struct {
	Message string `json:"message" validate:"required"`
}
