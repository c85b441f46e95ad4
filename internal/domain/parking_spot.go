package domain

// ParkingSpot is the single display shape for a record from /parking. Both the
// home and the explore screens read it; raw records go through the
// normalization table in internal/mapper before landing here.
type ParkingSpot struct {
	ID          ID       `json:"id"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Distance    string   `json:"distance"`
	Price       Money    `json:"price"`
	PriceUnit   string   `json:"priceUnit,omitempty"`
	Available   int      `json:"available"`
	Image       string   `json:"image"`
	Rating      float64  `json:"rating"`
	Features    []string `json:"features"`
	Open24Hours bool     `json:"open24Hours"`
	Keywords    []string `json:"keywords"`
}

// PriceLabel is the rendered rate, e.g. "$2.50/hr".
func (p ParkingSpot) PriceLabel() string {
	return p.Price.PerUnit(p.PriceUnit)
}

// QuickReservation is the minimal "book now" payload posted to /bookings.
type QuickReservation struct {
	ParkingID ID            `json:"parkingId"`
	StartTime string        `json:"startTime"`
	Status    BookingStatus `json:"status"`
}
