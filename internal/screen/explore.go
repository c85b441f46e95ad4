package screen

import (
	"context"
	"parking_app/internal/domain"
	"parking_app/internal/service"
)

type ExploreScreen struct {
	parking *service.ParkingService
	toasts  Notifier

	AllSpots   []domain.ParkingSpot
	Query      string
	Result     service.SearchResult
	Loading    bool
	Refreshing bool

	Selected            *domain.ParkingSpot
	BookingModalVisible bool
}

func NewExploreScreen(parking *service.ParkingService, toasts Notifier) *ExploreScreen {
	return &ExploreScreen{parking: parking, toasts: toasts}
}

func (s *ExploreScreen) Load(ctx context.Context) error {
	s.Loading = true
	defer func() { s.Loading = false }()
	spots, err := s.parking.ListSpots(ctx, false)
	return s.Loaded(spots, err, false)
}

func (s *ExploreScreen) Refresh(ctx context.Context) error {
	s.Refreshing = true
	defer func() { s.Refreshing = false }()
	spots, err := s.parking.ListSpots(ctx, true)
	return s.Loaded(spots, err, true)
}

// Loaded applies a fetch result. The interactive explorer fetches off the
// render loop and hands the result back here.
func (s *ExploreScreen) Loaded(spots []domain.ParkingSpot, err error, refresh bool) error {
	if err != nil {
		s.AllSpots = []domain.ParkingSpot{}
		s.Result = service.FilterSpots(s.AllSpots, s.Query)
		showError(s.toasts, "Failed to fetch parking spots.")
		return err
	}
	s.AllSpots = spots
	s.Result = service.FilterSpots(s.AllSpots, s.Query)
	if refresh {
		show(s.toasts, ToastSuccess, "Refreshed", "Parking spots updated successfully.")
	}
	return nil
}

// SetQuery refilters the loaded spots; it runs on every keystroke.
func (s *ExploreScreen) SetQuery(q string) {
	s.Query = q
	s.Result = service.FilterSpots(s.AllSpots, q)
}

func (s *ExploreScreen) Select(spot domain.ParkingSpot) {
	s.Selected = &spot
	s.BookingModalVisible = true
}

func (s *ExploreScreen) CloseBooking() {
	s.BookingModalVisible = false
}

// ConfirmBooking reserves the selected spot starting now.
func (s *ExploreScreen) ConfirmBooking(ctx context.Context) (*domain.Booking, error) {
	if s.Selected == nil {
		return nil, service.ErrBookingNotLoaded
	}
	booking, err := s.parking.BookNow(ctx, s.Selected.ID)
	return s.Booked(booking, err)
}

func (s *ExploreScreen) Booked(booking *domain.Booking, err error) (*domain.Booking, error) {
	if err != nil {
		showError(s.toasts, "Failed to confirm booking. Please try again.")
		return nil, err
	}
	s.BookingModalVisible = false
	show(s.toasts, ToastSuccess, "Booking Confirmed", "Your parking spot has been reserved.")
	return booking, nil
}
