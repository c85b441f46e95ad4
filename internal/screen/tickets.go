package screen

import (
	"context"
	"errors"
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/service"
)

// TicketsScreen is the booking history with its detail, checkout, bill and
// add/edit modals.
type TicketsScreen struct {
	ctrl    *service.BookingController
	toasts  Notifier
	confirm service.Confirmer

	Tickets    []domain.Booking
	Loading    bool
	Refreshing bool

	Selected        *domain.Booking
	Bill            *domain.Bill
	Alert           *service.ValidationError
	DetailsVisible  bool
	CheckoutVisible bool
	BillVisible     bool
	FormVisible     bool
}

func NewTicketsScreen(ctrl *service.BookingController, confirm service.Confirmer, toasts Notifier) *TicketsScreen {
	return &TicketsScreen{ctrl: ctrl, confirm: confirm, toasts: toasts}
}

func (s *TicketsScreen) Load(ctx context.Context) error {
	s.Loading = true
	defer func() { s.Loading = false }()
	return s.fetch(ctx, false)
}

func (s *TicketsScreen) Refresh(ctx context.Context) error {
	s.Refreshing = true
	defer func() { s.Refreshing = false }()
	if err := s.fetch(ctx, true); err != nil {
		return err
	}
	show(s.toasts, ToastSuccess, "Refreshed", "Bookings updated successfully.")
	return nil
}

func (s *TicketsScreen) fetch(ctx context.Context, refresh bool) error {
	_, err := s.ctrl.List(ctx, refresh)
	s.Tickets = s.ctrl.Tickets()
	if err != nil {
		showError(s.toasts, "Failed to load bookings.")
		return err
	}
	return nil
}

func (s *TicketsScreen) Open(ticket domain.Booking) {
	s.Selected = &ticket
	s.DetailsVisible = true
}

// RequestCheckout moves from the detail modal to the checkout confirmation.
func (s *TicketsScreen) RequestCheckout() {
	s.DetailsVisible = false
	s.CheckoutVisible = true
}

func (s *TicketsScreen) Checkout(ctx context.Context) (*domain.Bill, error) {
	if s.Selected == nil {
		return nil, service.ErrBookingNotLoaded
	}
	updated, bill, err := s.ctrl.Checkout(ctx, s.Selected.ID)
	if err != nil {
		showError(s.toasts, "Failed to complete checkout. Please try again.")
		return nil, err
	}
	s.Tickets = s.ctrl.Tickets()
	s.Selected = updated
	s.Bill = bill
	s.CheckoutVisible = false
	s.BillVisible = true
	show(s.toasts, ToastSuccess, "Checkout Complete", fmt.Sprintf("Successfully checked out from %s.", updated.ParkingName))
	return bill, nil
}

func (s *TicketsScreen) OpenAdd() {
	s.Selected = nil
	s.FormVisible = true
}

func (s *TicketsScreen) OpenEdit(ticket domain.Booking) {
	s.Selected = &ticket
	s.FormVisible = true
}

// EditForm pre-fills the form for the selected ticket, or returns a blank
// form when adding.
func (s *TicketsScreen) EditForm() service.BookingForm {
	if s.Selected == nil {
		return service.BookingForm{Status: domain.BookingUpcoming}
	}
	return service.FormFromBooking(*s.Selected, s.ctrl.Location())
}

// Submit saves the form. Validation failures set Alert and keep the form
// open; remote failures raise an error toast.
func (s *TicketsScreen) Submit(ctx context.Context, form service.BookingForm) (*domain.Booking, error) {
	s.Alert = nil
	editing := !form.ID.IsZero()
	saved, err := s.ctrl.Save(ctx, form)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			s.Alert = ve
			return nil, err
		}
		verb := "add"
		if editing {
			verb = "update"
		}
		showError(s.toasts, fmt.Sprintf("Failed to %s booking. Please try again.", verb))
		return nil, err
	}

	s.Tickets = s.ctrl.Tickets()
	s.FormVisible = false
	s.Selected = nil
	if editing {
		show(s.toasts, ToastSuccess, "Booking Updated", fmt.Sprintf("Successfully updated booking at %s.", saved.ParkingName))
	} else {
		show(s.toasts, ToastSuccess, "Booking Added", fmt.Sprintf("Successfully added booking at %s.", saved.ParkingName))
	}
	return saved, nil
}

func (s *TicketsScreen) Delete(ctx context.Context, id domain.ID) error {
	err := s.ctrl.Delete(ctx, id, s.confirm)
	if errors.Is(err, service.ErrDeleteCancelled) {
		return err
	}
	if err != nil {
		showError(s.toasts, "Failed to delete booking. Please try again.")
		return err
	}
	s.Tickets = s.ctrl.Tickets()
	s.CloseAll()
	show(s.toasts, ToastSuccess, "Booking Deleted", "Booking successfully removed.")
	return nil
}

func (s *TicketsScreen) CloseAll() {
	s.DetailsVisible = false
	s.CheckoutVisible = false
	s.BillVisible = false
	s.FormVisible = false
	s.Selected = nil
}
