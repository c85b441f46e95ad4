package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"parking_app/internal/domain"
	"parking_app/internal/screen"
	"parking_app/internal/service"
	"parking_app/internal/session"
	"parking_app/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
)

const clockLayout = "15:04"

func newFlagSet(name string) *pflag.FlagSet {
	return pflag.NewFlagSet("parkapp "+name, pflag.ContinueOnError)
}

// signedOut turns a missing session into a hint; the screen already moved
// the route to login.
func (a *app) signedOut(err error) error {
	if errors.Is(err, session.ErrNoSession) {
		fmt.Fprintln(a.errOut, "Not signed in. Run: parkapp login")
		return reportedError{err}
	}
	return err
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "account email")
	passwordFile := fs.String("password-file", "", "read the password from this file (\"-\" or omitted prompts on the terminal)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := screen.NewLoginScreen(a.auth, a.nav)
	s.Email = *email
	var err error
	if s.Email == "" {
		if s.Email, err = a.readLine("Email: "); err != nil {
			return err
		}
	}
	if s.Password, err = a.readPassword(*passwordFile); err != nil {
		return err
	}

	user, err := s.Submit(ctx)
	if err != nil {
		fields := make([]string, 0, len(s.Errors))
		for field := range s.Errors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(a.errOut, "%s: %s\n", field, s.Errors[field])
		}
		return reportedError{err}
	}
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", user.FullName(), user.Email)
	return nil
}

func (a *app) cmdLogout(ctx context.Context, args []string) error {
	fs := newFlagSet("logout")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := screen.NewProfileScreen(a.session, a.auth, a.nav, a.toasts)
	s.Select(screen.ProfileMenu[len(screen.ProfileMenu)-1])
	ok, err := a.confirmer(*yes).Confirm(ctx, "Logout", "Are you sure you want to log out?")
	if err != nil {
		return err
	}
	if !ok {
		s.CancelLogout()
		return nil
	}
	if err := s.ConfirmLogout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	s := screen.NewProfileScreen(a.session, a.auth, a.nav, a.toasts)
	if err := s.Enter(ctx); err != nil {
		return a.signedOut(err)
	}
	fmt.Fprintln(a.out, a.render.Profile(*s.User, screen.ProfileMenu))
	return nil
}

func (a *app) cmdHome(ctx context.Context, args []string) error {
	fs := newFlagSet("home")
	refresh := fs.Bool("refresh", false, "bypass the collection cache")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := screen.NewHomeScreen(a.session, a.parking, a.bookmarks, a.nav, a.toasts)
	if err := s.Enter(ctx); err != nil {
		return a.signedOut(err)
	}
	if *refresh {
		if err := s.Refresh(ctx); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.out, s.Greeting())
	fmt.Fprintln(a.out, a.render.SpotList(s.Locations, func(id domain.ID) bool {
		return s.IsBookmarked(ctx, id)
	}))
	return nil
}

func (a *app) cmdExplore(ctx context.Context, args []string) error {
	model := tui.NewExploreModel(ctx, a.parking)
	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.ExploreModel); ok && m.Booked() != nil {
		fmt.Fprintln(a.out, a.render.TicketCard(*m.Booked()))
	}
	return nil
}

func (a *app) cmdSearch(ctx context.Context, args []string) error {
	fs := newFlagSet("search")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")

	s := screen.NewExploreScreen(a.parking, a.toasts)
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.SetQuery(query)
	if s.Result.NoResults {
		fmt.Fprintf(a.out, "No parking spots match %q.\n", query)
		return nil
	}
	if s.Result.BestMatch != nil && query != "" {
		fmt.Fprintf(a.out, "Best match: %s\n", s.Result.BestMatch.Name)
	}
	fmt.Fprintln(a.out, a.render.SpotList(s.Result.Results, nil))
	return nil
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := newFlagSet("book")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: parkapp book <spot-id>")
	}

	s := screen.NewExploreScreen(a.parking, a.toasts)
	if err := s.Load(ctx); err != nil {
		return err
	}
	spot, ok := findSpot(s.AllSpots, domain.ID(fs.Arg(0)))
	if !ok {
		return fmt.Errorf("parking spot %s not found", fs.Arg(0))
	}
	s.Select(spot)
	confirmed, err := a.confirmer(*yes).Confirm(ctx, "Book "+spot.Name,
		fmt.Sprintf("Reserve a spot starting now at %s?", spot.PriceLabel()))
	if err != nil {
		return err
	}
	if !confirmed {
		s.CloseBooking()
		return nil
	}
	booking, err := s.ConfirmBooking(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.render.TicketCard(*booking))
	return nil
}

func findSpot(spots []domain.ParkingSpot, id domain.ID) (domain.ParkingSpot, bool) {
	for _, spot := range spots {
		if spot.ID == id {
			return spot, true
		}
	}
	return domain.ParkingSpot{}, false
}

func (a *app) cmdTickets(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	switch sub {
	case "list":
		return a.ticketsList(ctx, args)
	case "add":
		return a.ticketsSave(ctx, "", args)
	case "edit":
		if len(args) == 0 {
			return errors.New("usage: parkapp tickets edit <id> [flags]")
		}
		return a.ticketsSave(ctx, domain.ID(args[0]), args[1:])
	case "checkout":
		return a.ticketsCheckout(ctx, args)
	case "delete":
		return a.ticketsDelete(ctx, args)
	default:
		return fmt.Errorf("unknown tickets command %q", sub)
	}
}

func (a *app) ticketsList(ctx context.Context, args []string) error {
	fs := newFlagSet("tickets list")
	refresh := fs.Bool("refresh", false, "bypass the collection cache")
	if err := fs.Parse(args); err != nil {
		return err
	}
	s := screen.NewTicketsScreen(a.bookings, nil, a.toasts)
	load := s.Load
	if *refresh {
		load = s.Refresh
	}
	if err := load(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.render.TicketList(s.Tickets))
	return nil
}

type bookingFlags struct {
	parking  *string
	address  *string
	date     *string
	start    *string
	end      *string
	price    *string
	status   *string
	duration *string
}

func addBookingFlags(fs *pflag.FlagSet) bookingFlags {
	return bookingFlags{
		parking:  fs.String("parking", "", "parking name"),
		address:  fs.String("address", "", "parking address"),
		date:     fs.String("date", "", "date (YYYY-MM-DD)"),
		start:    fs.String("start", "", "start time (HH:MM)"),
		end:      fs.String("end", "", "end time (HH:MM)"),
		price:    fs.String("price", "", "price, e.g. 5.50"),
		status:   fs.String("status", "", "upcoming, active or completed"),
		duration: fs.String("duration", "", "duration label, kept for active bookings"),
	}
}

// apply overlays the flags the user set on form.
func (f bookingFlags) apply(fs *pflag.FlagSet, form *service.BookingForm, loc *time.Location) error {
	if fs.Changed("parking") {
		form.ParkingName = *f.parking
	}
	if fs.Changed("address") {
		form.Address = *f.address
	}
	if fs.Changed("date") {
		d, err := time.ParseInLocation(domain.DateLayout, *f.date, loc)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", *f.date, err)
		}
		form.Date = d
	}
	if fs.Changed("start") {
		t, err := time.ParseInLocation(clockLayout, *f.start, loc)
		if err != nil {
			return fmt.Errorf("invalid --start %q: %w", *f.start, err)
		}
		form.StartTime = t
	}
	if fs.Changed("end") {
		if *f.end == "" {
			form.EndTime = nil
		} else {
			t, err := time.ParseInLocation(clockLayout, *f.end, loc)
			if err != nil {
				return fmt.Errorf("invalid --end %q: %w", *f.end, err)
			}
			form.EndTime = &t
		}
	}
	if fs.Changed("price") {
		form.Price = *f.price
	}
	if fs.Changed("status") {
		status, err := domain.ParseBookingStatus(*f.status)
		if err != nil {
			return err
		}
		form.Status = status
	}
	if fs.Changed("duration") {
		form.Duration = *f.duration
	}
	return nil
}

func (a *app) ticketsSave(ctx context.Context, id domain.ID, args []string) error {
	fs := newFlagSet("tickets save")
	flags := addBookingFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := screen.NewTicketsScreen(a.bookings, nil, a.toasts)
	if id.IsZero() {
		s.OpenAdd()
	} else {
		if err := s.Load(ctx); err != nil {
			return err
		}
		ticket, ok := a.bookings.Find(id)
		if !ok {
			return fmt.Errorf("booking %s not found", id)
		}
		s.OpenEdit(ticket)
	}

	form := s.EditForm()
	if err := flags.apply(fs, &form, a.bookings.Location()); err != nil {
		return err
	}
	saved, err := s.Submit(ctx, form)
	if err != nil {
		if s.Alert != nil {
			fmt.Fprintf(a.errOut, "%s: %s\n", s.Alert.Title, s.Alert.Message)
			return reportedError{err}
		}
		return err
	}
	fmt.Fprintln(a.out, a.render.TicketCard(*saved))
	return nil
}

func (a *app) ticketsCheckout(ctx context.Context, args []string) error {
	fs := newFlagSet("tickets checkout")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: parkapp tickets checkout <id>")
	}

	s := screen.NewTicketsScreen(a.bookings, nil, a.toasts)
	if err := s.Load(ctx); err != nil {
		return err
	}
	ticket, ok := a.bookings.Find(domain.ID(fs.Arg(0)))
	if !ok {
		return fmt.Errorf("booking %s not found", fs.Arg(0))
	}
	s.Open(ticket)
	s.RequestCheckout()
	confirmed, err := a.confirmer(*yes).Confirm(ctx, "Checkout",
		fmt.Sprintf("Check out from %s now? You will be charged %s.", ticket.ParkingName, service.CheckoutFare))
	if err != nil {
		return err
	}
	if !confirmed {
		s.CloseAll()
		return nil
	}
	bill, err := s.Checkout(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.render.Bill(*bill))
	return nil
}

func (a *app) ticketsDelete(ctx context.Context, args []string) error {
	fs := newFlagSet("tickets delete")
	yes := fs.BoolP("yes", "y", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: parkapp tickets delete <id>")
	}

	s := screen.NewTicketsScreen(a.bookings, a.confirmer(*yes), a.toasts)
	if err := s.Load(ctx); err != nil {
		return err
	}
	err := s.Delete(ctx, domain.ID(fs.Arg(0)))
	if errors.Is(err, service.ErrDeleteCancelled) {
		return nil
	}
	return err
}

func (a *app) cmdBookmarks(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}
	s := screen.NewBookmarksScreen(a.bookmarks, a.toasts)
	switch sub {
	case "list":
		if err := s.Load(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.out, a.render.SpotList(s.Items, func(domain.ID) bool { return true }))
		return nil
	case "toggle":
		if len(args) != 1 {
			return errors.New("usage: parkapp bookmarks toggle <spot-id>")
		}
		id := domain.ID(args[0])
		if err := s.Load(ctx); err != nil {
			return err
		}
		spot, ok := findSpot(s.Items, id)
		if !ok {
			spots, err := a.parking.ListSpots(ctx, false)
			if err != nil {
				return err
			}
			if spot, ok = findSpot(spots, id); !ok {
				return fmt.Errorf("parking spot %s not found", id)
			}
		}
		_, err := s.Toggle(ctx, spot)
		return err
	default:
		return fmt.Errorf("unknown bookmarks command %q", sub)
	}
}

func (a *app) cmdNotifications(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}
	s := screen.NewNotificationsScreen(a.notifications, a.toasts)
	if err := s.Load(ctx); err != nil {
		return err
	}
	switch sub {
	case "list":
	case "read-all":
		if err := s.MarkAllRead(ctx); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown notifications command %q", sub)
	}
	fmt.Fprintf(a.out, "%d unread\n%s\n", s.Unread(), a.render.Notifications(s.Items))
	return nil
}
