package tui

import (
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/screen"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "15:04"

// Renderer turns domain values into terminal text.
type Renderer struct {
	theme Theme
	st    styles
}

func NewRenderer(theme Theme) *Renderer {
	return &Renderer{theme: theme, st: newStyles(theme)}
}

func (r *Renderer) SpotCard(spot domain.ParkingSpot, bookmarked, selected bool) string {
	name := r.st.title.Render(spot.Name)
	if bookmarked {
		name += " " + r.st.accent.Render("[saved]")
	}
	lines := []string{
		name,
		r.st.subtle.Render(spot.Address),
		fmt.Sprintf("%s  %s  %d spots  ★ %.1f",
			r.st.accent.Render(spot.PriceLabel()), spot.Distance, spot.Available, spot.Rating),
	}
	if len(spot.Features) > 0 {
		lines = append(lines, r.st.subtle.Render(strings.Join(spot.Features, " · ")))
	}
	if spot.Open24Hours {
		lines = append(lines, r.st.subtle.Render("Open 24 hours"))
	}
	style := r.st.card
	if selected {
		style = r.st.selected
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r *Renderer) SpotList(spots []domain.ParkingSpot, saved func(domain.ID) bool) string {
	if len(spots) == 0 {
		return r.st.subtle.Render("No parking spots.")
	}
	cards := make([]string, 0, len(spots))
	for _, spot := range spots {
		cards = append(cards, r.SpotCard(spot, saved != nil && saved(spot.ID), false))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (r *Renderer) statusBadge(status domain.BookingStatus) string {
	color := r.theme.Muted
	switch status {
	case domain.BookingActive:
		color = r.theme.Success
	case domain.BookingUpcoming:
		color = r.theme.Primary
	}
	return r.st.badge.Foreground(color).Render(status.Label())
}

func formatClock(t time.Time) string {
	if t.IsZero() {
		return "--:--"
	}
	return t.Local().Format(timeLayout)
}

func (r *Renderer) TicketCard(b domain.Booking) string {
	end := "--:--"
	if b.EndTime.Valid {
		end = formatClock(b.EndTime.Time)
	}
	lines := []string{
		r.st.title.Render(b.ParkingName) + " " + r.statusBadge(b.Status),
		r.st.subtle.Render(b.Address),
		fmt.Sprintf("%s  %s - %s  %s", b.Date, formatClock(b.StartTime), end, r.st.accent.Render(b.Price.String())),
		r.st.subtle.Render("id " + b.ID.String()),
	}
	if d := b.ElapsedDuration(); d != "" {
		lines = append(lines, "Duration "+d)
	}
	return r.st.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (r *Renderer) TicketList(tickets []domain.Booking) string {
	if len(tickets) == 0 {
		return r.st.subtle.Render("No bookings yet.")
	}
	cards := make([]string, 0, len(tickets))
	for _, t := range tickets {
		cards = append(cards, r.TicketCard(t))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func (r *Renderer) Bill(b domain.Bill) string {
	row := func(label, value string) string {
		return fmt.Sprintf("%-10s %s", r.st.subtle.Render(label), value)
	}
	return r.st.card.Render(lipgloss.JoinVertical(lipgloss.Left,
		r.st.title.Render("Parking Bill"),
		row("Parking", b.ParkingName),
		row("Date", b.Date),
		row("Start", formatClock(b.StartTime)),
		row("End", formatClock(b.EndTime)),
		row("Duration", b.Duration),
		row("Total", r.st.accent.Bold(true).Render(b.Amount.String())),
	))
}

func (r *Renderer) Toast(t screen.Toast) string {
	color := r.theme.Primary
	switch t.Type {
	case screen.ToastSuccess:
		color = r.theme.Success
	case screen.ToastError:
		color = r.theme.Error
	case screen.ToastWarning:
		color = r.theme.Warning
	}
	head := lipgloss.NewStyle().Bold(true).Foreground(color).Render(t.Title)
	if t.Message == "" {
		return head
	}
	return head + " " + t.Message
}

func (r *Renderer) Notifications(items []domain.Notification) string {
	if len(items) == 0 {
		return r.st.subtle.Render("No notifications.")
	}
	lines := make([]string, 0, len(items))
	for _, n := range items {
		marker := " "
		if !n.Read {
			marker = lipgloss.NewStyle().Foreground(r.theme.Primary).Render("●")
		}
		lines = append(lines, fmt.Sprintf("%s %s [%s]\n  %s\n  %s",
			marker, r.st.title.Render(n.Title), n.Type, n.Message, r.st.subtle.Render(n.Time)))
	}
	return strings.Join(lines, "\n")
}

func (r *Renderer) Profile(u domain.User, menu []screen.MenuItem) string {
	lines := []string{
		r.st.title.Render(u.FullName()),
		r.st.subtle.Render(u.Email),
	}
	if u.AvatarURL != "" {
		lines = append(lines, r.st.subtle.Render(u.AvatarURL))
	}
	lines = append(lines, "")
	for _, item := range menu {
		lines = append(lines, "› "+item.Label)
	}
	return r.st.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
