package tui

import (
	"context"
	"fmt"
	"parking_app/internal/domain"
	"parking_app/internal/screen"
	"parking_app/internal/service"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Messages carrying remote results back into the update loop.
type spotsLoadedMsg struct {
	spots   []domain.ParkingSpot
	err     error
	refresh bool
}

type bookedMsg struct {
	booking *domain.Booking
	err     error
}

// ExploreModel is the search-as-you-type explorer. Network calls run as
// commands; their results are applied to the screen in Update.
type ExploreModel struct {
	ctx     context.Context
	parking *service.ParkingService
	screen  *screen.ExploreScreen
	toasts  *screen.ToastLog
	render  *Renderer
	keys    ExploreKeyMap

	input  textinput.Model
	cursor int
	height int
	toast  *screen.Toast
	booked *domain.Booking
}

func NewExploreModel(ctx context.Context, parking *service.ParkingService) ExploreModel {
	input := textinput.New()
	input.Placeholder = "Search by name, address or keyword"
	input.Prompt = "Search: "
	input.Focus()

	toasts := &screen.ToastLog{}
	explore := screen.NewExploreScreen(parking, toasts)
	// Init starts the first fetch; spotsLoadedMsg clears the flag.
	explore.Loading = true
	return ExploreModel{
		ctx:     ctx,
		parking: parking,
		screen:  explore,
		toasts:  toasts,
		render:  NewRenderer(DefaultTheme),
		keys:    DefaultExploreKeyMap,
		input:   input,
	}
}

// Screen exposes the underlying view-model.
func (m ExploreModel) Screen() *screen.ExploreScreen { return m.screen }

// Booked is the reservation made in this session, if any.
func (m ExploreModel) Booked() *domain.Booking { return m.booked }

func (m ExploreModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.fetch(false))
}

func (m ExploreModel) fetch(refresh bool) tea.Cmd {
	ctx, parking := m.ctx, m.parking
	return func() tea.Msg {
		spots, err := parking.ListSpots(ctx, refresh)
		return spotsLoadedMsg{spots: spots, err: err, refresh: refresh}
	}
}

func (m ExploreModel) book(spotID domain.ID) tea.Cmd {
	ctx, parking := m.ctx, m.parking
	return func() tea.Msg {
		booking, err := parking.BookNow(ctx, spotID)
		return bookedMsg{booking: booking, err: err}
	}
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil

	case spotsLoadedMsg:
		m.screen.Loaded(msg.spots, msg.err, msg.refresh)
		m.screen.Loading = false
		m.screen.Refreshing = false
		m.clampCursor()
		m.takeToast()
		return m, nil

	case bookedMsg:
		if booking, err := m.screen.Booked(msg.booking, msg.err); err == nil {
			m.booked = booking
		}
		m.takeToast()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.screen.BookingModalVisible {
			return m.handleModalKeys(msg)
		}
		return m.handleSearchKeys(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ExploreModel) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if m.screen.Selected == nil {
			m.screen.CloseBooking()
			return m, nil
		}
		return m, m.book(m.screen.Selected.ID)
	case key.Matches(msg, m.keys.Cancel):
		m.screen.CloseBooking()
	}
	return m, nil
}

func (m ExploreModel) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.screen.Result.Results)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Book):
		if results := m.screen.Result.Results; m.cursor < len(results) {
			m.screen.Select(results[m.cursor])
		}
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.screen.Refreshing = true
		return m, m.fetch(true)
	case msg.Type == tea.KeyEsc:
		if m.input.Value() == "" {
			return m, tea.Quit
		}
		m.input.SetValue("")
		m.screen.SetQuery("")
		m.cursor = 0
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.screen.SetQuery(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m *ExploreModel) clampCursor() {
	if n := len(m.screen.Result.Results); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *ExploreModel) takeToast() {
	if t, ok := m.toasts.Last(); ok {
		m.toast = &t
	}
	m.toasts.Drain()
}

func (m ExploreModel) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.screen.Refreshing {
		b.WriteString(m.render.st.subtle.Render("Refreshing..."))
		b.WriteString("\n")
	}

	result := m.screen.Result
	switch {
	case m.screen.Loading:
		b.WriteString(m.render.st.subtle.Render("Loading parking spots..."))
	case result.NoResults:
		b.WriteString(m.render.st.subtle.Render(fmt.Sprintf("No parking spots match %q.", strings.TrimSpace(result.Query))))
	default:
		if result.BestMatch != nil && strings.TrimSpace(result.Query) != "" {
			b.WriteString(m.render.st.title.Render("Best match: " + result.BestMatch.Name))
			b.WriteString("\n")
		}
		cards := make([]string, 0, len(result.Results))
		for i, spot := range result.Results {
			cards = append(cards, m.render.SpotCard(spot, false, i == m.cursor))
		}
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	}

	if m.screen.BookingModalVisible && m.screen.Selected != nil {
		b.WriteString("\n\n")
		b.WriteString(m.render.st.selected.Render(fmt.Sprintf("Book %s now at %s? (y/n)",
			m.screen.Selected.Name, m.screen.Selected.PriceLabel())))
	}
	if m.toast != nil {
		b.WriteString("\n\n")
		b.WriteString(m.render.Toast(*m.toast))
	}
	b.WriteString("\n")
	b.WriteString(m.render.st.subtle.Render("↑/↓ move · enter book · C-r refresh · esc clear/quit"))
	return b.String()
}
