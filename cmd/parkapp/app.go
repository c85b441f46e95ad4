package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"parking_app/internal/cache"
	"parking_app/internal/config"
	"parking_app/internal/repository/cached"
	"parking_app/internal/repository/remote"
	"parking_app/internal/screen"
	"parking_app/internal/service"
	"parking_app/internal/session"
	"parking_app/internal/storage"
	"parking_app/internal/tui"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// terminal is the part of golang.org/x/term the password prompt needs.
type terminal interface {
	IsTerminal(fd int) bool
	ReadPassword(fd int) ([]byte, error)
}

type systemTerminal struct{}

func (systemTerminal) IsTerminal(fd int) bool              { return term.IsTerminal(fd) }
func (systemTerminal) ReadPassword(fd int) ([]byte, error) { return term.ReadPassword(fd) }

// reportedError marks a failure the user has already seen as a toast or a
// form error, so main does not print it twice.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

type app struct {
	log    *zap.Logger
	in     *bufio.Reader
	inFD   int
	term   terminal
	out    io.Writer
	errOut io.Writer
	render *tui.Renderer
	nav    *screen.History
	toasts screen.Notifier

	session       *session.Context
	auth          *service.AuthService
	parking       *service.ParkingService
	bookings      *service.BookingController
	bookmarks     *service.BookmarkService
	notifications *service.NotificationService

	errorShown bool
}

func newApp(cfg *config.Config, log *zap.Logger, in io.Reader, out, errOut io.Writer) (*app, error) {
	kv, err := storage.NewFileKV(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	collections := cache.New(cfg.CacheTTL)
	client := remote.NewClient(cfg.RemoteBaseURL, cfg.RequestTimeout, log)

	userRepo := cached.NewUserRepository(remote.NewUserRepository(client), collections)
	parkingRepo := cached.NewParkingRepository(remote.NewParkingRepository(client), collections)
	bookingRepo := cached.NewBookingRepository(remote.NewBookingRepository(client), collections)

	a := &app{
		log:    log,
		in:     bufio.NewReader(in),
		inFD:   -1,
		term:   systemTerminal{},
		out:    out,
		errOut: errOut,
		render: tui.NewRenderer(tui.DefaultTheme),
		nav:    screen.NewHistory(screen.RouteHome),
	}
	if f, ok := in.(*os.File); ok {
		a.inFD = int(f.Fd())
	}
	a.toasts = screen.NotifierFunc(a.showToast)
	a.session = session.NewContext(session.NewStore(kv), log)
	a.auth = service.NewAuthService(userRepo, a.session, log)
	a.parking = service.NewParkingService(parkingRepo, bookingRepo, collections, log)
	a.bookings = service.NewBookingController(bookingRepo, collections, log)
	a.bookmarks = service.NewBookmarkService(kv, log)
	a.notifications = service.NewNotificationService(kv, log)
	return a, nil
}

func (a *app) showToast(t screen.Toast) {
	if t.Type == screen.ToastError {
		a.errorShown = true
	}
	fmt.Fprintln(a.errOut, a.render.Toast(t))
}

// settle hides err from main when a toast already explained it.
func (a *app) settle(err error) error {
	if err == nil {
		return nil
	}
	if a.errorShown {
		return reportedError{err}
	}
	return err
}

// confirmer returns the stdin prompt, or one that always agrees for --yes.
func (a *app) confirmer(assumeYes bool) service.Confirmer {
	return service.ConfirmFunc(func(ctx context.Context, title, message string) (bool, error) {
		if assumeYes {
			return true, nil
		}
		fmt.Fprintf(a.errOut, "%s\n%s [y/N]: ", title, message)
		line, err := a.in.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	})
}

func (a *app) readLine(prompt string) (string, error) {
	fmt.Fprint(a.errOut, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads the login password from passwordFile, or prompts on the
// terminal with echo disabled when the path is empty or "-".
func (a *app) readPassword(passwordFile string) (string, error) {
	if passwordFile != "" && passwordFile != "-" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", passwordFile, err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}

	if a.inFD < 0 || !a.term.IsTerminal(a.inFD) {
		return "", &service.ValidationError{
			Title:   "Password required",
			Message: "no terminal available for interactive password prompt (use --password-file)",
		}
	}
	fmt.Fprint(a.errOut, "Password: ")
	raw, err := a.term.ReadPassword(a.inFD)
	fmt.Fprintln(a.errOut)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(raw), nil
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	var err error
	switch command {
	case "login":
		err = a.cmdLogin(ctx, args)
	case "logout":
		err = a.cmdLogout(ctx, args)
	case "profile":
		err = a.cmdProfile(ctx, args)
	case "home":
		err = a.cmdHome(ctx, args)
	case "explore":
		err = a.cmdExplore(ctx, args)
	case "search":
		err = a.cmdSearch(ctx, args)
	case "book":
		err = a.cmdBook(ctx, args)
	case "tickets":
		err = a.cmdTickets(ctx, args)
	case "bookmarks":
		err = a.cmdBookmarks(ctx, args)
	case "notifications":
		err = a.cmdNotifications(ctx, args)
	default:
		return fmt.Errorf("unknown command %q (run parkapp --help)", command)
	}
	return a.settle(err)
}
