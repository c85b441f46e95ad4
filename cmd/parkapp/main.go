// parkapp is the terminal client for the parking reservation service. Each
// subcommand drives one screen; "explore" opens the interactive search.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"parking_app/internal/config"
	"parking_app/internal/logger"

	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		var silent reportedError
		if !errors.As(err, &silent) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flagSet := pflag.NewFlagSet("parkapp", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&cfg.RemoteBaseURL, "base-url", cfg.RemoteBaseURL, "remote store base URL")
	flagSet.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for device-local state")
	flagSet.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flagSet.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	flagSet.BoolP("help", "h", false, "show help")
	flagSet.Usage = func() { printUsage(flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help || flagSet.NArg() == 0 {
		printUsage(flagSet)
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, log, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	return a.dispatch(ctx, flagSet.Arg(0), flagSet.Args()[1:])
}

func printUsage(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `parkapp - find, book and manage parking.

Usage:
  parkapp [global flags] <command> [flags]

Commands:
  login [--password-file f] sign in; the password is read without echo
  logout                    sign out
  profile                   show the signed-in user
  home                      greeting and nearby parking
  explore                   interactive search
  search <query>            filter parking spots
  book <spot-id>            reserve a spot starting now
  tickets list|add|edit|checkout|delete
  bookmarks list|toggle <spot-id>
  notifications list|read-all

Global flags:
%s`, flagSet.FlagUsages())
}
