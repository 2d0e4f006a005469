package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidar/circles/internal/circleview"
	"github.com/aidar/circles/internal/client"
	"github.com/aidar/circles/internal/config"
)

const (
	Version = "0.1.0"
	appName = "circlectl"
)

var errNoToken = errors.New("no access token: run `circlectl login` and set CIRCLES_TOKEN or pass --token")

// cli carries what every subcommand needs after flags and env are resolved
type cli struct {
	cfg    *config.ClientConfig
	logger *slog.Logger
}

func (c *cli) client() *client.Client {
	return client.New(c.cfg.APIURL,
		client.WithToken(c.cfg.Token),
		client.WithTimeout(c.cfg.Timeout),
	)
}

func (c *cli) session() (circleview.Session, error) {
	if c.cfg.Token == "" {
		return circleview.Session{}, errNoToken
	}
	return circleview.SessionFromToken(c.cfg.Token)
}

func rootCmd() *cobra.Command {
	var (
		apiURL   string
		token    string
		timeout  time.Duration
		logLevel string
	)
	state := &cli{}

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Browse and join live audio circles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("api-url") {
				cfg.APIURL = apiURL
			}
			if flags.Changed("token") {
				cfg.Token = token
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}

			state.cfg = cfg
			state.logger = newLogger(cmd, logLevel)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&apiURL, "api-url", "", "Circles API base URL (default $CIRCLES_API_URL)")
	pf.StringVar(&token, "token", "", "Access token (default $CIRCLES_TOKEN)")
	pf.DurationVar(&timeout, "timeout", 0, "HTTP timeout (default $CIRCLES_TIMEOUT)")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		loginCmd(state),
		listCmd(state),
		showCmd(state),
		toggleCmd(state),
		participantsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}

func newLogger(cmd *cobra.Command, level string) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: lvl}))
}
