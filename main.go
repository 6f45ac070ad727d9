// Command gridcombat runs the grid combat game.
//
// It supports these modes:
//  1. "play" (default) – an interactive console session on stdin/stdout
//  2. "mcp" – an MCP stdio server for AI agents, reloading edited scenario files
//  3. "scenarios" – lists the scenario files in the config directory
//  4. "version" – prints version information
//
// Flags and GRIDCOMBAT_* environment variables control the config directory
// and logging. A .env file in the working directory is loaded first.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/gridcombat/game/config"
	"github.com/wricardo/mcp-training/gridcombat/game/service"
	"github.com/wricardo/mcp-training/gridcombat/game/session"
	"github.com/wricardo/mcp-training/gridcombat/transport/console"
	"github.com/wricardo/mcp-training/gridcombat/transport/mcp"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Grid Combat"
)

const (
	sessionMaxAge        = 24 * time.Hour
	sessionCleanupPeriod = time.Hour
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand(os.Stdin, os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app carries what every subcommand needs once the root flags are parsed
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger
}

// newCommand builds the command tree. I/O is injected so tests can drive it.
func newCommand(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr, logger: zerolog.Nop()}

	return &cli.Command{
		Name:      "gridcombat",
		Usage:     "turn-based tactical combat on a grid",
		Version:   Version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing scenario files",
				Sources: cli.EnvVars("GRIDCOMBAT_CONFIG_DIR", "CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "default-scenario",
				Usage:   "scenario used by play and create_session when none is named",
				Sources: cli.EnvVars("GRIDCOMBAT_DEFAULT_SCENARIO"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (trace, debug, info, warn, error)",
				Sources: cli.EnvVars("GRIDCOMBAT_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "console",
				Usage:   "log format (console or json)",
				Sources: cli.EnvVars("GRIDCOMBAT_LOG_FORMAT"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logger, err := newLogger(a.stderr, cmd.String("log-level"), cmd.String("log-format"))
			if err != nil {
				return ctx, err
			}
			a.logger = logger
			return ctx, nil
		},
		Action: a.play,
		Commands: []*cli.Command{
			{
				Name:  "play",
				Usage: "play in the terminal (default)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "scenario",
						Usage: "scenario to load at start (default scenario when empty)",
					},
				},
				Action: a.play,
			},
			{
				Name:  "mcp",
				Usage: "serve MCP tools over stdio",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "watch",
						Value:   true,
						Usage:   "reload scenario files when they change on disk",
						Sources: cli.EnvVars("GRIDCOMBAT_WATCH"),
					},
				},
				Action: a.serveMCP,
			},
			{
				Name:   "scenarios",
				Usage:  "list available scenarios",
				Action: a.listScenarios,
			},
			{
				Name:  "version",
				Usage: "show version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Fprintf(a.stdout, "%s v%s\n", AppName, Version)
					return nil
				},
			},
		},
	}
}

// newLogger builds the root logger. Logs always go to w so stdout stays free
// for the console and the MCP protocol.
func newLogger(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	switch strings.ToLower(format) {
	case "json":
	case "console", "":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q, use console or json", format)
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// services groups the game service with the managers behind it
type services struct {
	game      service.GameService
	sessions  *session.Manager
	scenarios *config.Manager
}

// initializeServices wires session/scenario managers and the game service
func initializeServices(configDir, defaultScenario string, logger zerolog.Logger) (*services, error) {
	scenarios, err := config.NewManager(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario manager: %w", err)
	}
	if defaultScenario != "" {
		if err := scenarios.SetDefault(defaultScenario); err != nil {
			return nil, fmt.Errorf("failed to set default scenario: %w", err)
		}
	}

	sessions := session.NewManager()
	svc := service.NewGameService(sessions, scenarios, logger)

	logger.Debug().Str("config_dir", configDir).Str("default_scenario", scenarios.GetDefault().Name).Msg("services initialized")
	return &services{game: svc, sessions: sessions, scenarios: scenarios}, nil
}

// sessionCleanupRoutine periodically removes sessions that have not been accessed
// within maxAge, until ctx is done
func sessionCleanupRoutine(ctx context.Context, manager *session.Manager, period, maxAge time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := manager.CleanupExpiredSessions(maxAge); len(removed) > 0 {
				logger.Info().Strs("sessions", removed).Msg("cleaned up expired sessions")
			}
		}
	}
}

func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	svcs, err := initializeServices(cmd.String("config-dir"), cmd.String("default-scenario"), a.logger)
	if err != nil {
		return err
	}

	c := console.New(svcs.game, a.stdin, a.stdout, a.logger)
	fmt.Fprintf(a.stdout, "%s v%s\n", AppName, Version)
	if err := c.Start(ctx, cmd.String("scenario")); err != nil {
		return err
	}

	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func (a *app) serveMCP(ctx context.Context, cmd *cli.Command) error {
	svcs, err := initializeServices(cmd.String("config-dir"), cmd.String("default-scenario"), a.logger)
	if err != nil {
		return err
	}

	go sessionCleanupRoutine(ctx, svcs.sessions, sessionCleanupPeriod, sessionMaxAge, a.logger)

	if cmd.Bool("watch") {
		if err := svcs.scenarios.Watch(ctx, a.logger); err != nil {
			a.logger.Warn().Err(err).Msg("scenario hot-reload disabled")
		}
	}

	a.logger.Info().Str("version", Version).Msg("MCP stdio server ready")
	return mcp.NewServer(svcs.game, Version, a.logger).ServeStdio()
}

func (a *app) listScenarios(ctx context.Context, cmd *cli.Command) error {
	svcs, err := initializeServices(cmd.String("config-dir"), cmd.String("default-scenario"), a.logger)
	if err != nil {
		return err
	}

	scenarios, err := svcs.game.ListScenarios(ctx)
	if err != nil {
		return err
	}
	console.PrintScenarios(a.stdout, scenarios)
	return nil
}
