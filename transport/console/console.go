package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/wricardo/mcp-training/gridcombat/game/engine"
	"github.com/wricardo/mcp-training/gridcombat/game/service"
)

var (
	ErrNoSession      = errors.New("no active session, use 'new' or 'load' first")
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong arguments")
)

// Console is a line-oriented front end over a GameService. It tracks one
// active session at a time; 'fork' and 'switch' change it.
type Console struct {
	svc     service.GameService
	in      *bufio.Scanner
	out     io.Writer
	logger  zerolog.Logger
	current string
	prompt  string
}

// New creates a console reading commands from in and writing to out
func New(svc service.GameService, in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	return &Console{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.With().Str("component", "console").Logger(),
		prompt: "> ",
	}
}

// Current returns the ID of the active session, or "" if none
func (c *Console) Current() string {
	return c.current
}

// Start loads the given scenario and makes it the active session.
// An empty name loads the default scenario.
func (c *Console) Start(ctx context.Context, scenario string) error {
	info, err := c.svc.CreateSession(ctx, scenario)
	if err != nil {
		return err
	}
	c.current = info.ID
	fmt.Fprintf(c.out, "Session %s started from scenario %q\n", info.ID, info.Scenario)
	PrintBoard(c.out, info.GameState.Rows)
	return nil
}

// Run reads commands until 'quit', end of input or context cancellation
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Type 'help' for the list of commands.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, c.prompt)
		if !c.in.Scan() {
			fmt.Fprintln(c.out)
			return c.in.Err()
		}

		quit, err := c.Execute(ctx, c.in.Text())
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs a single command line. It reports whether the console should stop.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	c.logger.Debug().Str("command", cmd).Strs("args", args).Msg("console command")

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		PrintHelp(c.out)
		return false, nil
	case "new":
		return false, c.newSession(ctx, args)
	case "load":
		return false, c.load(ctx, args)
	case "add":
		return false, c.add(ctx, args)
	case "move":
		return false, c.pairCommand(ctx, args, "move <row> <col> <row> <col>", c.svc.Move)
	case "attack":
		return false, c.pairCommand(ctx, args, "attack <row> <col> <row> <col>", c.svc.Attack)
	case "reload":
		return false, c.reload(ctx, args)
	case "board", "units", "status":
		return false, c.show(ctx, cmd)
	case "history":
		return false, c.history(ctx, args)
	case "fork":
		return false, c.fork(ctx)
	case "save":
		return false, c.save(ctx, args)
	case "switch":
		return false, c.switchSession(ctx, args)
	case "sessions":
		return false, c.sessions(ctx)
	case "scenarios":
		return false, c.scenarios(ctx)
	}
	return false, fmt.Errorf("%w %q, type 'help'", ErrUnknownCommand, cmd)
}

func (c *Console) newSession(ctx context.Context, args []string) error {
	nums, err := parseInts(args, 2, "new <height> <width>")
	if err != nil {
		return err
	}
	info, err := c.svc.NewSession(ctx, nums[0], nums[1])
	if err != nil {
		return err
	}
	c.current = info.ID
	fmt.Fprintf(c.out, "Session %s started on an empty %dx%d board\n", info.ID, nums[0], nums[1])
	PrintBoard(c.out, info.GameState.Rows)
	return nil
}

func (c *Console) load(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("%w: load [scenario]", ErrUsage)
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	return c.Start(ctx, name)
}

func (c *Console) add(ctx context.Context, args []string) error {
	const usage = "add <soldier|sniper|medic> <powerlifters|crossfitters> <row> <col> <health> <ammo> <range> <power>"
	if len(args) != 8 {
		return fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	if c.current == "" {
		return ErrNoSession
	}
	charType, err := engine.ParseCharacterType(args[0])
	if err != nil {
		return err
	}
	team, err := engine.ParseTeam(args[1])
	if err != nil {
		return err
	}
	nums, err := parseInts(args[2:], 6, usage)
	if err != nil {
		return err
	}

	result, err := c.svc.AddUnit(ctx, c.current, service.AddUnitRequest{
		Type:     charType,
		Team:     team,
		Position: engine.Point(nums[0], nums[1]),
		Health:   nums[2],
		Ammo:     nums[3],
		Range:    nums[4],
		Power:    nums[5],
	})
	if err != nil {
		return err
	}
	PrintResult(c.out, result)
	return nil
}

func (c *Console) pairCommand(ctx context.Context, args []string, usage string,
	run func(context.Context, string, engine.GridPoint, engine.GridPoint) (*service.CommandResult, error)) error {
	nums, err := parseInts(args, 4, usage)
	if err != nil {
		return err
	}
	if c.current == "" {
		return ErrNoSession
	}
	result, err := run(ctx, c.current, engine.Point(nums[0], nums[1]), engine.Point(nums[2], nums[3]))
	if err != nil {
		return err
	}
	PrintResult(c.out, result)
	return nil
}

func (c *Console) reload(ctx context.Context, args []string) error {
	nums, err := parseInts(args, 2, "reload <row> <col>")
	if err != nil {
		return err
	}
	if c.current == "" {
		return ErrNoSession
	}
	result, err := c.svc.Reload(ctx, c.current, engine.Point(nums[0], nums[1]))
	if err != nil {
		return err
	}
	PrintResult(c.out, result)
	return nil
}

func (c *Console) show(ctx context.Context, what string) error {
	if c.current == "" {
		return ErrNoSession
	}
	state, err := c.svc.GetGameState(ctx, c.current)
	if err != nil {
		return err
	}
	switch what {
	case "board":
		PrintBoard(c.out, state.Rows)
	case "units":
		PrintUnits(c.out, state.Units)
	default:
		PrintStatus(c.out, c.current, state)
	}
	return nil
}

func (c *Console) history(ctx context.Context, args []string) error {
	if len(args) > 2 {
		return fmt.Errorf("%w: history [page] [limit]", ErrUsage)
	}
	nums, err := parseInts(args, len(args), "history [page] [limit]")
	if err != nil {
		return err
	}
	if c.current == "" {
		return ErrNoSession
	}
	opts := service.HistoryOptions{Order: service.OrderAsc}
	if len(nums) > 0 {
		opts.Page = nums[0]
	}
	if len(nums) > 1 {
		opts.Limit = nums[1]
	}
	history, err := c.svc.GetHistory(ctx, c.current, opts)
	if err != nil {
		return err
	}
	PrintHistory(c.out, history)
	return nil
}

func (c *Console) fork(ctx context.Context) error {
	if c.current == "" {
		return ErrNoSession
	}
	info, err := c.svc.ForkSession(ctx, c.current)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Forked session %s into %s, now playing %s\n", c.current, info.ID, info.ID)
	c.current = info.ID
	return nil
}

// save writes the current board as a scenario; words after the name form the description
func (c *Console) save(ctx context.Context, args []string) error {
	if c.current == "" {
		return ErrNoSession
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: save <name> [description...]", ErrUsage)
	}
	info, err := c.svc.SaveScenario(ctx, c.current, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Saved %s (%dx%d, %d units)\n", info.Filename, info.Height, info.Width, info.Units)
	return nil
}

func (c *Console) switchSession(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: switch <session>", ErrUsage)
	}
	info, err := c.svc.GetSession(ctx, args[0])
	if err != nil {
		return err
	}
	c.current = info.ID
	fmt.Fprintf(c.out, "Now playing session %s\n", info.ID)
	PrintBoard(c.out, info.GameState.Rows)
	return nil
}

func (c *Console) sessions(ctx context.Context) error {
	sessions, err := c.svc.ListSessions(ctx)
	if err != nil {
		return err
	}
	PrintSessions(c.out, sessions, c.current)
	return nil
}

func (c *Console) scenarios(ctx context.Context) error {
	scenarios, err := c.svc.ListScenarios(ctx)
	if err != nil {
		return err
	}
	PrintScenarios(c.out, scenarios)
	return nil
}

// parseInts converts exactly n arguments to integers
func parseInts(args []string, n int, usage string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%w: %s", ErrUsage, usage)
	}
	nums := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number (%s)", ErrUsage, a, usage)
		}
		nums[i] = v
	}
	return nums, nil
}
