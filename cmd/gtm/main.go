// Command gtm is the operator CLI: schedule sync, seat registration,
// inventory listing and migrations against the configured store.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/riskibarqy/season-tickets/internal/app"
	"github.com/riskibarqy/season-tickets/internal/config"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/riskibarqy/season-tickets/internal/platform/migrator"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

const usage = `usage: gtm <command> [flags]

commands:
  sync-schedule --season YYYY [--season YYYY ...]
  list-games    [--month N]
  add-seats     --section S --row R --start N --end N [--notes TEXT]
  list-seats
  list-tickets  --game GAME_PK
  backfill
  migrate       ` + migrator.Usage + `
`

var errUsage = errors.New("usage")

type cli struct {
	cfg    config.Config
	out    io.Writer
	logger *logging.Logger
	open   func(ctx context.Context) (*app.App, error)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stderr, cfg.LogLevel, logging.FormatConsole)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := &cli{
		cfg:    cfg,
		out:    os.Stdout,
		logger: logger,
		open: func(ctx context.Context) (*app.App, error) {
			return app.New(ctx, cfg, logger)
		},
	}
	if err := c.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "gtm:", err)
		os.Exit(1)
	}
}

func (c *cli) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	if cmd == "migrate" {
		return c.migrate(rest)
	}

	handlers := map[string]func(context.Context, *app.App, []string) error{
		"sync-schedule": c.syncSchedule,
		"list-games":    c.listGames,
		"add-seats":     c.addSeats,
		"list-seats":    c.listSeats,
		"list-tickets":  c.listTickets,
		"backfill":      c.backfill,
	}
	handler, ok := handlers[cmd]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	a, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			c.logger.Warn("close app", "error", err)
		}
	}()
	return handler(ctx, a, rest)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (c *cli) syncSchedule(ctx context.Context, a *app.App, args []string) error {
	fs := newFlagSet("sync-schedule")
	seasons := fs.IntSlice("season", nil, "season year, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(*seasons) == 0 {
		return fmt.Errorf("%w: --season is required", errUsage)
	}

	result, err := a.Schedule.SyncSeasons(ctx, *seasons)
	if err != nil {
		return err
	}

	t := newTable("SEASON", "GAMES", "PROMOTIONS", "TICKETS")
	for _, s := range result.Seasons {
		t.add(strconv.Itoa(s.Season), strconv.Itoa(s.Games), strconv.Itoa(s.Promotions), strconv.Itoa(s.TicketsGenerated))
	}
	totals := result.Totals()
	t.add("total", strconv.Itoa(totals.Games), strconv.Itoa(totals.Promotions), strconv.Itoa(totals.TicketsGenerated))
	return t.render(c.out)
}

func (c *cli) listGames(ctx context.Context, a *app.App, args []string) error {
	fs := newFlagSet("list-games")
	month := fs.Int("month", 0, "calendar month 1-12, 0 for all")
	if err := fs.Parse(args); err != nil {
		return err
	}

	games, err := a.Schedule.ListGames(ctx, *month)
	if err != nil {
		return err
	}

	t := newTable("GAME_PK", "DATE", "AWAY", "HOME", "VENUE", "STATUS")
	for _, g := range games {
		t.add(
			strconv.FormatInt(g.Key, 10),
			g.OfficialDate,
			g.AwayTeamName,
			g.HomeTeamName,
			g.VenueName,
			g.StatusDetailed,
		)
	}
	return t.render(c.out)
}

func (c *cli) addSeats(ctx context.Context, a *app.App, args []string) error {
	fs := newFlagSet("add-seats")
	section := fs.String("section", "", "section")
	row := fs.String("row", "", "row")
	start := fs.Int("start", 0, "first seat number")
	end := fs.Int("end", 0, "last seat number")
	notes := fs.String("notes", "", "notes for every seat in the range")
	if err := fs.Parse(args); err != nil {
		return err
	}

	input := usecase.RegisterSeatsInput{Section: *section, Row: *row, Start: *start, End: *end}
	if fs.Changed("notes") {
		input.Notes = notes
	}
	result, err := a.Seats.RegisterSeats(ctx, input)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.out, "created %d seat(s), generated %d ticket(s)\n", len(result.Seats), result.TicketsGenerated)
	return err
}

func (c *cli) listSeats(ctx context.Context, a *app.App, _ []string) error {
	seats, err := a.Seats.ListSeats(ctx)
	if err != nil {
		return err
	}

	t := newTable("ID", "SECTION", "ROW", "SEAT", "NOTES")
	for _, s := range seats {
		t.add(strconv.FormatInt(s.ID, 10), s.Section, s.Row, s.Label, orDash(s.Notes))
	}
	return t.render(c.out)
}

func (c *cli) listTickets(ctx context.Context, a *app.App, args []string) error {
	fs := newFlagSet("list-tickets")
	gameKey := fs.Int64("game", 0, "game pk")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *gameKey <= 0 {
		return fmt.Errorf("%w: --game is required", errUsage)
	}

	tickets, err := a.Inventory.TicketsForGame(ctx, *gameKey)
	if err != nil {
		return err
	}
	sort.SliceStable(tickets, func(i, j int) bool { return tickets[i].ID < tickets[j].ID })

	t := newTable("ID", "SEAT", "STATUS", "ASSIGNEE", "NOTES")
	for _, tk := range tickets {
		seat := tk.Section + "/" + tk.Row + "/" + tk.SeatLabel
		t.add(strconv.FormatInt(tk.ID, 10), seat, string(tk.Status), orDash(tk.AssigneeName), orDash(tk.Notes))
	}
	return t.render(c.out)
}

// backfill creates any (home game, seat) ticket still missing, for example
// after a seat and a game were written by processes on older releases.
func (c *cli) backfill(ctx context.Context, a *app.App, _ []string) error {
	created, err := a.Inventory.Backfill(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.out, "generated %d missing ticket(s)\n", created)
	return err
}

func (c *cli) migrate(args []string) error {
	if c.cfg.DBURL == config.MemoryDBURL {
		return errors.New("migrate needs a PostgreSQL DB_URL")
	}
	dir, err := migrator.ResolveDir(migrator.DefaultDirs...)
	if err != nil {
		return err
	}
	m, err := migrator.New(c.cfg.DBURL, dir)
	if err != nil {
		return err
	}
	runErr := migrator.Run(m, args, c.out)
	if err := m.Close(); err != nil {
		c.logger.Warn("close migrator", "error", err)
	}
	return runErr
}
