package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/scoala-altfel/orar/backend/internal/board"
	"github.com/scoala-altfel/orar/backend/internal/client"
	"github.com/scoala-altfel/orar/backend/internal/config"
	"github.com/scoala-altfel/orar/backend/internal/domain"
	"github.com/scoala-altfel/orar/backend/internal/partners"
)

const usage = `usage: board <command> [flags]

commands:
  show          print the schedule board
  set           write activity/professor into a slot
  clear         empty a slot
  partners      print the partners list
  partner-add   add a partner
  partner-rm    remove a partner by id
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	api := client.New(cfg.Board.APIBaseURL, time.Duration(cfg.Board.RequestTimeout)*time.Second)
	ctx := context.Background()

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "show":
		err = runShow(ctx, cfg, api, args)
	case "set", "clear":
		err = runEdit(ctx, api, cmd == "clear", args)
	case "partners", "partner-add", "partner-rm":
		err = runPartners(ctx, api, cmd, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error(cmd+" failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func viewMode(flagValue string, breakpoint int) board.ViewMode {
	switch flagValue {
	case "desktop":
		return board.Desktop
	case "mobile":
		return board.Mobile
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return board.Desktop
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return board.Desktop
	}
	return board.ModeForWidth(width, breakpoint)
}

func runShow(ctx context.Context, cfg *config.Config, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	mode := fs.String("mode", "auto", "layout: auto, desktop or mobile")
	class := fs.String("class", "", "class shown on mobile, scroll target on desktop")
	_ = fs.Parse(args)

	b := board.New(api, board.DefaultGrid())
	if *class != "" {
		if err := b.SelectClass(*class); err != nil {
			return fmt.Errorf("%w: %s", err, *class)
		}
	}
	// a failed load still renders the empty grid with its status line
	if err := b.Load(ctx); err != nil {
		slog.Warn("schedule not loaded", slog.String("error", err.Error()))
	}

	return board.Render(os.Stdout, b.View(viewMode(*mode, cfg.Board.Breakpoint)))
}

func runEdit(ctx context.Context, api *client.Client, empty bool, args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	class := fs.String("class", "", "class name, e.g. \"Clasa a V-a\"")
	day := fs.String("day", "", "day, e.g. Luni")
	slot := fs.String("time", "", "hour range, e.g. \"08:00 - 09:00\"")
	activity := fs.String("activity", "", "activity")
	professor := fs.String("professor", "", "responsible professor")
	_ = fs.Parse(args)

	b := board.New(api, board.DefaultGrid())
	if err := b.Load(ctx); err != nil {
		return err
	}

	key := domain.SlotKey{ClassName: *class, Day: *day, Time: *slot}
	if err := b.Open(key); err != nil {
		return fmt.Errorf("%w: %s", err, key)
	}

	if empty {
		if err := b.Clear(); err != nil {
			return err
		}
	} else {
		if err := b.SetActivity(*activity); err != nil {
			return err
		}
		if err := b.SetProfessor(*professor); err != nil {
			return err
		}
	}

	if err := b.Submit(ctx); err != nil {
		if editing, ok := b.State().(board.Editing); ok && editing.Status != "" {
			fmt.Fprintln(os.Stderr, editing.Status)
		}
		return err
	}

	entry, ok := b.Entry(key)
	fmt.Printf("%s · %s: %s\n", key.Day, b.Grid().TimeLabel(key.ClassName, key.Time), board.CellText(entry, ok))
	return nil
}

func runPartners(ctx context.Context, api *client.Client, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	name := fs.String("name", "", "partner name")
	id := fs.String("id", "", "partner id")
	admin := fs.Bool("admin", false, "list ids and delete controls")
	_ = fs.Parse(args)

	panel := partners.NewPanel(api)
	if err := panel.Load(ctx); err != nil {
		slog.Warn("partners not loaded", slog.String("error", err.Error()))
	}

	var err error
	switch cmd {
	case "partner-add":
		_, err = panel.Add(ctx, *name)
		*admin = true
	case "partner-rm":
		if *id == "" {
			return errors.New("-id is required")
		}
		err = panel.Delete(ctx, *id)
		*admin = true
	}

	if *admin {
		if rerr := panel.RenderAdmin(os.Stdout); rerr != nil {
			return rerr
		}
	} else if rerr := panel.Render(os.Stdout); rerr != nil {
		return rerr
	}
	return err
}
