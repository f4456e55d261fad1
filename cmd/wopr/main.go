package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/falken/wopr/internal/audio"
	"github.com/falken/wopr/internal/config"
	"github.com/falken/wopr/internal/console"
	"github.com/falken/wopr/internal/database"
	"github.com/falken/wopr/internal/database/repository"
	"github.com/falken/wopr/internal/games/catalog"
	"github.com/falken/wopr/internal/session"
	"github.com/falken/wopr/internal/tui"
)

const version = "1.0.0"

func main() {
	skipIntro := flag.Bool("skip-intro", false, "skip the modem dialup sequence")
	noSound := flag.Bool("no-sound", false, "disable all audio")
	noVoice := flag.Bool("no-voice", false, "disable voice synthesis only")
	fast := flag.Bool("fast", false, "disable typing animations")
	game := flag.String("game", "", "jump directly to a specific game")
	debug := flag.Bool("debug", false, "enable debug logging")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("WOPR %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Command line overrides.
	if *skipIntro {
		cfg.Gameplay.SkipIntro = true
	}
	if *noSound {
		cfg.Audio.Enabled = false
		cfg.Audio.VoiceEnabled = false
	}
	if *noVoice {
		cfg.Audio.VoiceEnabled = false
	}
	if *fast {
		cfg.Display.TypingSpeed = 0
	}
	fastMode := cfg.Display.TypingSpeed == 0

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
		logPath := filepath.Join(filepath.Dir(cfg.Database.Path), "debug.log")
		if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err == nil {
			if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				logger.SetOutput(f)
				defer f.Close()
			}
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var journal session.Journal
	var jrnl *repository.Journal
	if cfg.Gameplay.SaveGames {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			log.Fatalf("mkdir db dir: %v", err)
		}
		if err := database.Migrate(cfg.Database.Path); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		db, err := database.Open(cfg.Database.Path)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		defer db.Close()

		jrnl, err = repository.NewJournal(ctx, db)
		if err != nil {
			log.Fatalf("open journal: %v", err)
		}
		journal = jrnl
	}

	rate := 1.0
	if fastMode {
		rate = 0
	}
	reg, err := catalog.NewRegistry(catalog.Options{
		ChessDifficulty: cfg.Gameplay.ChessDifficulty,
		Rate:            rate,
	})
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	con := console.New()

	var player audio.Player = audio.Nop{}
	if cfg.Audio.Enabled {
		player = &audio.Bell{W: os.Stdout, Voice: cfg.Audio.VoiceEnabled}
	}

	ctrl, err := session.New(con, con, reg, session.Options{
		SkipIntro: cfg.Gameplay.SkipIntro,
		FastMode:  fastMode,
		JumpTo:    *game,
		Logger:    logger,
		Journal:   journal,
	})
	if err != nil {
		log.Fatalf("session: %v", err)
	}

	p := tea.NewProgram(tui.New(ctx, cancel, con, player, cfg), tea.WithAltScreen())

	go func() {
		runErr := ctrl.Run(ctx)
		if jrnl != nil {
			// Stamp the session row even when the run was cancelled.
			_ = jrnl.Close(context.Background(), ctrl.State().String())
		}
		con.Close()
		p.Send(tui.SessionDoneMsg{Err: runErr})
	}()

	model, err := p.Run()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	if app, ok := model.(*tui.App); ok && app.Err() != nil {
		fmt.Printf("error: %v\n", app.Err())
		os.Exit(1)
	}
	fmt.Println("CONNECTION TERMINATED")
}
