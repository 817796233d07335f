package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Nyvo2010/Glidr-Browser/internal/app"
	"github.com/Nyvo2010/Glidr-Browser/internal/engine"
	"github.com/Nyvo2010/Glidr-Browser/internal/glidrai"
	"github.com/Nyvo2010/Glidr-Browser/internal/logging"
	"github.com/Nyvo2010/Glidr-Browser/internal/search"
	"github.com/Nyvo2010/Glidr-Browser/internal/session"
	"github.com/Nyvo2010/Glidr-Browser/internal/storage"
	"github.com/Nyvo2010/Glidr-Browser/internal/theme"
)

var version = "0.1.0"

func main() {
	var (
		themeName   string
		showVersion bool
		debug       bool
	)

	flag.StringVar(&themeName, "theme", "", "color theme (glidr, gruvbox, nord)")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.BoolVar(&debug, "debug", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "glidr - a terminal browser with an AI copilot\n\n")
		fmt.Fprintf(os.Stderr, "Usage: glidr [flags] [url or query]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glidr                        # start on the home screen\n")
		fmt.Fprintf(os.Stderr, "  glidr golang.org             # open a URL, https:// added\n")
		fmt.Fprintf(os.Stderr, "  glidr \"history of the web\"   # run a search\n")
		fmt.Fprintf(os.Stderr, "  glidr --theme nord           # use the nord theme\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("glidr %s\n", version)
		os.Exit(0)
	}

	cfg, err := storage.LoadConfig()
	if err != nil {
		def := storage.DefaultConfig()
		cfg = &def
	}

	if themeName == "" {
		themeName = cfg.Theme
	}
	if !theme.Set(themeName) {
		fmt.Fprintf(os.Stderr, "Unknown theme: %s\nAvailable: %s\n",
			themeName, strings.Join(theme.List(), ", "))
		os.Exit(1)
	}

	dataDir, err := storage.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(dataDir, debug || cfg.Debug)
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	// Storage is best-effort; the browser works without it.
	var visits *storage.VisitStore
	db, err := storage.OpenDB(dataDir)
	if err != nil {
		log.Warn("opening database", zap.Error(err))
	} else {
		visits = storage.NewVisitStore(db)
		defer db.Close()
	}

	fetcher := engine.NewFetcher()
	eng := engine.NewTermEngine(log)
	controller := session.NewController(session.Deps{
		Search:    search.NewClient(fetcher, cfg.SearchBaseURL),
		Assistant: glidrai.NewClient(cfg.AIBaseURL),
		Engine:    eng,
		Log:       log,
	})

	m := app.New(app.Deps{
		Controller: controller,
		Engine:     eng,
		Visits:     visits,
		Log:        log,
	})
	if flag.NArg() > 0 {
		m.SetStartText(strings.Join(flag.Args(), " "))
	} else if cfg.Homepage != "" {
		m.SetStartText(cfg.Homepage)
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	eng.SetNotifier(func(ready engine.PageReady) {
		p.Send(app.PageReadyMsg{Ready: ready})
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
