package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/piecemeal-studio/piecemeal/internal/browser"
	"github.com/piecemeal-studio/piecemeal/internal/session"
	"github.com/piecemeal-studio/piecemeal/internal/store"
	"github.com/piecemeal-studio/piecemeal/internal/tui"
	"github.com/piecemeal-studio/piecemeal/internal/wizard"
	"github.com/piecemeal-studio/piecemeal/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const defaultSiteURL = "https://piecemeal.studio"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolveDataDir returns the on-device storage directory:
// PIECEMEAL_DATA_DIR when set, otherwise ~/.piecemeal.
func resolveDataDir() (string, error) {
	if dir := os.Getenv("PIECEMEAL_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".piecemeal"), nil
}

// resolveAPIURL returns the workshop API base URL.
func resolveAPIURL() string {
	if u := os.Getenv("PIECEMEAL_API_URL"); u != "" {
		return u
	}
	return "https://api.piecemeal.studio"
}

// resolveSiteURL returns the public site base URL, used for share and
// order-status links.
func resolveSiteURL() string {
	if u := os.Getenv("PIECEMEAL_SITE_URL"); u != "" {
		return u
	}
	return defaultSiteURL
}

// openLogger writes structured logs to <dataDir>/piecemeal.log. The
// terminal belongs to the TUI, so nothing may log to stderr while it
// runs. Falls back to a discard logger when the file cannot be opened.
func openLogger(dataDir string) (*slog.Logger, func()) {
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "piecemeal.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return slog.New(slog.DiscardHandler), func() {}
	}
	log := slog.New(slog.NewTextHandler(f, nil))
	return log, func() { f.Close() } //nolint:errcheck // best-effort close
}

func run() error {
	dataDir, err := resolveDataDir()
	if err != nil {
		return err
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("piecemeal " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "reset":
			return runReset(dataDir)
		case "terms":
			return openLegal("terms")
		case "privacy":
			return openLegal("privacy")
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", os.Args[1])
			printHelp()
			os.Exit(2)
		}
	}

	log, closeLog := openLogger(dataDir)
	defer closeLog()

	fs := store.NewFileStore(dataDir)
	now := time.Now

	repo := session.NewRepository(fs, log, now)
	progress := session.NewProgressStore(fs, log, now, session.DefaultDebounce)
	consent := session.NewConsentStore(fs, log, now)
	visitor := session.NewVisitorStore(fs, log, now)

	profile := visitor.BumpVisit()
	log.Info("starting", "version", version, "visit", profile.VisitCount)

	ctrl := wizard.New(repo, progress, uuid.NewString, now)

	siteURL := resolveSiteURL()
	app := tui.NewApp(tui.Services{
		Controller: ctrl,
		Progress:   progress,
		Consent:    consent,
		Visitor:    visitor,
		Client:     client.New(resolveAPIURL()),
		ExitFlag:   &session.Flag{},
		InviteBase: siteURL + "/i/",
		OrderBase:  siteURL + "/orders/",
		VisitCount: profile.VisitCount,
		Log:        log,
	})

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	// Pending checkout edits survive the quit; the timer does not.
	progress.Flush()
	progress.Close()
	app.Teardown()
	return nil
}

// runReset wipes everything the configurator stored on this device.
func runReset(dataDir string) error {
	log, closeLog := openLogger(dataDir)
	defer closeLog()

	fs := store.NewFileStore(dataDir)
	now := time.Now
	session.NewRepository(fs, log, now).Clear()

	progress := session.NewProgressStore(fs, log, now, session.DefaultDebounce)
	progress.Clear()
	progress.Close()

	session.NewConsentStore(fs, log, now).Clear()
	fmt.Println("Stored drafts and preferences removed.")
	return nil
}

func openLegal(page string) error {
	url := resolveSiteURL() + "/" + page
	if err := browser.Open(url); err != nil {
		fmt.Println(url)
	}
	return nil
}

func printHelp() {
	fmt.Print(`piecemeal — design a keepsake puzzle from your terminal

usage:
  piecemeal            start the configurator
  piecemeal reset      remove stored drafts and preferences
  piecemeal version    print the version
  piecemeal terms      open the terms of service
  piecemeal privacy    open the privacy policy

environment:
  PIECEMEAL_DATA_DIR   where drafts are stored (default ~/.piecemeal)
  PIECEMEAL_API_URL    workshop API base URL
  PIECEMEAL_SITE_URL   public site base URL for share links
`)
}
