package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avanderveen/curio/pkg/api"
	"github.com/avanderveen/curio/pkg/config"
	"github.com/avanderveen/curio/pkg/profile"
	"github.com/avanderveen/curio/pkg/ui"
	"github.com/avanderveen/curio/pkg/version"
	"github.com/avanderveen/curio/pkg/walkthrough"
	"github.com/avanderveen/curio/pkg/watcher"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (default: XDG config dir)")
	baseURL := flag.String("api", "", "Backend base URL (overrides config)")
	offline := flag.Bool("offline", false, "Run without a backend; nothing persists")
	importPath := flag.String("import", "", "CSV file the contacts page imports with I")
	noTour := flag.Bool("no-tour", false, "Never auto-start page walkthroughs")
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *help {
		fmt.Println("Usage: curio [options]")
		fmt.Println("\nA terminal client for the curio CRM.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("curio %s\n", version.Version)
		os.Exit(0)
	}

	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *offline {
		cfg.Offline = true
	}
	if *noTour {
		cfg.Walkthrough.Disabled = true
	}

	token, err := cfg.ResolveToken()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving API token: %v\n", err)
		os.Exit(1)
	}
	client := api.NewClient(cfg.API.BaseURL, token)

	// Profile store: remote with a local cache, or pure memory offline.
	var store walkthrough.ProfileStore
	if cfg.Offline {
		store = profile.NewMemory(nil)
	} else {
		var cache *profile.Cache
		if path := config.CachePath(); path != "" {
			if err := os.MkdirAll(config.StateDir(), 0o755); err == nil {
				if c, err := profile.OpenCache(path); err == nil {
					cache = c
					defer c.Close()
				}
			}
		}
		store = profile.NewRemote(client, cache)
	}

	registry := walkthrough.NewRegistry()
	if cfg.Walkthrough.StepsPath != "" {
		if err := registry.LoadOverrides(cfg.Walkthrough.StepsPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: step overrides not applied: %v\n", err)
		}
	}

	startPage, err := walkthrough.ParsePage(cfg.UI.StartPage)
	if err != nil {
		startPage = walkthrough.PageDashboard
	}

	m := ui.NewModel(
		ui.DefaultTheme(lipgloss.DefaultRenderer()),
		client,
		store,
		registry,
		ui.Options{
			StartPage:    startPage,
			TourDisabled: cfg.Walkthrough.Disabled,
			ImportPath:   *importPath,
		},
	)

	if err := runTUIProgram(m, registry, cfg.Walkthrough.StepsPath); err != nil {
		fmt.Printf("Error running curio: %v\n", err)
		os.Exit(1)
	}
}

func runTUIProgram(m ui.Model, registry *walkthrough.Registry, stepsPath string) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Reload step overrides live while the program runs.
	if stepsPath != "" {
		stop, err := watchSteps(stepsPath, func() {
			err := registry.LoadOverrides(stepsPath)
			p.Send(ui.StepsReloaded(err))
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: live reload of step overrides disabled: %v\n", err)
		} else {
			defer stop()
		}
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set CURIO_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("CURIO_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()

				select {
				case <-runDone:
					return
				case <-time.After(2 * time.Second):
				}

				p.Kill()
			}()
		}
	}

	_, err := p.Run()
	if err != nil && (errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted)) {
		return nil
	}
	return err
}

// watchSteps watches the step override file and runs onChange after each
// write. It returns the watcher's stop function; an error means live
// reload is unavailable, which the caller reports but does not treat as
// fatal.
func watchSteps(path string, onChange func()) (func(), error) {
	w, err := watcher.New(path, watcher.WithOnChange(onChange))
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		return nil, err
	}
	return w.Stop, nil
}
