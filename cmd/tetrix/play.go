package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cuhuuhoang/tetrix/internal/config"
	"github.com/cuhuuhoang/tetrix/internal/core"
	"github.com/cuhuuhoang/tetrix/internal/game"
	"github.com/cuhuuhoang/tetrix/internal/platform/tui"
	"github.com/cuhuuhoang/tetrix/internal/storage"
)

var (
	flagConfig string
	flagResume bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game in the current terminal.

Controls:
  A/Left     - Move left
  D/Right    - Move right
  W/Up       - Rotate
  S/Down     - Soft drop
  Space      - Hard drop
  P/Esc      - Pause
  R          - Restart (after game over)
  Q/Ctrl+C   - Quit

Quitting mid-game autosaves the session (unless disabled in config);
pick it back up with --resume.

Examples:
  tetrix play
  tetrix play --resume
  tetrix play --config ./my-tetrix.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Resume the last saved session")
}

func runPlay(cmd *cobra.Command, args []string) {
	appCfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	g := game.New(appCfg)

	if flagResume {
		if store == nil {
			fmt.Fprintln(os.Stderr, "Error: --resume requires a working database")
			os.Exit(1)
		}
		snap, loadErr := store.LoadSession(appCfg.Session.Slot)
		if loadErr != nil {
			fmt.Fprintf(os.Stderr, "Error loading saved session: %v\n", loadErr)
			store.Close()
			os.Exit(1)
		}
		if snap == nil {
			fmt.Fprintln(os.Stderr, "No saved session to resume.")
			store.Close()
			os.Exit(1)
		}
		g.SetResume(snap)
	}

	runErr := tui.Run(g, store, appCfg, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
