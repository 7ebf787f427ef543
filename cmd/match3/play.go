package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/platform/tui"
	"github.com/vovakirdan/tui-match3/internal/registry"
	"github.com/vovakirdan/tui-match3/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWrap       bool
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a round",
	Long: `Start playing the specified mode (match3 or match3_wrap).

Controls:
  Arrows/WASD  - Move the cursor
  Enter/Space  - Select a tile, select a neighbour to swap
  Mouse        - Click two neighbours, or drag a tile onto one
  H/?          - Toggle hints
  Esc/B        - Drop the selection (back to menu when paused or over)
  P            - Pause
  R            - New board (after no more moves or game over)
  Ctrl+S       - Save a screenshot to ~/.match3/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five tile types, longer timer, bigger time bonus
  normal - The configured board
  hard   - Seven tile types, shorter timer, smaller time bonus
  fixed  - Rewards stay the same on every level

Examples:
  match3 play
  match3 play match3_wrap
  match3 play --wrap --difficulty easy
  match3 play --config ./my-match3.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagWrap, "wrap", false, "Play the wrap-around board")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := "match3"
	if flagWrap {
		gameID = "match3_wrap"
	}
	if len(args) == 1 {
		gameID = args[0]
	}

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'match3 list' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if err := configureGame(flagConfig, flagDifficulty, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
