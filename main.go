package main

import (
	"errors"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jonboulle/clockwork"
	"github.com/ncruces/zenity"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/glyphfield/internal/app"
	"github.com/iburimskiy/glyphfield/internal/config"
	"github.com/iburimskiy/glyphfield/internal/field"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		// Desktop launches have no visible stderr, so surface fatal
		// errors in a dialog too. Best effort on headless systems.
		_ = zenity.Error(err.Error(), zenity.Title("glyphfield"))
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
		flagCfg    config.Config
	)

	cmd := &cobra.Command{
		Use:   "glyphfield",
		Short: "Animated glyph-grid background effect",
		Long: `glyphfield renders a grid of glyphs in a window, drifting with a
scroll-driven parallax and disturbed by short randomized glyph scrambles
whose rate follows scroll speed. Scroll with the mouse wheel, arrows, or
pager keys; Esc or Q quits.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlagOverrides(cmd, &cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if configPath != "" {
				logger.Debug("loaded config", "path", configPath)
			}
			return run(cfg, logger)
		},
	}

	def := config.Default()
	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	flags.IntVar(&flagCfg.WindowWidth, "width", def.WindowWidth, "window width")
	flags.IntVar(&flagCfg.WindowHeight, "height", def.WindowHeight, "window height")
	flags.Float64Var(&flagCfg.Density, "density", def.Density, "cell density multiplier (0 = auto by width)")
	flags.Float64Var(&flagCfg.ParallaxStrength, "parallax-strength", def.ParallaxStrength, "scroll parallax strength")
	flags.Float64Var(&flagCfg.ScrambleFrequency, "scramble-frequency", def.ScrambleFrequency, "scramble burst frequency")
	flags.StringVar(&flagCfg.GlyphColor, "glyph-color", def.GlyphColor, "base glyph color (#rrggbb)")
	flags.StringVar(&flagCfg.HighlightColor, "highlight-color", def.HighlightColor, "highlight glyph color (#rrggbb)")
	flags.StringVar(&flagCfg.Alphabet, "alphabet", def.Alphabet, "named glyph set or literal glyph string")
	flags.Float64Var(&flagCfg.PageHeight, "page-height", def.PageHeight, "virtual scrollable height in px")
	flags.BoolVar(&flagCfg.ReducedMotion, "reduced-motion", def.ReducedMotion, "suppress parallax and scrambles")

	return cmd
}

// applyFlagOverrides copies every flag the user actually set over the file
// config, so precedence is defaults < file < flags.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config, flagCfg config.Config) {
	set := cmd.Flags().Changed
	if set("width") {
		cfg.WindowWidth = flagCfg.WindowWidth
	}
	if set("height") {
		cfg.WindowHeight = flagCfg.WindowHeight
	}
	if set("density") {
		cfg.Density = flagCfg.Density
	}
	if set("parallax-strength") {
		cfg.ParallaxStrength = flagCfg.ParallaxStrength
	}
	if set("scramble-frequency") {
		cfg.ScrambleFrequency = flagCfg.ScrambleFrequency
	}
	if set("glyph-color") {
		cfg.GlyphColor = flagCfg.GlyphColor
	}
	if set("highlight-color") {
		cfg.HighlightColor = flagCfg.HighlightColor
	}
	if set("alphabet") {
		cfg.Alphabet = flagCfg.Alphabet
	}
	if set("page-height") {
		cfg.PageHeight = flagCfg.PageHeight
	}
	if set("reduced-motion") {
		cfg.ReducedMotion = flagCfg.ReducedMotion
	}
}

func run(cfg config.Config, logger *charmlog.Logger) error {
	alphabet, err := config.ResolveAlphabet(cfg.Alphabet)
	if err != nil {
		return err
	}
	glyphColor, err := config.ParseColor(cfg.GlyphColor)
	if err != nil {
		return err
	}
	highlightColor, err := config.ParseColor(cfg.HighlightColor)
	if err != nil {
		return err
	}

	f := field.New(field.Options{
		Density:           cfg.Density,
		ParallaxStrength:  cfg.ParallaxStrength,
		ScrambleFrequency: cfg.ScrambleFrequency,
		GlyphColor:        glyphColor,
		HighlightColor:    highlightColor,
		Alphabet:          alphabet,
		PageHeight:        cfg.PageHeight,
		ReducedMotion:     cfg.ReducedMotion,
	}, clockwork.NewRealClock())
	f.Resize(float64(cfg.WindowWidth), float64(cfg.WindowHeight), 1)

	g := app.New(f, logger)

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle("glyphfield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logger.Info("starting",
		"window", fmt.Sprintf("%dx%d", cfg.WindowWidth, cfg.WindowHeight),
		"alphabet", cfg.Alphabet,
		"reduced_motion", cfg.ReducedMotion)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("render loop: %w", err)
	}
	logger.Info("stopped")
	return nil
}
