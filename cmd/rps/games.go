package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/rps-showdown/internal/config"
	rpsgame "github.com/vovakirdan/rps-showdown/internal/games/rps"
	"github.com/vovakirdan/rps-showdown/internal/registry"
)

var (
	flagConfig   string
	flagPreset   string
	flagNoSplash bool
)

// variantConfigs holds the resolved configuration of every variant.
type variantConfigs map[string]config.RPSConfig

// resolveConfigs loads the configuration of every variant up front, so a
// broken file fails the command before any screen opens. An explicit preset
// overrides each variant's own preset.
func resolveConfigs() (variantConfigs, error) {
	override, err := config.ParsePreset(flagPreset)
	if err != nil {
		return nil, err
	}

	out := make(variantConfigs, len(rpsgame.Variants))
	for _, v := range rpsgame.Variants {
		preset := v.Preset
		if override != "" {
			preset = override
		}
		cfg, err := config.Resolve(flagConfig, preset)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.ID, err)
		}
		if flagNoSplash {
			cfg.Splash.Enabled = false
		}
		out[v.ID] = cfg
	}
	return out, nil
}

// apply configures g if it is one of the rps variants.
func (c variantConfigs) apply(g registry.Game, logger *log.Logger) {
	rg, ok := g.(*rpsgame.Game)
	if !ok {
		return
	}
	if cfg, ok := c[rg.ID()]; ok {
		rg.Configure(cfg)
	}
	rg.SetLogger(logger)
}

// createGame creates and configures the variant id.
func createGame(id string, cfgs variantConfigs, logger *log.Logger) (registry.Game, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown variant %q (run 'rps list' to see available variants)", id)
	}
	g, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	cfgs.apply(g, logger.With("game", id))
	return g, nil
}

// addGameFlags registers the flags that shape a game session.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom rps config YAML")
	cmd.Flags().StringVar(&flagPreset, "variant-preset", "", "Override the variant preset: classic, enhanced")
	cmd.Flags().BoolVar(&flagNoSplash, "no-splash", false, "Skip the splash screen")
}
