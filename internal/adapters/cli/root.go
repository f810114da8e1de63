// Package cli is the slidemaker command line: extract documents, build a deck
// through the synthesis provider, or render candidate JSON offline.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kirillkom/slidemaker/internal/config"
)

const envPrefix = "SLIDEMAKER"

// CLI holds what every subcommand shares. Flag values are read through v so
// they can also come from a config file or SLIDEMAKER_* variables.
type CLI struct {
	cfg            config.Config
	logger         *slog.Logger
	v              *viper.Viper
	newSynthesizer SynthesizerFactory
}

func NewRootCommand(cfg config.Config, logger *slog.Logger, newSynthesizer SynthesizerFactory) *cobra.Command {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CLI{cfg: cfg, logger: logger, v: viper.New(), newSynthesizer: newSynthesizer}

	root := &cobra.Command{
		Use:           "slidemaker",
		Short:         "Turn documents into PowerPoint decks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.initConfig(cmd)
		},
	}
	root.PersistentFlags().String("config", "", "config file (YAML)")

	root.AddCommand(c.newExtractCommand(), c.newBuildCommand(), c.newRenderCommand())
	return root
}

func (c *CLI) initConfig(cmd *cobra.Command) error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if err := c.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	if cfgFile := c.v.GetString("config"); cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		c.logger.Debug("cli_config_loaded", "file", c.v.ConfigFileUsed())
	}
	return nil
}

func writeLine(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format+"\n", args...)
}
