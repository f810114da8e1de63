package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kirillkom/slidemaker/internal/config"
	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
	"github.com/kirillkom/slidemaker/internal/core/usecase"
	"github.com/kirillkom/slidemaker/internal/infrastructure/candidate"
	"github.com/kirillkom/slidemaker/internal/infrastructure/render/pptx"
	"github.com/kirillkom/slidemaker/internal/infrastructure/repository/memory"
)

// SynthesizerFactory builds the synthesis client for the effective config.
type SynthesizerFactory func(cfg config.Config) ports.Synthesizer

func addDeckFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "presentation title")
	cmd.Flags().String("theme", string(domain.ThemeDark), "color theme: dark or light")
	cmd.Flags().StringP("out", "o", "", "output file (default: derived from the title)")
}

func (c *CLI) newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build FILE...",
		Short: "Extract documents and generate a deck through the synthesis provider",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.newSynthesizer == nil {
				return errors.New("no synthesis provider configured")
			}
			content, err := c.extractAll(cmd, args)
			if err != nil {
				return err
			}

			cfg := c.cfg
			if provider := strings.TrimSpace(c.v.GetString("provider")); provider != "" {
				cfg.LLMProvider = strings.ToLower(provider)
			}
			theme, err := c.theme()
			if err != nil {
				return err
			}

			history := memory.NewHistory(cfg.HistoryCapacity)
			generator := usecase.NewGenerateDeckUseCase(c.newSynthesizer(cfg), candidate.New(c.logger), history, nil)
			deck, err := generator.Generate(cmd.Context(), domain.GenerateRequest{
				Content:           content,
				PresentationTitle: c.v.GetString("title"),
				Theme:             theme,
				Policy: domain.SynthesisPolicy{
					APIKey: c.v.GetString("api-key"),
					Model:  c.v.GetString("model"),
				},
			})
			if err != nil {
				return userError(err)
			}
			return c.export(cmd, *deck)
		},
	}
	addExtractFlags(cmd)
	addDeckFlags(cmd)
	cmd.Flags().String("provider", "", "synthesis provider: ollama or gemini (default from LLM_PROVIDER)")
	cmd.Flags().String("model", "", "model override")
	cmd.Flags().String("api-key", "", "API key for providers that require one")
	return cmd
}

func (c *CLI) newRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render CANDIDATES.json",
		Short: "Render slide candidate JSON into a deck without calling any service",
		Long: `Render validates and repairs a JSON array of slide candidates (the shape a
synthesis provider returns, optionally wrapped in a code fence) and encodes it.
Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			slides, err := candidate.New(c.logger).Validate(string(raw))
			if err != nil {
				return userError(err)
			}
			theme, err := c.theme()
			if err != nil {
				return err
			}
			return c.export(cmd, domain.Deck{
				PresentationTitle: strings.TrimSpace(c.v.GetString("title")),
				Theme:             theme,
				Slides:            slides,
				CreatedAt:         time.Now().UTC(),
			})
		},
	}
	addDeckFlags(cmd)
	return cmd
}

func (c *CLI) theme() (domain.Theme, error) {
	raw := c.v.GetString("theme")
	theme, ok := domain.ParseTheme(raw)
	if !ok {
		return "", fmt.Errorf("unknown theme %q: use dark or light", raw)
	}
	return theme, nil
}

func (c *CLI) export(cmd *cobra.Command, deck domain.Deck) error {
	exporter := usecase.NewExportDeckUseCase(pptx.NewEncoder(), nil, nil)
	export, err := exporter.Export(context.WithoutCancel(cmd.Context()), deck)
	if err != nil {
		return userError(err)
	}

	out := strings.TrimSpace(c.v.GetString("out"))
	if out == "" {
		out = export.FileName
	}
	if err := os.WriteFile(out, export.Bytes, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	writeLine(cmd.OutOrStdout(), "wrote %s (%d slides)", out, len(deck.Slides))
	return nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return raw, nil
}

// userError keeps the category for errors.Is but prints the fixed message.
func userError(err error) error {
	return &cliError{message: domain.UserMessage(err), cause: err}
}

type cliError struct {
	message string
	cause   error
}

func (e *cliError) Error() string { return e.message }
func (e *cliError) Unwrap() error { return e.cause }
