package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/kirillkom/slidemaker/internal/core/domain"
	"github.com/kirillkom/slidemaker/internal/core/ports"
	"github.com/kirillkom/slidemaker/internal/core/usecase"
	"github.com/kirillkom/slidemaker/internal/infrastructure/extractor"
)

var errSomeFilesFailed = errors.New("some files could not be extracted")

func (c *CLI) newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Extract plain text from documents",
		Long: `Extract reads every FILE concurrently and prints the combined text, each
source preceded by a provenance separator. Sources appear in completion order
unless --ordered is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := c.extractAll(cmd, args)
			if content != "" {
				writeLine(cmd.OutOrStdout(), "%s", content)
			}
			return err
		},
	}
	addExtractFlags(cmd)
	return cmd
}

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("ordered", false, "emit sources in submission order instead of completion order")
	cmd.Flags().Int("concurrency", 0, "maximum files extracted at once (default from EXTRACT_CONCURRENCY)")
}

// extractAll runs one extraction per file. A failed file is reported on
// stderr and skipped; the text of the others is still returned.
func (c *CLI) extractAll(cmd *cobra.Command, paths []string) (string, error) {
	extraction := usecase.NewExtractUseCase(extractor.NewAdapter(c.logger), nil)

	limit := c.v.GetInt("concurrency")
	if limit <= 0 {
		limit = c.cfg.ExtractConcurrency
	}

	var buffer domain.ContentBuffer
	failed := make([]string, len(paths))

	group, ctx := errgroup.WithContext(cmd.Context())
	if limit > 0 {
		group.SetLimit(limit)
	}
	for i, path := range paths {
		group.Go(func() error {
			text, err := extractFile(ctx, extraction, path)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				c.logger.Warn("cli_extract_failed", "file", path, "error", err)
				failed[i] = fmt.Sprintf("%s: %s", filepath.Base(path), domain.UserMessage(err))
				return nil
			}
			buffer.Append(domain.ContentEntry{Sequence: int64(i), Source: filepath.Base(path), Text: text.Text})
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	for _, message := range failed {
		if message != "" {
			writeLine(cmd.ErrOrStderr(), "%s", message)
		}
	}

	content := buffer.String()
	if c.v.GetBool("ordered") {
		content = buffer.OrderedBySubmission()
	}
	if buffer.Len() < len(paths) {
		return content, errSomeFilesFailed
	}
	return content, nil
}

// extractFile leaves MimeType empty so the format is decided by extension.
func extractFile(ctx context.Context, extraction ports.TextExtraction, path string) (domain.ExtractedText, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ExtractedText{}, domain.WrapError(domain.ErrInvalidInput, "read file", err)
	}
	return extraction.Extract(ctx, domain.Document{
		Bytes:    raw,
		FileName: filepath.Base(path),
	})
}
