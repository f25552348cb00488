package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-insights/internal/watcher"
	"github.com/johnquangdev/meeting-insights/pkg/dispatcher"
)

const insightsSuffix = ".insights.json"

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var outDir string
	var concurrency int
	var drainTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "watch DIR",
		Short: "Extract insights for every transcript dropped into DIR",
		Long:  "Watches DIR for new .txt, .md and .transcript files and writes FILE" + insightsSuffix + " for each one, e.g. standup.txt" + insightsSuffix + ".",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			if outDir == "" {
				outDir = dir
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			handler := insightsFileHandler(ctx.client(), outDir, logger)
			w, err := watcher.New(dir, handler, logger, concurrency, watcher.WithDrainTimeout(drainTimeout))
			if err != nil {
				return err
			}
			defer w.Stop()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := w.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Directory for insight files (default DIR)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 2, "Transcripts processed at once")
	cmd.Flags().DurationVar(&drainTimeout, "drain-timeout", 2*time.Minute, "How long shutdown waits for in-flight transcripts")
	return cmd
}

// insightsFileHandler sends a transcript file to the server and writes the
// bundle next to it as JSON.
func insightsFileHandler(client *dispatcher.Client, outDir string, logger *zap.Logger) watcher.EventHandler {
	return func(ctx context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read transcript: %w", err)
		}

		res, err := client.Insights(ctx, string(data))
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}

		// The source extension stays in the name so a.txt and a.md do not collide
		target := filepath.Join(outDir, filepath.Base(path)+insightsSuffix)
		if err := os.WriteFile(target, append(out, '\n'), 0o644); err != nil {
			return fmt.Errorf("write insights: %w", err)
		}

		logger.Info("✅ Insights written",
			zap.String("transcript", path),
			zap.String("output", target),
			zap.Int("decisions", len(res.Decisions)),
			zap.Int("action_items", len(res.ActionItems)),
		)
		return nil
	}
}
