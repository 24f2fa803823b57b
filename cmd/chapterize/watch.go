package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/audiobooksmith/chapterize/internal/pipeline"
	"github.com/audiobooksmith/chapterize/internal/splitter"
	"github.com/audiobooksmith/chapterize/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the inbox directory and process arriving books",
	Long: `Watch monitors the inbox directory (default ~/.chapterize/inbox) and
runs the full pipeline on every supported file that arrives. Output goes
to one subdirectory per book under the output directory. Runs until
interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		if err := appHome.EnsureExists(); err != nil {
			return err
		}

		cfg := cfgManager.Get()
		inbox := cfg.Output.Inbox
		if inbox == "" {
			inbox = appHome.InboxPath()
		}

		w, err := watch.New(watch.Config{
			Dir:    inbox,
			Logger: logger,
			Handler: func(ctx context.Context, path string) error {
				outDir := cfg.Output.Dir
				if outDir == "" {
					outDir = appHome.RunOutputPath(runName(path))
				}
				_, err := pipeline.Run(ctx, svc, pipeline.Request{
					InputPath:      path,
					OutputDir:      outDir,
					SkipValidation: cfg.Split.SkipValidation,
					VoiceCount:     cfg.ElevenLabs.VoiceCount,
					Split: splitter.Options{
						MinChapterWords:     cfg.Split.MinChapterWords,
						AcceptThreshold:     cfg.Split.AcceptThreshold,
						SimilarityThreshold: cfg.Split.SimilarityThreshold,
					},
				})
				return err
			},
		})
		if err != nil {
			return err
		}

		if err := w.Run(cmd.Context()); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}
