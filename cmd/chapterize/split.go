package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/audiobooksmith/chapterize/internal/extract"
	"github.com/audiobooksmith/chapterize/internal/sink"
	"github.com/audiobooksmith/chapterize/internal/splitter"
)

var (
	splitTitles   []string
	splitMinWords int
)

var splitCmd = &cobra.Command{
	Use:   "split <input> [output-dir]",
	Short: "Split a book into chapters without LLM analysis",
	Long: `Split runs extraction and chapter detection only. No API keys are
needed: content checks, metadata, and narrator matching are skipped.
Chapter files and a manifest are written to the output directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := args[0]
		outDir := ""
		if len(args) == 2 {
			outDir = args[1]
		} else {
			outDir = appHome.RunOutputPath(runName(input))
		}

		doc, err := extract.FromFile(cmd.Context(), input)
		if err != nil {
			return err
		}

		cfg := cfgManager.Get()
		opts := splitter.Options{
			MinChapterWords:     cfg.Split.MinChapterWords,
			AcceptThreshold:     cfg.Split.AcceptThreshold,
			SimilarityThreshold: cfg.Split.SimilarityThreshold,
			UserTitles:          splitTitles,
			Logger:              logger,
		}
		if splitMinWords > 0 {
			opts.MinChapterWords = splitMinWords
		}
		res := splitter.Run(doc.Text, opts)

		out, err := sink.NewDirSink(outDir)
		if err != nil {
			return err
		}
		for _, ch := range append(res.Chapters, res.LowConfidence...) {
			if err := out.WriteChapter(ch.Number, ch.Title, ch.Content); err != nil {
				return err
			}
		}
		if err := out.WriteManifest(sink.Manifest{}); err != nil {
			return err
		}

		fmt.Printf("%d chapters", len(res.Chapters))
		if n := len(res.LowConfidence); n > 0 {
			fmt.Printf(", %d need review", n)
		}
		fmt.Printf(" -> %s\n", outDir)
		return nil
	},
}

func init() {
	splitCmd.Flags().StringSliceVar(&splitTitles, "titles", nil, "comma-separated chapter titles to use instead of automatic detection")
	splitCmd.Flags().IntVar(&splitMinWords, "min-words", 0, "minimum words per chapter (default from config)")
}
