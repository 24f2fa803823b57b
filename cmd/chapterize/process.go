package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/audiobooksmith/chapterize/internal/analysis"
	"github.com/audiobooksmith/chapterize/internal/pipeline"
	"github.com/audiobooksmith/chapterize/internal/splitter"
)

var (
	processTitles  []string
	processSkipVal bool
	processNoVoice bool
	processVoices  int
)

var processCmd = &cobra.Command{
	Use:   "process <input> [output-dir]",
	Short: "Run a book through the full production pipeline",
	Long: `Process extracts text from the input file, checks it is narratable
content, splits it into chapters, extracts book metadata, and recommends
narrator voices. Chapter files, a manifest, and an HTML report are written
to the output directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}

		input := args[0]
		outDir := ""
		if len(args) == 2 {
			outDir = args[1]
		} else {
			outDir = appHome.RunOutputPath(runName(input))
		}

		cfg := cfgManager.Get()
		req := pipeline.Request{
			InputPath:      input,
			OutputDir:      outDir,
			UserTitles:     processTitles,
			SkipValidation: processSkipVal || cfg.Split.SkipValidation,
			SkipVoices:     processNoVoice,
			VoiceCount:     processVoices,
			Split: splitter.Options{
				MinChapterWords:     cfg.Split.MinChapterWords,
				AcceptThreshold:     cfg.Split.AcceptThreshold,
				SimilarityThreshold: cfg.Split.SimilarityThreshold,
			},
		}
		if processVoices == 0 {
			req.VoiceCount = cfg.ElevenLabs.VoiceCount
		}

		res, err := pipeline.Run(cmd.Context(), svc, req)
		if err != nil {
			var unsuitable *analysis.UnsuitableError
			if errors.As(err, &unsuitable) {
				fmt.Println(unsuitable.UserMessage)
				for _, s := range unsuitable.Suggestions {
					fmt.Printf("  - %s\n", s)
				}
				return err
			}
			return err
		}

		printRunSummary(res)
		return nil
	},
}

func init() {
	processCmd.Flags().StringSliceVar(&processTitles, "titles", nil, "comma-separated chapter titles to use instead of automatic detection")
	processCmd.Flags().BoolVar(&processSkipVal, "skip-validation", false, "skip the content suitability check")
	processCmd.Flags().BoolVar(&processNoVoice, "no-voices", false, "skip narrator voice recommendations")
	processCmd.Flags().IntVar(&processVoices, "voices", 0, "number of narrator recommendations (default from config)")
}

// runName derives an output directory name from the input filename.
func runName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func printRunSummary(res *pipeline.RunResult) {
	fmt.Printf("%s by %s (%s)\n", res.Metadata.Title, res.Metadata.Author, res.Language.Name)
	fmt.Printf("  %d chapters", len(res.Split.Chapters))
	if n := len(res.Split.LowConfidence); n > 0 {
		fmt.Printf(", %d need review", n)
	}
	if n := len(res.Split.Unmatched); n > 0 {
		fmt.Printf(", %d contents entries unmatched", n)
	}
	fmt.Println()
	if res.Split.TocFound {
		fmt.Printf("  Contents accuracy: %.0f%%\n", res.Split.Accuracy()*100)
	} else {
		fmt.Println("  No table of contents found; used heading detection")
	}
	for _, rec := range res.Voices {
		fmt.Printf("  Narrator: %s (match %d) %s\n", rec.Voice.Name, rec.MatchScore, rec.MatchReason)
	}
	fmt.Printf("  Output: %s\n", res.OutputDir)
	fmt.Printf("  Report: %s\n", res.ReportPath)
}
