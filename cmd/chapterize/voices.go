package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List available narrator voices",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := voiceProvider()
		if provider == nil {
			return fmt.Errorf("no ElevenLabs API key configured (set elevenlabs.api_key or ELEVENLABS_API_KEY)")
		}

		voices, err := provider.ListVoices(cmd.Context())
		if err != nil {
			return err
		}

		for _, v := range voices {
			fmt.Printf("%-24s %s\n", v.Name, v.VoiceID)
			if v.Description != "" {
				fmt.Printf("  %s\n", v.Description)
			}
		}
		fmt.Printf("%d voices\n", len(voices))
		return nil
	},
}
