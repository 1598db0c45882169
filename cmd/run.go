/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suderio/grim-delver/internal/agent"
	"github.com/suderio/grim-delver/internal/sim"
)

var runCmd = &cobra.Command{
	Use:   "run [level.yaml...]",
	Short: "Play one headless episode and print the outcome",
	Long: `Plays the given levels in order with a fresh agent and prints the
outcome summary. Pass --transcript to append every resolved event to a
JSONL file for later inspection.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transcript, _ := cmd.Flags().GetString("transcript")
		maxTurns, _ := cmd.Flags().GetInt("max-turns")

		levels, err := sim.LoadLevels(args)
		if err != nil {
			return err
		}
		dungeon, err := sim.New(levels)
		if err != nil {
			return err
		}

		runner := &sim.Runner{
			Dungeon:  dungeon,
			Agent:    agent.New(tuningFromConfig()),
			MaxTurns: maxTurns,
		}
		if transcript != "" {
			store, err := sim.NewTranscriptStore(transcript)
			if err != nil {
				return err
			}
			defer store.Close()
			runner.Store = store
		}

		outcome, err := runner.Run()
		if err != nil {
			return err
		}
		fmt.Println(outcome)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("transcript", "", "append the event transcript to this JSONL file")
	runCmd.Flags().Int("max-turns", sim.DefaultMaxTurns, "abort the episode after this many turns")
}
