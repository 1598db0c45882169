package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/suderio/grim-delver/internal/agent"
	"github.com/suderio/grim-delver/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [level.yaml...]",
	Short: "Run many episodes and aggregate the results",
	Long: `Plays the given levels repeatedly, varying the agent seed per episode,
and reports aggregate win/death/turn statistics. Useful when tuning the
cost model: compare escape rates before and after changing a weight.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		episodes, _ := cmd.Flags().GetInt("episodes")
		maxTurns, _ := cmd.Flags().GetInt("max-turns")

		levels, err := sim.LoadLevels(args)
		if err != nil {
			return err
		}

		base := tuningFromConfig()
		bar := progressbar.Default(int64(episodes), "Episodes")

		var escaped, died, stalled, totalTurns, totalSlain int
		for i := 0; i < episodes; i++ {
			dungeon, err := sim.New(levels)
			if err != nil {
				return err
			}
			tune := base
			tune.Seed = base.Seed + int64(i)

			runner := &sim.Runner{
				Dungeon:  dungeon,
				Agent:    agent.New(tune),
				MaxTurns: maxTurns,
			}
			outcome, err := runner.Run()
			if err != nil {
				return fmt.Errorf("episode %d: %w", i+1, err)
			}

			switch {
			case outcome.Escaped:
				escaped++
			case outcome.Died:
				died++
			default:
				stalled++
			}
			totalTurns += outcome.Turns
			totalSlain += outcome.Slain
			bar.Add(1)
		}

		fmt.Printf("\nEpisodes:  %d\n", episodes)
		fmt.Printf("Escaped:   %d (%.1f%%)\n", escaped, pct(escaped, episodes))
		fmt.Printf("Died:      %d (%.1f%%)\n", died, pct(died, episodes))
		fmt.Printf("Stalled:   %d (%.1f%%)\n", stalled, pct(stalled, episodes))
		fmt.Printf("Avg turns: %.1f\n", float64(totalTurns)/float64(episodes))
		fmt.Printf("Avg slain: %.1f\n", float64(totalSlain)/float64(episodes))
		return nil
	},
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Int("episodes", 100, "number of episodes to play")
	simulateCmd.Flags().Int("max-turns", sim.DefaultMaxTurns, "abort an episode after this many turns")
}
