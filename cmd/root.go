/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/grim-delver/internal/agent"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "grim-delver",
	Short: "An autonomous agent that delves turn-based dungeons",
	Long: `Grim Delver is the decision engine of an autonomous dungeon crawler.
Each turn it receives a snapshot of the visible world and answers with a
single action: step, strike, or stand still. The engine combines a
four-state behavioral controller with danger-weighted grid search.

Every cost and threshold the engine uses can be tuned through the
config file under the "tuning" section.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.grim-delver.yaml)")
	rootCmd.PersistentFlags().Int64("seed", 0, "override the idle-breaker rand seed")
	viper.BindPFlag("tuning.seed", rootCmd.PersistentFlags().Lookup("seed"))
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".grim-delver")
	}

	viper.SetEnvPrefix("GRIMDELVER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// tuningFromConfig overlays any configured tuning keys onto the
// documented defaults.
func tuningFromConfig() agent.Tuning {
	t := agent.DefaultTuning()

	setInt := func(key string, dst *int) {
		if viper.IsSet(key) {
			*dst = viper.GetInt(key)
		}
	}
	setInt("tuning.hard_block", &t.Search.HardBlock)
	setInt("tuning.base_cost", &t.Search.BaseCost)
	setInt("tuning.ring_penalty_1", &t.Search.RingPenalty[0])
	setInt("tuning.ring_penalty_2", &t.Search.RingPenalty[1])
	setInt("tuning.ring_penalty_3", &t.Search.RingPenalty[2])
	setInt("tuning.threat_radius", &t.Search.ThreatRadius)
	setInt("tuning.threat_exponent", &t.Search.ThreatExponent)
	setInt("tuning.diagonal_factor", &t.Search.DiagonalFactor)
	setInt("tuning.panic_threshold", &t.PanicThreshold)
	setInt("tuning.final_panic_threshold", &t.FinalPanicThreshold)
	setInt("tuning.idle_limit", &t.IdleLimit)

	if seed := viper.GetInt64("tuning.seed"); seed != 0 {
		t.Seed = seed
	}
	return t
}
