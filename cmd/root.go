package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/asciima/battlecode-server-2017/engine"
	"github.com/asciima/battlecode-server-2017/engine/bots"
)

var (
	// CLI flags for the match setup
	mapNames   []string // Maps to play, one match per map
	teamABot   string   // Bot program fielded by team A
	teamBBot   string   // Bot program fielded by team B
	configFile string   // Engine config YAML, flag overrides applied on top
	mapPath    string   // Directory searched for <name>.yaml maps
	seed       int64    // Series seed; per-match seeds derive from it
	rounds     int32    // Round cap fallback when the map sets none
	budget     int64    // Per-round operation budget
	savePath   string   // Write a JSON replay here
	parallel   int      // Concurrent matches; >1 disables team memory carry
	logLevel   string   // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "battlecode-server",
	Short: "Deterministic two-team robot contest engine",
}

// runCmd plays the configured matches using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a match or a series of matches",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := engine.DefaultConfig()
		if configFile != "" {
			cfg, err = engine.LoadConfig(configFile)
			if err != nil {
				logrus.Fatalf("Unable to load config: %v", err)
			}
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("rounds") {
			cfg.Rounds = rounds
		}
		if cmd.Flags().Changed("budget") {
			cfg.Budget = budget
		}
		if cmd.Flags().Changed("map-path") {
			cfg.MapPath = mapPath
		}

		if _, ok := bots.ValidBots[teamABot]; !ok {
			logrus.Fatalf("Unknown bot for team A: %q (valid: %v)", teamABot, bots.Names())
		}
		if _, ok := bots.ValidBots[teamBBot]; !ok {
			logrus.Fatalf("Unknown bot for team B: %q (valid: %v)", teamBBot, bots.Names())
		}

		names := mapNames
		if len(names) == 0 {
			names = []string{""}
		}
		gms := make([]*engine.GameMap, len(names))
		for i, name := range names {
			gm, err := engine.FindMap(name, cfg.MapPath)
			if err != nil {
				logrus.Fatalf("Unable to load map %q: %v", name, err)
			}
			gms[i] = gm
		}

		var outcomes []matchOutcome
		if parallel > 1 && len(gms) > 1 {
			outcomes, err = runParallel(cfg, gms)
		} else {
			outcomes, err = runSeries(cfg, gms)
		}
		if err != nil {
			logrus.Fatalf("Match failed: %v", err)
		}

		printOutcomes(outcomes)
		if savePath != "" {
			if err := writeReplay(savePath, outcomes); err != nil {
				logrus.Fatalf("Unable to write replay: %v", err)
			}
			logrus.Infof("replay written to %s", savePath)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringSliceVar(&mapNames, "map", nil, "Map name, repeatable; a series when given more than once (default: built-in crossroads)")
	runCmd.Flags().StringVar(&teamABot, "team-a", "rusher", "Bot program for team A")
	runCmd.Flags().StringVar(&teamBBot, "team-b", "rusher", "Bot program for team B")
	runCmd.Flags().StringVar(&configFile, "config", "", "Engine config YAML file")
	runCmd.Flags().StringVar(&mapPath, "map-path", "", "Directory searched for <name>.yaml maps")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Series seed for deterministic replay")
	runCmd.Flags().Int32Var(&rounds, "rounds", 2000, "Round cap when the map sets none")
	runCmd.Flags().Int64Var(&budget, "budget", 10000, "Per-round operation budget per robot")
	runCmd.Flags().StringVar(&savePath, "save", "", "Write a JSON replay (header, round deltas, footer per match)")
	runCmd.Flags().IntVar(&parallel, "parallel", 1, "Matches run concurrently; >1 disables team memory carry")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
