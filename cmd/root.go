package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/solarsim/solarsim/sim"
	"github.com/solarsim/solarsim/sim/report"
)

var (
	scenarioPath string // Path to the scenario YAML file
	outputPath   string // Where to write the result CSV ("" = stdout summary only)
	logLevel     string // Log verbosity level
	startYear    int    // Overrides the scenario's start_year when > 0
	endYear      int    // Overrides the scenario's end_year when > 0
	workers      int    // Overrides the scenario's worker count when > 0
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "solarsim",
	Short: "Year-by-year techno-economic simulator for solar and storage deployment",
}

// runCmd executes a simulation from a scenario file
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation scenario",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		sc, err := sim.LoadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Failed to load scenario: %v", err)
		}
		if startYear > 0 {
			sc.StartYear = startYear
		}
		if endYear > 0 {
			sc.EndYear = endYear
		}
		if workers > 0 {
			sc.Workers = workers
		}

		engine, err := sim.NewEngine(sc)
		if err != nil {
			logrus.Fatalf("Failed to configure engine: %v", err)
		}

		// Ctrl-C stops at the next year boundary and keeps the partial run.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		startTime := time.Now()
		records, err := engine.Run(ctx)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulated %d region-years in %v", len(records), time.Since(startTime))

		if outputPath != "" {
			f, err := os.Create(outputPath)
			if err != nil {
				logrus.Fatalf("Failed to create output file: %v", err)
			}
			defer f.Close()
			if err := report.WriteCSV(f, engine.TechnologyIDs(), records); err != nil {
				logrus.Fatalf("Failed to write results: %v", err)
			}
			logrus.Infof("Results written to %s", outputPath)
		}

		printSummary(report.Summarize(records))
	},
}

func printSummary(s *report.RunSummary) {
	fmt.Printf("records:               %d (%d years x %d regions)\n", s.Records, s.Years, s.Regions)
	fmt.Printf("new capacity:          %.0f kW\n", s.TotalNewKW)
	fmt.Printf("capital deployed:      $%.0f\n", s.TotalCapitalSpentUSD)
	for tech, kw := range s.FinalCumulativeKW {
		fmt.Printf("final capacity %-12s %.0f kW\n", tech+":", kw)
	}
	fmt.Printf("mean price:            $%.2f/MWh (stdev %.2f)\n", s.MeanPriceUSDMWh, s.StdevPriceUSDMWh)
	fmt.Printf("mean attractiveness:   %.4f\n", s.MeanAttractiveness)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "scenario.yaml", "Path to the scenario YAML file")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write results as CSV to this path")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().IntVar(&startYear, "start-year", 0, "Override the scenario start year")
	runCmd.Flags().IntVar(&endYear, "end-year", 0, "Override the scenario end year")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Override the scenario worker count for region evaluation")

	rootCmd.AddCommand(runCmd)
}
