// Package main provides a CLI for running panel simulations without the
// web server. Results go to stdout as a metrics table or to CSV/JSON files,
// optionally encrypted with a passphrase.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	"panelsim/internal/logging"
	"panelsim/internal/models"
	"panelsim/internal/services/export"
	"panelsim/internal/services/simulator"
)

func main() {
	populationSize := flag.Int("population", 1000, "Number of patients to generate")
	complexFraction := flag.Float64("complex", 0.40, "Fraction of complex patients")
	capacity := flag.Int("capacity", 400, "Panel capacity")
	years := flag.Int("years", 10, "Number of years to simulate")
	seed := flag.Int64("seed", 42, "Random seed")
	naive := flag.Bool("naive", false, "Enroll a random initial panel in year 1")
	optimize := flag.Bool("optimize", false, "Hill-climb policy parameters before the final run")
	iterations := flag.Int("iterations", 50, "Optimizer iterations")
	output := flag.String("o", "", "Write yearly metrics CSV to this file (default: table on stdout)")
	jsonOut := flag.String("json", "", "Write the full result JSON to this file")
	encrypt := flag.Bool("encrypt", false, "Encrypt file output with a passphrase (prompted)")
	debug := flag.Bool("debug", false, "Verbose logging")
	flag.Parse()

	logging.Init(*debug)

	settings := models.DefaultSimSettings()
	settings.PopulationSize = *populationSize
	settings.ComplexFraction = *complexFraction
	settings.PanelCapacity = *capacity
	settings.NumYears = *years
	settings.Seed = *seed
	settings.NaiveInitialPanel = *naive
	settings.OptimizerIterations = *iterations

	if err := settings.Validate(); err != nil {
		logging.Log.WithError(err).Fatal("invalid settings")
	}

	result, err := runOnce(settings, *optimize)
	if err != nil {
		logging.Log.WithError(err).Fatal("simulation failed")
	}

	var passphrase string
	if *encrypt {
		if *output == "" && *jsonOut == "" {
			logging.Log.Fatal("-encrypt requires -o or -json")
		}
		passphrase, err = readPassphrase()
		if err != nil {
			logging.Log.WithError(err).Fatal("could not read passphrase")
		}
	}

	if *output != "" {
		if err := writeCSV(*output, result.Years, passphrase); err != nil {
			logging.Log.WithError(err).Fatal("could not write CSV")
		}
		fmt.Printf("Wrote %s\n", *output)
	}
	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, result, passphrase); err != nil {
			logging.Log.WithError(err).Fatal("could not write JSON")
		}
		fmt.Printf("Wrote %s\n", *jsonOut)
	}
	if *output == "" && *jsonOut == "" {
		printTable(result)
	}
}

func runOnce(settings models.SimSettings, optimize bool) (*models.SimulationResult, error) {
	if !optimize {
		return simulator.RunSimulation(settings)
	}

	opt, err := simulator.RunOptimization(settings)
	if err != nil {
		return nil, err
	}
	logging.WithFields(logrus.Fields{
		"best_reward":    opt.BestReward,
		"min_engagement": opt.BestPolicy.MinEngagement,
		"max_conditions": opt.BestPolicy.MaxNumConditions,
		"min_literacy":   opt.BestPolicy.MinDigitalLiteracy,
		"drop_threshold": opt.BestPolicy.DropThresholdDelta,
	}).Info("optimization complete")
	return opt.Final, nil
}

func readPassphrase() (string, error) {
	fmt.Fprint(os.Stderr, "Passphrase: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	if len(pass) == 0 {
		return "", fmt.Errorf("empty passphrase")
	}
	return string(pass), nil
}

func writeCSV(path string, years []models.YearMetrics, passphrase string) error {
	var buf strings.Builder
	if err := export.WriteMetricsCSV(&buf, years); err != nil {
		return err
	}
	return writeFile(path, []byte(buf.String()), passphrase)
}

func writeJSON(path string, result *models.SimulationResult, passphrase string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data, passphrase)
}

func writeFile(path string, data []byte, passphrase string) error {
	if passphrase != "" {
		encrypted, err := export.Encrypt(data, passphrase)
		if err != nil {
			return err
		}
		data = encrypted
		if !strings.HasSuffix(path, ".age") {
			path += ".age"
		}
	}
	return os.WriteFile(path, data, 0600)
}

func printTable(result *models.SimulationResult) {
	fmt.Printf("Run %s\n\n", result.RunID)
	fmt.Printf("%4s %9s %8s %7s %12s %12s %12s %12s\n",
		"Year", "Enrolled", "Dropped", "Never", "Income", "Bonus", "Cost", "Reward")
	for _, y := range result.Years {
		fmt.Printf("%4d %9d %8d %7d %12.2f %12.2f %12.2f %12.2f\n",
			y.Year, y.EnrolledCount, y.DroppedCount, y.NeverEnrolledCount,
			y.Income, y.Bonus, y.Cost, y.Reward)
	}
	fmt.Printf("\nTotal reward: %.2f\n", result.TotalReward)
}
