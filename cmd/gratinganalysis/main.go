package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"gratinginterferometry/internal/logger"
	"gratinginterferometry/pkg/config"
	"gratinginterferometry/pkg/fourier"
	"gratinginterferometry/pkg/grating"
	"gratinginterferometry/pkg/harmonic"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "gratinganalysis.yaml", "YAML configuration file (defaults are used if missing)")
	writeConfig := flag.String("write-config", "", "Write the default configuration to this path and exit")
	periodV := flag.Int("period-v", 0, "Vertical harmonic period in spectrum pixels (overrides config when non-zero)")
	periodH := flag.Int("period-h", 0, "Horizontal harmonic period in spectrum pixels (overrides config when non-zero)")
	noReference := flag.Bool("no-reference", false, "Analyse the sample against an ideal reference")
	verbose := flag.Bool("verbose", false, "Emit informational messages")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration written to %s\n", *writeConfig)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	level := logger.ParseLevel(cfg.Output.LogLevel)
	log := logger.New(os.Stderr, level)
	if cfg.Output.Console {
		log = logger.NewConsole(level)
	}

	fringes := cfg.Fringes()
	period := cfg.Period()
	if period == (harmonic.Period{}) {
		period = fringes.HarmonicPeriod()
	}
	if *periodV != 0 {
		period.Vertical = *periodV
	}
	if *periodH != 0 {
		period.Horizontal = *periodH
	}

	fmt.Println("================================")
	fmt.Println("SINGLE GRATING INTERFEROMETRY ANALYSIS")
	fmt.Println("================================")
	fmt.Printf("Synthetic image: %dx%d, fringe periods %.2f x %.2f px\n",
		fringes.Rows, fringes.Cols, fringes.PeriodY, fringes.PeriodX)
	fmt.Printf("Harmonic period: %d (vertical) x %d (horizontal)\n", period.Vertical, period.Horizontal)

	analyzer := grating.NewAnalyzer(cfg.Params(), log)
	sample := fringes.Image()

	startTime := time.Now()

	vis10, vis01 := analyzer.Visibility(sample, period)
	fmt.Printf("\nVisibility 10: %.4f\n", vis10)
	fmt.Printf("Visibility 01: %.4f\n", vis01)

	grid := harmonic.HarmonicGrid(fringes.Rows, fringes.Cols, period)
	fmt.Printf("Harmonics in spectrum: %d\n", len(grid.Points))

	profiles := harmonic.PeakProfiles(fourier.Spectrum(sample), period, 4, cfg.Analysis.SearchRegion)
	fmt.Printf("Peak profiles: %d offsets, 01 max %.2f, 10 max %.2f\n",
		len(profiles.Offsets), profileMax(profiles.Vertical01), profileMax(profiles.Horizontal10))

	var ref *mat.Dense
	if !*noReference {
		refFringes := fringes
		refFringes.PhaseX, refFringes.PhaseY = 0, 0
		ref = refFringes.Image()
	}

	res, err := analyzer.Analyze2D(sample, ref, period)
	if err != nil {
		log.Error().Str("component", "main").Err(err).Msg("analysis failed")
		os.Exit(1)
	}
	processingTime := time.Since(startTime)

	fmt.Println("\nResult maps (mean / std / min / max):")
	names := []string{"int00", "int01", "int10", "darkField01", "darkField10", "arg01", "arg10"}
	for i, m := range res.Maps() {
		printSummary(names[i], m)
	}

	fmt.Printf("\nAnalysis completed in %.3f seconds\n", processingTime.Seconds())
	log.Debug().Str("component", "main").Dur("elapsed", processingTime).Msg("done")
}

// printSummary prints simple statistics of a result map
func printSummary(name string, m *mat.Dense) {
	mean, std := stat.MeanStdDev(m.RawMatrix().Data, nil)
	fmt.Printf("  %-12s %12.5f %12.5f %12.5f %12.5f\n", name, mean, std, mat.Min(m), mat.Max(m))
}

// profileMax returns the largest magnitude over all profiles, 0 if they are empty
func profileMax(profiles [][]float64) float64 {
	best := 0.0
	for _, p := range profiles {
		if len(p) > 0 {
			best = max(best, floats.Max(p))
		}
	}
	return best
}
