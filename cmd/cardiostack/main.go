package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"cardiostack/internal/pipeline"
)

func main() {
	uciFile := flag.String("uci", "", "Path to the UCI heart disease CSV")
	indiaFile := flag.String("india", "", "Path to the Indian cardiovascular CSV")
	configFile := flag.String("config", "config/config.yaml", "Path to configuration file")
	sampleFrac := flag.Float64("sample", 0.1, "Fraction of the combined dataset to sample")
	testSize := flag.Float64("test-size", 0.2, "Held-out test fraction (0.0-1.0)")
	seed := flag.Int64("seed", 42, "Random seed for sampling, splitting and folds")
	folds := flag.Int("folds", 5, "Number of cross-validation folds")
	threshold := flag.Float64("threshold", 0.5, "Decision threshold on the positive-class probability")
	rocFile := flag.String("roc", "", "Output path for the ROC curve PNG (empty to skip)")

	flag.Parse()

	if *uciFile == "" || *indiaFile == "" {
		fmt.Println("Usage:")
		fmt.Println("  go run cmd/cardiostack/main.go -uci data/heart.csv -india data/cardio_india.csv")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	config := pipeline.LoadConfig(*configFile)

	// Flags given explicitly on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "sample":
			config.SampleFraction = *sampleFrac
		case "test-size":
			config.TestFraction = *testSize
		case "seed":
			config.Seed = *seed
		case "folds":
			config.Folds = *folds
		case "threshold":
			config.Threshold = *threshold
		case "roc":
			config.ROCPath = *rocFile
		}
	})

	runner := pipeline.NewRunner(config)
	report, err := runner.Run(*uciFile, *indiaFile)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	runner.PrintReport(report)
}
