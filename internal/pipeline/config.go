package pipeline

import (
	"os"

	"gopkg.in/yaml.v3"

	"cardiostack/internal/ensemble"
)

type Config struct {
	SampleFraction float64       `yaml:"sample_fraction"`
	TestFraction   float64       `yaml:"test_fraction"`
	Seed           int64         `yaml:"seed"`
	Folds          int           `yaml:"folds"`
	Threshold      float64       `yaml:"threshold"`
	LabelColumn    string        `yaml:"label_column"`
	ROCPath        string        `yaml:"roc_path"`
	Grid           ensemble.Grid `yaml:"grid"`
}

func DefaultConfig() Config {
	return Config{
		SampleFraction: 0.1,
		TestFraction:   0.2,
		Seed:           42,
		Folds:          5,
		Threshold:      0.5,
		LabelColumn:    "num",
		ROCPath:        "roc_curve.png",
		Grid:           ensemble.DefaultGrid(),
	}
}

// LoadConfig overlays the yaml file, when present, on the defaults. A
// missing config file is not an error; the defaults stand.
func LoadConfig(configFile string) Config {
	config := DefaultConfig()

	raw, err := os.ReadFile(configFile)
	if err == nil {
		yaml.Unmarshal(raw, &config)
	}

	return config
}
