// Package config loads and validates the decodex configuration contract
// (spec §6): deadline, mode, recognizer wiring, and search tunables.
package config

// Config is the engine's full configuration contract (spec.md §6's
// "configuration object with, at minimum" list), plus the ambient project
// fields the teacher always carries alongside domain settings.
type Config struct {
	Project Project
	Search  Search
}

// Project holds ambient, non-domain settings every teacher-style config
// carries regardless of what the tool does.
type Project struct {
	Root string
	Name string
}

// Search is the spec §6 Configuration contract, field-for-field.
type Search struct {
	DeadlineSeconds         int
	InteractiveConfirmation bool
	CollectAll              bool
	Regex                   string
	WordlistSource          []string
	EnglishSensitivityOverrides map[string]string
	DepthPenalty            float64
	DecoderBatchSize        int
	ParallelBatchSize       int
	InitialPruneThreshold   int
}

// Default returns the configuration contract's documented defaults.
func Default() *Config {
	return &Config{
		Project: Project{Root: ".", Name: "decodex"},
		Search: Search{
			DeadlineSeconds:             5,
			InteractiveConfirmation:     false,
			CollectAll:                  false,
			DepthPenalty:                0.5,
			DecoderBatchSize:            5,
			ParallelBatchSize:           10,
			InitialPruneThreshold:       10000,
			EnglishSensitivityOverrides: map[string]string{},
		},
	}
}
