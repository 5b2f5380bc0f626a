package config

import (
	"fmt"

	"github.com/coregx/coregex"

	internalerrors "github.com/standardbeagle/decodex/internal/errors"
)

// Validator checks a loaded Config against spec §7's configuration error
// class: invalid regex and invalid sensitivity. Wordlist sources are not
// checked here.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

var validSensitivities = map[string]bool{"low": true, "medium": true, "high": true}

// ValidateAndSetDefaults validates cfg and fills in any zero-valued
// tunables with the documented defaults, matching the teacher's
// validator.go pattern of "validate, then apply smart defaults".
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if cfg.Search.Regex != "" {
		if _, err := coregex.Compile(cfg.Search.Regex); err != nil {
			return internalerrors.NewConfigError("regex", cfg.Search.Regex, err)
		}
	}

	for name, sensitivity := range cfg.Search.EnglishSensitivityOverrides {
		if !validSensitivities[sensitivity] {
			return internalerrors.NewConfigError(
				"englishSensitivityOverrides",
				name,
				fmt.Errorf("invalid sensitivity %q: must be low, medium, or high", sensitivity),
			)
		}
	}

	if cfg.Search.DeadlineSeconds <= 0 {
		cfg.Search.DeadlineSeconds = 5
	}
	if cfg.Search.DepthPenalty <= 0 {
		cfg.Search.DepthPenalty = 0.5
	}
	if cfg.Search.DecoderBatchSize <= 0 {
		cfg.Search.DecoderBatchSize = 5
	}
	if cfg.Search.ParallelBatchSize <= 0 {
		cfg.Search.ParallelBatchSize = 10
	}
	if cfg.Search.InitialPruneThreshold <= 0 {
		cfg.Search.InitialPruneThreshold = 10000
	}
	if cfg.Project.Name == "" {
		cfg.Project.Name = "decodex"
	}
	if cfg.Project.Root == "" {
		cfg.Project.Root = "."
	}
	return nil
}
