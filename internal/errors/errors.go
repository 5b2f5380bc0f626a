// Package errors defines the error taxonomy used across decodex: typed
// errors that carry enough context (operation, timestamp, recoverability)
// for the search engine and orchestrator to decide whether to continue,
// retry, or abort.
package errors

import (
	"fmt"
	"time"
)

// ErrorType classifies a decodex error.
type ErrorType string

const (
	// ErrorTypeConfig covers invalid regex, unreadable wordlists, invalid
	// sensitivity values — surfaced at initialization, fatal to startup.
	ErrorTypeConfig ErrorType = "config"

	// ErrorTypeTransformation covers a transformation returning no
	// candidates or erroring outright. Recorded as a statistical failure;
	// the engine continues.
	ErrorTypeTransformation ErrorType = "transformation"

	// ErrorTypeRecognizer covers a recognizer resource going unavailable
	// (e.g. the English classifier's model). The orchestrator logs and
	// falls back to the next-best recognizer.
	ErrorTypeRecognizer ErrorType = "recognizer"

	// ErrorTypeCache covers persistent-cache I/O failures; a cache miss
	// or write failure degrades to a full search, never silently wrong.
	ErrorTypeCache ErrorType = "cache"

	// ErrorTypeFatal covers invariant violations the engine must abort on
	// rather than risk emitting an incorrect plaintext.
	ErrorTypeFatal ErrorType = "fatal"
)

// ConfigError reports a configuration-time failure. Construction of the
// engine must stop on this error; it is never recoverable mid-search.
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error for the given field/value pair.
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s config error for field %s (value %q): %v", ErrorTypeConfig, e.Field, e.Value, e.Underlying)
}

func (e *ConfigError) Unwrap() error { return e.Underlying }

// TransformationError reports a transformation that produced no candidates
// or failed outright. Always recoverable — the engine records it in the
// transformation's success-rate statistics and keeps searching.
type TransformationError struct {
	Name       string
	InputText  string
	Underlying error
	Timestamp  time.Time
}

// NewTransformationError creates a new transformation error.
func NewTransformationError(name, inputText string, err error) *TransformationError {
	return &TransformationError{
		Name:       name,
		InputText:  inputText,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *TransformationError) Error() string {
	return fmt.Sprintf("%s transformation %q failed: %v", ErrorTypeTransformation, e.Name, e.Underlying)
}

func (e *TransformationError) Unwrap() error { return e.Underlying }

// IsRecoverable is always true for a transformation failure: it costs the
// engine one candidate, not the search.
func (e *TransformationError) IsRecoverable() bool { return true }

// RecognizerError reports a recognizer resource becoming unavailable (e.g.
// the English classifier's n-gram model failing to load). Recoverable: the
// orchestrator falls back to the next recognizer in the chain.
type RecognizerError struct {
	RecognizerName string
	Underlying     error
	Timestamp      time.Time
}

// NewRecognizerError creates a new recognizer error.
func NewRecognizerError(recognizerName string, err error) *RecognizerError {
	return &RecognizerError{
		RecognizerName: recognizerName,
		Underlying:     err,
		Timestamp:      time.Now(),
	}
}

func (e *RecognizerError) Error() string {
	return fmt.Sprintf("%s recognizer %q unavailable: %v", ErrorTypeRecognizer, e.RecognizerName, e.Underlying)
}

func (e *RecognizerError) Unwrap() error { return e.Underlying }

func (e *RecognizerError) IsRecoverable() bool { return true }

// CacheError reports a persistent-cache I/O failure. Recoverable: the
// caller degrades to a full search rather than trusting a partial read.
type CacheError struct {
	Operation  string
	Key        string
	Underlying error
	Timestamp  time.Time
}

// NewCacheError creates a new cache error.
func NewCacheError(op, key string, err error) *CacheError {
	return &CacheError{
		Operation:  op,
		Key:        key,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("%s cache %s failed for key %q: %v", ErrorTypeCache, e.Operation, e.Key, e.Underlying)
}

func (e *CacheError) Unwrap() error { return e.Underlying }

func (e *CacheError) IsRecoverable() bool { return true }

// FatalError reports an invariant violation (e.g. a corrupted chain) the
// engine must abort on rather than risk an incorrect plaintext surfacing.
type FatalError struct {
	Invariant  string
	Underlying error
	Timestamp  time.Time
}

// NewFatalError creates a new fatal error.
func NewFatalError(invariant string, err error) *FatalError {
	return &FatalError{
		Invariant:  invariant,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s invariant %q violated: %v", ErrorTypeFatal, e.Invariant, e.Underlying)
}

func (e *FatalError) Unwrap() error { return e.Underlying }

func (e *FatalError) IsRecoverable() bool { return false }

// MultiError aggregates multiple errors encountered in a single batch
// (e.g. several transformations failing within one expansion round).
type MultiError struct {
	Errors []error
}

// NewMultiError creates a MultiError, dropping any nil entries.
func NewMultiError(errs []error) *MultiError {
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

func (e *MultiError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no errors"
	case 1:
		return e.Errors[0].Error()
	default:
		return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
	}
}

func (e *MultiError) Unwrap() []error { return e.Errors }
