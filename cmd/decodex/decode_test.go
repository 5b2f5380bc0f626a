package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/decodex/internal/config"
	"github.com/standardbeagle/decodex/internal/search"
)

func TestBuildEngineFactoryFindsBase64Plaintext(t *testing.T) {
	cfg := config.Default()
	cfg.Search.DeadlineSeconds = 5

	newEngine, err := buildEngineFactory(cfg)
	require.NoError(t, err)

	engine := newEngine(search.ModeSingleShot)
	results, _, err := engine.Run(context.Background(), "aGVsbG8gd29ybGQ=")
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "hello world", results[0].Text)
}

func TestBuildEngineFactoryRejectsInvalidRegex(t *testing.T) {
	cfg := config.Default()
	cfg.Search.Regex = "("

	_, err := buildEngineFactory(cfg)
	require.Error(t, err)
}

func TestBuildEngineFactoryRespectsDeadline(t *testing.T) {
	cfg := config.Default()
	cfg.Search.DeadlineSeconds = 0

	newEngine, err := buildEngineFactory(cfg)
	require.NoError(t, err)

	engine := newEngine(search.ModeSingleShot)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, _, err = engine.Run(ctx, "this will never be recognized as plaintext by anything")
	require.NoError(t, err)
}
