package main

import (
	"fmt"

	dupscan "github.com/mattkeenan/dupscan/pkg"
)

// cliFlags holds the raw command-line flag values. Zero values mean the flag
// was not given, so the config file (and then the built-in default) applies.
type cliFlags struct {
	Algorithm      string
	FollowSymlinks bool
	Workers        int
	Format         string
	ChunkSize      string
	Verify         bool
	Excludes       []string
	ExcludeFrom    string
}

// scanSettings is the fully resolved scan configuration
type scanSettings struct {
	Algorithm      string
	FollowSymlinks bool
	Workers        int
	Format         string
	ChunkSize      int
	Verify         bool
}

// resolveSettings merges flag values with the config file. Flags take
// precedence over the config file, which takes precedence over built-in
// defaults.
func resolveSettings(flags cliFlags, cfg *dupscan.Config) (scanSettings, error) {
	settings := scanSettings{
		Verify: flags.Verify,
	}

	settings.Algorithm = flags.Algorithm
	if settings.Algorithm == "" {
		settings.Algorithm = cfg.GetHashConfig().Default
	}
	if err := dupscan.ValidateHashAlgorithm(settings.Algorithm); err != nil {
		return scanSettings{}, err
	}

	perfConfig := cfg.GetPerformanceConfig()

	settings.Workers = flags.Workers
	if settings.Workers == 0 {
		settings.Workers = perfConfig.HashWorkers
	}
	if err := dupscan.ValidateHashWorkers(settings.Workers); err != nil {
		return scanSettings{}, err
	}

	chunkSpec := flags.ChunkSize
	if chunkSpec == "" {
		chunkSpec = perfConfig.HashBuffer
	}
	chunkSize, err := dupscan.ParseHumanSize(chunkSpec)
	if err != nil {
		return scanSettings{}, fmt.Errorf("invalid chunk size: %w", err)
	}
	settings.ChunkSize = chunkSize

	settings.Format = flags.Format
	if settings.Format == "" {
		settings.Format = cfg.GetOutputConfig().Format
	}
	if err := dupscan.ValidateOutputFormat(settings.Format); err != nil {
		return scanSettings{}, err
	}

	// --follow-symlinks can only enable following; the config file supplies
	// the setting when the flag is absent
	settings.FollowSymlinks = flags.FollowSymlinks || cfg.GetSymlinkConfig().Follow

	return settings, nil
}

// buildExcludes compiles the exclude patterns given on the command line and
// loads any pattern file
func buildExcludes(patterns []string, patternFile string) (*dupscan.ExcludeManager, error) {
	excludes := dupscan.NewExcludeManager()

	for _, pattern := range patterns {
		if err := excludes.AddPattern(pattern); err != nil {
			return nil, err
		}
	}

	if patternFile != "" {
		if err := excludes.LoadPatternFile(patternFile); err != nil {
			return nil, err
		}
	}

	return excludes, nil
}
