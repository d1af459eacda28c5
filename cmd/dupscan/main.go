package main

import (
	"fmt"
	"os"
	"path/filepath"

	dupscan "github.com/mattkeenan/dupscan/pkg"
	"gopkg.in/alecthomas/kingpin.v2"
)

const versionString = "0.2.0"

func defaultConfigPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".dupscan.ini"
	}
	return filepath.Join(configDir, "dupscan", "config.ini")
}

func main() {
	app := kingpin.New("dupscan", "Find duplicate files by content.")
	app.Version(versionString)
	app.HelpFlag.Short('h')

	var (
		root           = app.Arg("root", "directory to scan").Default(".").String()
		algorithm      = app.Flag("algorithm", fmt.Sprintf("digest algorithm (%v)", dupscan.SupportedHashAlgorithms())).Short('a').String()
		followSymlinks = app.Flag("follow-symlinks", "follow directory symlinks during the walk").Bool()
		workers        = app.Flag("workers", "number of concurrent digest workers").Short('w').Int()
		format         = app.Flag("format", "output format (human|json|fdupes)").Short('f').String()
		excludes       = app.Flag("exclude", "exclude paths matching this regex (repeatable)").Short('x').Strings()
		excludeFrom    = app.Flag("exclude-from", "load exclude patterns from a file, one per line").String()
		chunkSize      = app.Flag("chunk-size", "digest read size (accepts suffixes like 64K, 1M)").String()
		verify         = app.Flag("verify", "byte-compare candidate groups before reporting").Bool()
		configPath     = app.Flag("config", "config file path").Default(defaultConfigPath()).String()
		verbose        = app.Flag("verbose", "enable verbose output (repeatable)").Short('v').Counter()
		debugFlags     = app.Flag("debug", "comma-separated debug flags (walk,hashing)").String()
	)

	kingpin.MustParse(app.Parse(os.Args[1:]))

	dupscan.SetVerboseLevel(*verbose)
	if *debugFlags != "" {
		dupscan.SetDebugFlags(*debugFlags)
	}

	cfg, err := dupscan.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupscan: %v\n", err)
		os.Exit(1)
	}

	flags := cliFlags{
		Algorithm:      *algorithm,
		FollowSymlinks: *followSymlinks,
		Workers:        *workers,
		Format:         *format,
		ChunkSize:      *chunkSize,
		Verify:         *verify,
		Excludes:       *excludes,
		ExcludeFrom:    *excludeFrom,
	}

	settings, err := resolveSettings(flags, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupscan: %v\n", err)
		os.Exit(1)
	}

	excludeManager, err := buildExcludes(flags.Excludes, flags.ExcludeFrom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupscan: %v\n", err)
		os.Exit(1)
	}

	shutdownChan := setupSignalHandler()

	result, err := dupscan.FindDuplicates(*root, dupscan.ScanOptions{
		Algorithm:      settings.Algorithm,
		FollowSymlinks: settings.FollowSymlinks,
		Workers:        settings.Workers,
		ChunkSize:      settings.ChunkSize,
		Verify:         settings.Verify,
		Excludes:       excludeManager,
	}, shutdownChan)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupscan: %v\n", err)
		os.Exit(1)
	}

	emitter, err := dupscan.NewReportEmitter(os.Stdout, settings.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dupscan: %v\n", err)
		os.Exit(1)
	}

	if err := emitter.Emit(result); err != nil {
		fmt.Fprintf(os.Stderr, "dupscan: %v\n", err)
		os.Exit(1)
	}
}
