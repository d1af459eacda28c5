package dupscan

import (
	"fmt"
	"os"

	"github.com/go-ini/ini"
)

// Config represents the dupscan configuration file, read-only once loaded
type Config struct {
	ini *ini.File
}

// HashConfig represents digest algorithm configuration
type HashConfig struct {
	Default string // Default digest algorithm
}

// OutputConfig represents output format configuration
type OutputConfig struct {
	Format string // Default output format: human, json, fdupes
}

// SymlinkConfig represents symlink handling configuration
type SymlinkConfig struct {
	Follow bool // Follow directory symlinks (default: false)
}

// PerformanceConfig represents performance-related configuration
type PerformanceConfig struct {
	HashWorkers int    // Number of concurrent digest workers (default: 4)
	HashBuffer  string // Digest read size (default: "8192")
}

// LoadConfig loads configuration from the given path. A missing file is not
// an error; built-in defaults apply and the file is not created. Command-line
// flags take precedence over anything loaded here.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		return cfg, nil
	}

	iniFile, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	cfg.ini = iniFile

	return cfg, nil
}

// GetHashConfig returns the digest configuration
func (c *Config) GetHashConfig() *HashConfig {
	hashConfig := &HashConfig{
		Default: DefaultAlgorithm, // fallback default
	}

	if c.ini.HasSection("filehash") {
		section := c.ini.Section("filehash")
		if section.HasKey("default") {
			hashConfig.Default = section.Key("default").String()
		}
	}

	return hashConfig
}

// GetOutputConfig returns the output configuration
func (c *Config) GetOutputConfig() *OutputConfig {
	outputConfig := &OutputConfig{
		Format: FormatHuman, // fallback default
	}

	if c.ini.HasSection("output") {
		section := c.ini.Section("output")
		if section.HasKey("format") {
			outputConfig.Format = section.Key("format").String()
		}
	}

	return outputConfig
}

// GetSymlinkConfig returns the symlink configuration
func (c *Config) GetSymlinkConfig() *SymlinkConfig {
	symlinkConfig := &SymlinkConfig{
		Follow: false, // fallback default
	}

	if c.ini.HasSection("symlink") {
		section := c.ini.Section("symlink")
		if section.HasKey("follow") {
			if follow, err := section.Key("follow").Bool(); err == nil {
				symlinkConfig.Follow = follow
			}
		}
	}

	return symlinkConfig
}

// GetPerformanceConfig returns the performance configuration
func (c *Config) GetPerformanceConfig() *PerformanceConfig {
	performanceConfig := &PerformanceConfig{
		HashWorkers: DefaultHashWorkers,                  // fallback default
		HashBuffer:  fmt.Sprintf("%d", DefaultChunkSize), // fallback default
	}

	if c.ini.HasSection("performance") {
		section := c.ini.Section("performance")
		if section.HasKey("hash_workers") {
			if workers, err := section.Key("hash_workers").Int(); err == nil {
				performanceConfig.HashWorkers = workers
			}
		}
		if section.HasKey("hash_buffer") {
			if bufferSize := section.Key("hash_buffer").String(); bufferSize != "" {
				performanceConfig.HashBuffer = bufferSize
			}
		}
	}

	return performanceConfig
}

// ValidateHashAlgorithm validates that a digest algorithm is supported
func ValidateHashAlgorithm(algorithm string) error {
	_, err := GetHashAlgorithm(algorithm)
	return err
}

// ValidateHashWorkers validates that the digest worker count is reasonable
func ValidateHashWorkers(workers int) error {
	if workers < 1 {
		return fmt.Errorf("hash workers must be at least 1, got: %d", workers)
	}
	if workers > 64 {
		return fmt.Errorf("hash workers should not exceed 64, got: %d", workers)
	}
	return nil
}
