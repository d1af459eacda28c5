package dupscan

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ExcludeManager holds the regex patterns that remove paths from a scan.
// Patterns are matched against the slash-normalised path relative to the
// scan root, so the same pattern file behaves identically on every platform.
type ExcludeManager struct {
	patterns []*regexp.Regexp
}

// NewExcludeManager creates an empty exclude manager
func NewExcludeManager() *ExcludeManager {
	return &ExcludeManager{
		patterns: make([]*regexp.Regexp, 0),
	}
}

// AddPattern compiles and adds a new exclude pattern
func (em *ExcludeManager) AddPattern(patternStr string) error {
	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return fmt.Errorf("invalid exclude pattern: %s - %w", patternStr, err)
	}

	em.patterns = append(em.patterns, pattern)
	return nil
}

// LoadPatternFile loads exclude patterns from a file, one regular expression
// per line. Empty lines and lines starting with # are skipped.
func (em *ExcludeManager) LoadPatternFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open exclude file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pattern, err := regexp.Compile(line)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern at line %d: %s - %w", lineNum, line, err)
		}

		em.patterns = append(em.patterns, pattern)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading exclude file: %w", err)
	}

	return nil
}

// ShouldExclude checks if a path should be excluded based on patterns
func (em *ExcludeManager) ShouldExclude(relativePath string) bool {
	if em == nil || len(em.patterns) == 0 {
		return false
	}

	// Normalise path separators to forward slashes for consistent pattern matching
	normalisedPath := filepath.ToSlash(relativePath)

	for _, pattern := range em.patterns {
		if pattern.MatchString(normalisedPath) {
			return true
		}
	}

	return false
}

// HasPatterns returns true if there are any exclude patterns loaded
func (em *ExcludeManager) HasPatterns() bool {
	return em != nil && len(em.patterns) > 0
}

// Patterns returns the compiled exclude patterns
func (em *ExcludeManager) Patterns() []*regexp.Regexp {
	return em.patterns
}
