package dupscan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExcludeManagerAddPattern(t *testing.T) {
	excludes := NewExcludeManager()

	if err := excludes.AddPattern(`\.git/`); err != nil {
		t.Fatalf("AddPattern failed for valid pattern: %v", err)
	}
	if err := excludes.AddPattern(`[invalid`); err == nil {
		t.Error("Expected error for invalid regex")
	}
	if len(excludes.Patterns()) != 1 {
		t.Errorf("Expected 1 compiled pattern, got %d", len(excludes.Patterns()))
	}
}

func TestExcludeManagerShouldExclude(t *testing.T) {
	excludes := NewExcludeManager()
	if err := excludes.AddPattern(`\.tmp$`); err != nil {
		t.Fatalf("AddPattern failed: %v", err)
	}
	if err := excludes.AddPattern(`^node_modules/`); err != nil {
		t.Fatalf("AddPattern failed: %v", err)
	}

	tests := []struct {
		path     string
		excluded bool
	}{
		{"scratch.tmp", true},
		{"deep/nested/scratch.tmp", true},
		{"node_modules/pkg/index.js", true},
		{"src/node_modules.go", false},
		{"keep.txt", false},
	}

	for _, tt := range tests {
		if got := excludes.ShouldExclude(tt.path); got != tt.excluded {
			t.Errorf("ShouldExclude(%s) = %v, expected %v", tt.path, got, tt.excluded)
		}
	}
}

func TestExcludeManagerNilSafe(t *testing.T) {
	var excludes *ExcludeManager
	if excludes.ShouldExclude("anything") {
		t.Error("Nil manager should exclude nothing")
	}
	if excludes.HasPatterns() {
		t.Error("Nil manager should report no patterns")
	}
}

func TestExcludeManagerEmpty(t *testing.T) {
	excludes := NewExcludeManager()
	if excludes.ShouldExclude("any/path.txt") {
		t.Error("Empty manager should exclude nothing")
	}
	if excludes.HasPatterns() {
		t.Error("Empty manager should report no patterns")
	}
}

func TestExcludeManagerLoadPatternFile(t *testing.T) {
	tempDir := t.TempDir()
	patternFile := filepath.Join(tempDir, "excludes")
	content := `# build artefacts
\.o$

^dist/
`
	if err := os.WriteFile(patternFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write pattern file: %v", err)
	}

	excludes := NewExcludeManager()
	if err := excludes.LoadPatternFile(patternFile); err != nil {
		t.Fatalf("LoadPatternFile failed: %v", err)
	}

	// Comment and blank lines are skipped
	if len(excludes.Patterns()) != 2 {
		t.Errorf("Expected 2 patterns, got %d", len(excludes.Patterns()))
	}
	if !excludes.ShouldExclude("main.o") {
		t.Error("Expected main.o to be excluded")
	}
	if !excludes.ShouldExclude("dist/bundle.js") {
		t.Error("Expected dist/bundle.js to be excluded")
	}
	if excludes.ShouldExclude("main.go") {
		t.Error("Did not expect main.go to be excluded")
	}
}

func TestExcludeManagerLoadPatternFileErrors(t *testing.T) {
	excludes := NewExcludeManager()
	if err := excludes.LoadPatternFile("/nonexistent/excludes"); err == nil {
		t.Error("Expected error for missing pattern file")
	}

	tempDir := t.TempDir()
	badFile := filepath.Join(tempDir, "bad")
	if err := os.WriteFile(badFile, []byte("[broken\n"), 0644); err != nil {
		t.Fatalf("Failed to write pattern file: %v", err)
	}
	if err := excludes.LoadPatternFile(badFile); err == nil {
		t.Error("Expected error for invalid pattern in file")
	}
}
