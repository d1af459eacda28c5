package dupscan

import (
	"reflect"
	"testing"
)

func TestParseHumanSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"8192", 8192, false},
		{"64K", 65536, false},
		{"64k", 65536, false},
		{"64KB", 65536, false},
		{"1M", 1048576, false},
		{"2MB", 2097152, false},
		{"1G", 1073741824, false},
		{"1.5K", 1536, false},
		{"512B", 512, false},
		{"", 0, true},
		{"0", 0, true},
		{"abc", 0, true},
		{"10X", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseHumanSize(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHumanSize(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHumanSize(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseHumanSize(%q) = %d, expected %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMergeSortedPaths(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		newPaths []string
		expected []string
	}{
		{
			name:     "interleaved",
			existing: []string{"a", "c", "e"},
			newPaths: []string{"d", "b"},
			expected: []string{"a", "b", "c", "d", "e"},
		},
		{
			name:     "empty existing",
			existing: nil,
			newPaths: []string{"b", "a"},
			expected: []string{"a", "b"},
		},
		{
			name:     "empty new",
			existing: []string{"a", "b"},
			newPaths: nil,
			expected: []string{"a", "b"},
		},
		{
			name:     "all before",
			existing: []string{"x", "y"},
			newPaths: []string{"a", "b"},
			expected: []string{"a", "b", "x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mergeSortedPaths(tt.existing, tt.newPaths)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("mergeSortedPaths() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
