package dupscan

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ReportEmitter renders a finished scan result. It holds no grouping or
// hashing logic; groups are printed in the order Finalize produced them.
type ReportEmitter struct {
	writer io.Writer
	format string
}

// NewReportEmitter creates an emitter for the given output format
func NewReportEmitter(writer io.Writer, format string) (*ReportEmitter, error) {
	if format == "" {
		format = FormatHuman
	}
	if err := ValidateOutputFormat(format); err != nil {
		return nil, err
	}
	return &ReportEmitter{writer: writer, format: strings.ToLower(format)}, nil
}

// ValidateOutputFormat validates that an output format is supported
func ValidateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case FormatHuman, FormatJSON, FormatFdupes:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (supported: human, json, fdupes)", format)
	}
}

// Emit renders the scan result in the emitter's format
func (re *ReportEmitter) Emit(result *ScanResult) error {
	switch re.format {
	case FormatJSON:
		return re.emitJSON(result)
	case FormatFdupes:
		return re.emitFdupes(result)
	default:
		return re.emitHuman(result)
	}
}

// emitHuman prints one block per group: the fingerprint followed by its
// member paths, blank line between groups, then a diagnostics section
func (re *ReportEmitter) emitHuman(result *ScanResult) error {
	if len(result.Groups) == 0 {
		if _, err := fmt.Fprintf(re.writer, "no duplicate files found under %s\n", result.Root); err != nil {
			return err
		}
	}

	for i, group := range result.Groups {
		if i > 0 {
			if _, err := fmt.Fprintln(re.writer); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(re.writer, "%s\n", group.Hash); err != nil {
			return err
		}
		for _, file := range group.Files {
			if _, err := fmt.Fprintf(re.writer, "  %s\n", file); err != nil {
				return err
			}
		}
	}

	if len(result.Diagnostics) > 0 {
		if _, err := fmt.Fprintf(re.writer, "\ndiagnostics:\n"); err != nil {
			return err
		}
		for _, diag := range result.Diagnostics {
			if _, err := fmt.Fprintf(re.writer, "  skipped %s: %s: %s\n", diag.Path, diag.Op, diag.Err); err != nil {
				return err
			}
		}
	}

	return nil
}

// emitJSON prints the whole scan result as an indented JSON document
func (re *ReportEmitter) emitJSON(result *ScanResult) error {
	encoder := json.NewEncoder(re.writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return fmt.Errorf("failed to encode report as JSON: %w", err)
	}
	return nil
}

// emitFdupes prints member paths only, one group per blank-line separated
// block, matching the default output of fdupes(1)
func (re *ReportEmitter) emitFdupes(result *ScanResult) error {
	for i, group := range result.Groups {
		if i > 0 {
			if _, err := fmt.Fprintln(re.writer); err != nil {
				return err
			}
		}
		for _, file := range group.Files {
			if _, err := fmt.Fprintf(re.writer, "%s\n", file); err != nil {
				return err
			}
		}
	}
	return nil
}
