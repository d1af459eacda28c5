// Package dupscan provides content-based duplicate file detection: it walks a
// directory tree, digests every regular file, and groups files whose contents
// are identical.
//
// # Core API
//
// The main entry point is FindDuplicates, which runs a complete scan:
//
//	result, err := dupscan.FindDuplicates("/path/to/dir", dupscan.ScanOptions{}, nil)
//	for _, group := range result.Groups {
//		fmt.Printf("%s: %v\n", group.Hash, group.Files)
//	}
//
// Scans are deterministic: group members appear in discovery order and groups
// are ordered by their earliest-discovered member, regardless of how many
// digest workers run concurrently.
//
// # Options
//
// ScanOptions selects the digest algorithm, worker count, symlink policy, and
// exclude patterns:
//
//	excludes := dupscan.NewExcludeManager()
//	excludes.AddPattern(`\.git/`)
//	result, err := dupscan.FindDuplicates(dir, dupscan.ScanOptions{
//		Algorithm: "sha256",
//		Workers:   8,
//		Excludes:  excludes,
//	}, nil)
//
// # Reporting
//
// ReportEmitter renders a ScanResult in human, json, or fdupes format:
//
//	emitter, err := dupscan.NewReportEmitter(os.Stdout, dupscan.FormatJSON)
//	err = emitter.Emit(result)
//
// # Debugging
//
// Enable debug output:
//
//	dupscan.SetDebugFlags("walk,hashing")
//	dupscan.SetVerboseLevel(2)
package dupscan
