package dupscan

import (
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DuplicateGroup represents a group of files with the same fingerprint
type DuplicateGroup struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// ScanOptions configures a duplicate scan
type ScanOptions struct {
	Algorithm      string // digest algorithm name, DefaultAlgorithm if empty
	FollowSymlinks bool
	Workers        int // digest worker count, DefaultHashWorkers if <= 0
	ChunkSize      int // digest read size in bytes, DefaultChunkSize if <= 0
	Verify         bool
	Excludes       *ExcludeManager
}

// ScanStats summarises the work done by one scan
type ScanStats struct {
	FilesSeen   uint64        `json:"files_seen"`
	FilesHashed uint64        `json:"files_hashed"`
	BytesHashed uint64        `json:"bytes_hashed"`
	Elapsed     time.Duration `json:"elapsed"`
}

// ScanResult is the complete outcome of a finished scan
type ScanResult struct {
	Root        string           `json:"root"`
	Algorithm   string           `json:"algorithm"`
	Groups      []DuplicateGroup `json:"duplicates"`
	Diagnostics []Diagnostic     `json:"diagnostics"`
	Stats       ScanStats        `json:"stats"`
}

// FindDuplicates performs a single batch scan of rootDir: enumerate, hash,
// group, and return the finished result. The walker runs single-threaded and
// feeds a bounded queue; a fixed pool of workers stream-hashes entries and
// inserts fingerprints into the shared index.
//
// Closing shutdownChan aborts the run; an aborted run returns an error and no
// partial result is ever reported.
func FindDuplicates(rootDir string, opts ScanOptions, shutdownChan <-chan struct{}) (*ScanResult, error) {
	defer VerboseEnter()()
	start := time.Now()

	if opts.Algorithm == "" {
		opts.Algorithm = DefaultAlgorithm
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultHashWorkers
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}

	algorithm, err := GetHashAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	diags := NewDiagnostics()
	walker := NewTreeWalker(rootDir, WalkPolicy{
		FollowSymlinks: opts.FollowSymlinks,
		Excludes:       opts.Excludes,
	}, diags)

	if err := walker.ValidateRoot(); err != nil {
		return nil, err
	}

	index := NewDuplicateIndex()
	entryChan := make(chan FileEntry, entryChannelSize)

	var filesHashed, bytesHashed uint64

	var group errgroup.Group

	// Traversal is cheap relative to hashing and stays single-threaded
	group.Go(func() error {
		return walker.Walk(entryChan, shutdownChan)
	})

	// Fixed-size digest worker pool
	for i := 0; i < opts.Workers; i++ {
		group.Go(func() error {
			for entry := range entryChan {
				if IsDebugEnabled("hashing") {
					VerboseLog(3, "hashing: %s", entry.RelPath)
				}

				fingerprint, err := HashFileInterruptible(entry.Path, algorithm, opts.ChunkSize, shutdownChan)
				if err != nil {
					if errors.Is(err, ErrInterrupted) {
						return err
					}
					// Unreadable or race-deleted file: skip it, keep scanning
					diags.Add(entry.Path, DiagRead, err)
					continue
				}

				index.Insert(fingerprint, entry.RelPath, entry.Seq)
				atomic.AddUint64(&filesHashed, 1)
				atomic.AddUint64(&bytesHashed, uint64(entry.Size))
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		// Shutdown mid-run: report nothing rather than a truncated result
		return nil, fmt.Errorf("scan aborted: %w", err)
	}

	groups := index.Finalize()

	if opts.Verify {
		groups = verifyGroups(groups, rootDir, opts.ChunkSize, diags)
	}

	// Walker and worker diagnostics interleave in scheduler order; sort them
	// so repeated runs over an unchanged tree report identically
	diagItems := diags.Items()
	sort.Slice(diagItems, func(i, j int) bool {
		if diagItems[i].Path != diagItems[j].Path {
			return diagItems[i].Path < diagItems[j].Path
		}
		return diagItems[i].Op < diagItems[j].Op
	})

	result := &ScanResult{
		Root:        rootDir,
		Algorithm:   algorithm.Name,
		Groups:      groups,
		Diagnostics: diagItems,
		Stats: ScanStats{
			FilesSeen:   walker.FilesSeen(),
			FilesHashed: atomic.LoadUint64(&filesHashed),
			BytesHashed: atomic.LoadUint64(&bytesHashed),
			Elapsed:     time.Since(start),
		},
	}

	if GetVerboseLevel() >= 1 {
		VerboseLog(1, "scan of %s complete: %d files seen, %d hashed, %d bytes, %d duplicate groups, %d diagnostics",
			rootDir, result.Stats.FilesSeen, result.Stats.FilesHashed, result.Stats.BytesHashed,
			len(result.Groups), len(result.Diagnostics))
	}

	return result, nil
}
