package dupscan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sys/unix"
)

// FileEntry represents one regular file discovered during traversal
type FileEntry struct {
	Path    string // absolute path
	RelPath string // path relative to the scan root
	Size    int64
	Seq     uint64 // discovery sequence number, the deterministic ordering key
}

// WalkPolicy governs symlink handling and exclusion during traversal
type WalkPolicy struct {
	FollowSymlinks bool
	Excludes       *ExcludeManager
}

// devIno identifies a directory by device and inode. The walker keys its
// visited set on this pair so a symlink back to an ancestor is detected no
// matter how the path is spelled.
type devIno struct {
	dev uint64
	ino uint64
}

// TreeWalker enumerates regular files under a root directory in lexical
// order. Per-entry failures are recorded as diagnostics and traversal
// continues; only shutdown aborts a walk.
type TreeWalker struct {
	rootDir string
	policy  WalkPolicy
	diags   *Diagnostics
	seq     uint64
	visited map[devIno]struct{}
}

// NewTreeWalker creates a walker for the given root directory
func NewTreeWalker(rootDir string, policy WalkPolicy, diags *Diagnostics) *TreeWalker {
	if diags == nil {
		diags = NewDiagnostics()
	}
	return &TreeWalker{
		rootDir: filepath.Clean(rootDir),
		policy:  policy,
		diags:   diags,
		visited: make(map[devIno]struct{}),
	}
}

// ValidateRoot checks that the walker's root exists and is a directory.
// This is the only fatal condition of a scan.
func (w *TreeWalker) ValidateRoot() error {
	info, err := os.Stat(w.rootDir)
	if err != nil {
		return fmt.Errorf("root directory %s does not exist: %w", w.rootDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root path %s is not a directory", w.rootDir)
	}
	return nil
}

// Walk enumerates regular files under the root and streams them to entryChan
// as they are found. The channel is closed when traversal finishes. Sibling
// entries are visited in lexical order so repeated runs over an unchanged
// tree discover files in identical order.
//
// Traversal uses an explicitly managed sorted path queue rather than
// recursion, so directory depth never grows the call stack.
func (w *TreeWalker) Walk(entryChan chan<- FileEntry, shutdownChan <-chan struct{}) error {
	defer VerboseEnter()()
	defer close(entryChan)

	pathQueue := []string{w.rootDir}

	for len(pathQueue) > 0 {
		// Check for shutdown
		select {
		case <-shutdownChan:
			return fmt.Errorf("walk interrupted by shutdown")
		default:
		}

		// Always process the first path (lexicographically smallest)
		currentPath := pathQueue[0]
		pathQueue = pathQueue[1:]

		info, err := os.Lstat(currentPath)
		if err != nil {
			// Race-deleted between listing and stat
			w.diags.Add(currentPath, DiagStat, err)
			continue
		}

		relPath, err := filepath.Rel(w.rootDir, currentPath)
		if err != nil {
			continue
		}

		if relPath != "." && w.policy.Excludes.ShouldExclude(relPath) {
			if IsDebugEnabled("walk") {
				VerboseLog(3, "walk: excluded %s", relPath)
			}
			continue
		}

		// Resolve symlinks before classifying the entry. File symlinks are
		// always resolved and hashed by target content; directory symlinks
		// are descended only when the policy allows it.
		if info.Mode()&os.ModeSymlink != 0 {
			targetInfo, err := os.Stat(currentPath)
			if err != nil {
				w.diags.Add(currentPath, DiagStat, err)
				continue
			}
			if targetInfo.IsDir() && !w.policy.FollowSymlinks {
				continue
			}
			info = targetInfo
		}

		if info.IsDir() {
			// With symlink following enabled a directory can reappear under
			// itself; the visited set breaks the loop and records the event.
			if w.policy.FollowSymlinks {
				id, err := w.statDevIno(currentPath)
				if err == nil {
					if _, seen := w.visited[id]; seen {
						w.diags.Add(currentPath, DiagCycle,
							fmt.Errorf("directory already visited, symlink cycle skipped"))
						continue
					}
					w.visited[id] = struct{}{}
				}
			}

			entries, err := os.ReadDir(currentPath)
			if err != nil {
				// Permission denied or race-deleted; skip, never fatal
				w.diags.Add(currentPath, DiagReadDir, err)
				continue
			}

			// Sort entries for consistent ordering
			sort.Slice(entries, func(i, j int) bool {
				return entries[i].Name() < entries[j].Name()
			})

			newPaths := make([]string, 0, len(entries))
			for _, entry := range entries {
				newPaths = append(newPaths, filepath.Join(currentPath, entry.Name()))
			}

			// Insert new paths into queue maintaining sorted order
			pathQueue = mergeSortedPaths(pathQueue, newPaths)

		} else if info.Mode().IsRegular() {
			w.seq++
			fileEntry := FileEntry{
				Path:    currentPath,
				RelPath: relPath,
				Size:    info.Size(),
				Seq:     w.seq,
			}

			if IsDebugEnabled("walk") {
				VerboseLog(3, "walk: found file %s (seq %d)", relPath, w.seq)
			}

			// Stream result immediately, but never block past a shutdown
			select {
			case entryChan <- fileEntry:
			case <-shutdownChan:
				return fmt.Errorf("walk interrupted by shutdown")
			}
		}
		// Device nodes, pipes and sockets are excluded by definition
	}

	return nil
}

// FilesSeen returns the number of regular files emitted so far
func (w *TreeWalker) FilesSeen() uint64 {
	return w.seq
}

// statDevIno returns the device/inode pair for a path, following symlinks
func (w *TreeWalker) statDevIno(path string) (devIno, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return devIno{}, err
	}
	return devIno{dev: uint64(st.Dev), ino: uint64(st.Ino)}, nil
}
