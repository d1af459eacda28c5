package dupscan

import (
	"sort"
	"sync"
)

// indexMember is one path filed under a fingerprint, tagged with its walker
// discovery sequence so finalisation can restore a deterministic order after
// concurrent inserts.
type indexMember struct {
	path string
	seq  uint64
}

// DuplicateIndex accumulates fingerprint to path associations. Insert is safe
// for concurrent digest workers; a single mutex guards the whole map since
// contention is negligible next to file I/O.
type DuplicateIndex struct {
	mutex   sync.Mutex
	buckets map[string][]indexMember
	paths   int
}

// NewDuplicateIndex creates an empty duplicate index
func NewDuplicateIndex() *DuplicateIndex {
	return &DuplicateIndex{
		buckets: make(map[string][]indexMember),
	}
}

// Insert adds a path to the bucket for the given fingerprint, creating the
// bucket if absent. seq is the walker's discovery sequence for the path.
func (di *DuplicateIndex) Insert(fingerprint, path string, seq uint64) {
	di.mutex.Lock()
	defer di.mutex.Unlock()

	di.buckets[fingerprint] = append(di.buckets[fingerprint], indexMember{path: path, seq: seq})
	di.paths++
}

// Len returns the total number of indexed paths
func (di *DuplicateIndex) Len() int {
	di.mutex.Lock()
	defer di.mutex.Unlock()
	return di.paths
}

// Finalize returns all buckets with at least two members as DuplicateGroups.
// Members within a group are ordered by discovery sequence (the walker's
// lexical order) and groups are ordered by the smallest sequence among their
// members, so the first-discovered group comes first. Repeated runs over an
// unchanged tree therefore produce identical output regardless of worker
// scheduling.
func (di *DuplicateIndex) Finalize() []DuplicateGroup {
	di.mutex.Lock()
	defer di.mutex.Unlock()

	type orderedGroup struct {
		group  DuplicateGroup
		minSeq uint64
	}

	var ordered []orderedGroup
	for fingerprint, members := range di.buckets {
		if len(members) < 2 {
			continue
		}

		sort.Slice(members, func(i, j int) bool {
			return members[i].seq < members[j].seq
		})

		files := make([]string, 0, len(members))
		for _, member := range members {
			files = append(files, member.path)
		}

		ordered = append(ordered, orderedGroup{
			group: DuplicateGroup{
				Hash:  fingerprint,
				Files: files,
				Count: len(files),
			},
			minSeq: members[0].seq,
		})
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].minSeq < ordered[j].minSeq
	})

	result := make([]DuplicateGroup, 0, len(ordered))
	for _, og := range ordered {
		result = append(result, og.group)
	}
	return result
}
