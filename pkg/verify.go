package dupscan

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// verifyGroups byte-compares the members of each duplicate group and splits
// any group whose members only collide on the digest. With a sane algorithm a
// split should never happen in practice; the pass exists so callers who ask
// for it get content equality, not just fingerprint equality.
//
// Sub-groups keep their members in discovery order and follow their parent
// group immediately, so verified output stays deterministic. Members that
// vanish between hashing and verification are dropped from the group and
// recorded as diagnostics; a comparison failure against one partition never
// discards the member being compared, only that partition as a candidate.
func verifyGroups(groups []DuplicateGroup, rootDir string, chunkSize int, diags *Diagnostics) []DuplicateGroup {
	defer VerboseEnter()()

	result := make([]DuplicateGroup, 0, len(groups))

	for _, group := range groups {
		// Partition members into byte-identical sub-groups. Each member is
		// compared against the first member of every existing partition.
		partitions := make([][]string, 0, 1)

	MEMBER:
		for _, relPath := range group.Files {
			absPath := filepath.Join(rootDir, relPath)

			// A member that vanished between hashing and verification is
			// dropped and recorded
			if _, err := os.Stat(absPath); err != nil {
				diags.Add(absPath, DiagStat, fmt.Errorf("verification failed: %w", err))
				continue
			}

			for i, partition := range partitions {
				equal, err := sameContent(filepath.Join(rootDir, partition[0]), absPath, chunkSize)
				if err != nil {
					// The comparison failed against this partition's leader;
					// the member is still live and may match another
					continue
				}
				if equal {
					partitions[i] = append(partitions[i], relPath)
					continue MEMBER
				}
			}

			partitions = append(partitions, []string{relPath})
		}

		for _, partition := range partitions {
			if len(partition) < 2 {
				continue
			}
			if len(partitions) > 1 {
				VerboseLog(1, "digest collision detected for %s: group split by content comparison", group.Hash)
			}
			result = append(result, DuplicateGroup{
				Hash:  group.Hash,
				Files: partition,
				Count: len(partition),
			})
		}
	}

	return result
}

// sameContent reports whether two files have byte-identical content,
// comparing in chunkSize reads so memory use stays bounded
func sameContent(pathA, pathB string, chunkSize int) (bool, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	infoA, err := os.Stat(pathA)
	if err != nil {
		return false, err
	}
	infoB, err := os.Stat(pathB)
	if err != nil {
		return false, err
	}
	if infoA.Size() != infoB.Size() {
		return false, nil
	}

	fileA, err := os.Open(pathA)
	if err != nil {
		return false, err
	}
	defer fileA.Close()

	fileB, err := os.Open(pathB)
	if err != nil {
		return false, err
	}
	defer fileB.Close()

	bufA := make([]byte, chunkSize)
	bufB := make([]byte, chunkSize)

	for {
		nA, errA := io.ReadFull(fileA, bufA)
		nB, errB := io.ReadFull(fileB, bufB)

		if nA != nB || !bytes.Equal(bufA[:nA], bufB[:nB]) {
			return false, nil
		}

		endA := errA == io.EOF || errA == io.ErrUnexpectedEOF
		endB := errB == io.EOF || errB == io.ErrUnexpectedEOF
		if endA && endB {
			return true, nil
		}
		if errA != nil && !endA {
			return false, errA
		}
		if errB != nil && !endB {
			return false, errB
		}
		if endA != endB {
			return false, nil
		}
	}
}
