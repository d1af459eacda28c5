package dupscan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSameContent(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "a"), "identical bytes")
	writeTestFile(t, filepath.Join(tempDir, "b"), "identical bytes")
	writeTestFile(t, filepath.Join(tempDir, "c"), "different bytes!")
	writeTestFile(t, filepath.Join(tempDir, "short"), "identical")

	equal, err := sameContent(filepath.Join(tempDir, "a"), filepath.Join(tempDir, "b"), 4)
	require.NoError(t, err)
	assert.True(t, equal)

	// Same length, different content
	equal, err = sameContent(filepath.Join(tempDir, "a"), filepath.Join(tempDir, "c"), 4)
	require.NoError(t, err)
	assert.False(t, equal)

	// Different length resolved by the size check
	equal, err = sameContent(filepath.Join(tempDir, "a"), filepath.Join(tempDir, "short"), 4)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = sameContent(filepath.Join(tempDir, "a"), filepath.Join(tempDir, "missing"), 4)
	require.Error(t, err)
}

func TestSameContentEmptyFiles(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "e1"), "")
	writeTestFile(t, filepath.Join(tempDir, "e2"), "")

	equal, err := sameContent(filepath.Join(tempDir, "e1"), filepath.Join(tempDir, "e2"), 4096)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestVerifyGroupsSplitsCollision(t *testing.T) {
	tempDir := t.TempDir()
	// Same length so only content comparison can tell them apart; a real
	// collision would look exactly like this
	writeTestFile(t, filepath.Join(tempDir, "c1"), "AAAA")
	writeTestFile(t, filepath.Join(tempDir, "c2"), "AAAA")
	writeTestFile(t, filepath.Join(tempDir, "c3"), "BBBB")

	groups := []DuplicateGroup{
		{Hash: "feedface", Files: []string{"c1", "c2", "c3"}, Count: 3},
	}

	diags := NewDiagnostics()
	verified := verifyGroups(groups, tempDir, 4096, diags)

	// c3 falls out as a singleton, c1 and c2 survive as a group
	require.Len(t, verified, 1)
	assert.Equal(t, []string{"c1", "c2"}, verified[0].Files)
	assert.Equal(t, 2, verified[0].Count)
	assert.Equal(t, "feedface", verified[0].Hash)
	assert.Equal(t, 0, diags.Len())
}

func TestVerifyGroupsAllDistinct(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "d1"), "1111")
	writeTestFile(t, filepath.Join(tempDir, "d2"), "2222")

	groups := []DuplicateGroup{
		{Hash: "deadbeef", Files: []string{"d1", "d2"}, Count: 2},
	}

	verified := verifyGroups(groups, tempDir, 4096, NewDiagnostics())
	assert.Empty(t, verified)
}

func TestVerifyGroupsMissingMember(t *testing.T) {
	tempDir := t.TempDir()
	writeTestFile(t, filepath.Join(tempDir, "m1"), "kept")
	writeTestFile(t, filepath.Join(tempDir, "m2"), "kept")

	groups := []DuplicateGroup{
		{Hash: "cafe", Files: []string{"m1", "gone", "m2"}, Count: 3},
	}

	diags := NewDiagnostics()
	verified := verifyGroups(groups, tempDir, 4096, diags)

	// The vanished member is dropped and recorded, the rest still group
	require.Len(t, verified, 1)
	assert.Equal(t, []string{"m1", "m2"}, verified[0].Files)
	require.Equal(t, 1, diags.Len())
	assert.Equal(t, DiagStat, diags.Items()[0].Op)
}

func TestVerifyGroupsUnreadableLeader(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("Running as root, permission checks are bypassed")
	}

	tempDir := t.TempDir()
	// All three have equal sizes so only an actual read can separate them
	locked := filepath.Join(tempDir, "locked")
	writeTestFile(t, locked, "XXXXX")
	writeTestFile(t, filepath.Join(tempDir, "u1"), "YYYYY")
	writeTestFile(t, filepath.Join(tempDir, "u2"), "YYYYY")
	require.NoError(t, os.Chmod(locked, 0000))
	defer os.Chmod(locked, 0644)

	groups := []DuplicateGroup{
		{Hash: "f00d", Files: []string{"locked", "u1", "u2"}, Count: 3},
	}

	verified := verifyGroups(groups, tempDir, 4096, NewDiagnostics())

	// The unreadable leader cannot disqualify the readable members; they
	// still pair up in their own partition
	require.Len(t, verified, 1)
	assert.Equal(t, []string{"u1", "u2"}, verified[0].Files)
	assert.Equal(t, 2, verified[0].Count)
}
