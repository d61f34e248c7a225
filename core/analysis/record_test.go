package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordInitialState(t *testing.T) {
	record := NewRecord("https://github.com/acme/widgets", "repo-1", "main", "tok", true, "abc123")

	assert.Equal(t, "https://github.com/acme/widgets", record.RepoURL)
	assert.Equal(t, "repo-1", record.RepoID)
	assert.Equal(t, "main", record.Branch)
	assert.Equal(t, "abc123", record.PreviousRevision)
	assert.True(t, record.Incremental)
	assert.Equal(t, PhaseInitialized, record.Phase)
	assert.Empty(t, record.Files)
	assert.Empty(t, record.Warnings)
	assert.Empty(t, record.Errors)
	assert.False(t, record.Failed())
}

func TestAddErrorForcesFailedPhase(t *testing.T) {
	record := NewRecord("url", "id", "", "", false, "")
	record.Phase = PhaseAnalyzing

	record.AddError("clone exploded")

	assert.Equal(t, PhaseFailed, record.Phase)
	assert.True(t, record.Failed())
	require.Len(t, record.Errors, 1)
	assert.Equal(t, "clone exploded", record.Errors[0])
}

func TestAddWarningKeepsPhase(t *testing.T) {
	record := NewRecord("url", "id", "", "", false, "")
	record.Phase = PhaseCloned

	record.AddWarning("skipping large file: big.bin (2097152 bytes)")

	assert.Equal(t, PhaseCloned, record.Phase)
	assert.False(t, record.Failed())
	assert.Len(t, record.Warnings, 1)
}

func TestSetFilesKeepsTotalsConsistent(t *testing.T) {
	record := NewRecord("url", "id", "", "", false, "")

	record.SetFiles([]FileInfo{
		{Path: "main.py", Size: 100, Extension: ".py"},
		{Path: "app.js", Size: 250, Extension: ".js"},
	})

	assert.Equal(t, 2, record.TotalFiles)
	assert.Equal(t, int64(350), record.TotalSizeBytes)

	record.SetFiles(nil)

	assert.Equal(t, 0, record.TotalFiles)
	assert.Equal(t, int64(0), record.TotalSizeBytes)
}

func TestPhaseTerminal(t *testing.T) {
	assert.True(t, PhaseCompleted.Terminal())
	assert.True(t, PhaseFailed.Terminal())
	assert.False(t, PhaseInitialized.Terminal())
	assert.False(t, PhaseAnalyzing.Terminal())
	assert.False(t, PhaseInsightsGenerated.Terminal())
}

func TestChangedPathsUnionExcludesDeleted(t *testing.T) {
	changes := ChangeSet{
		Added:    []string{"new.py"},
		Modified: []string{"app.py", "new.py"},
		Deleted:  []string{"old.py"},
	}

	paths := changes.ChangedPaths()

	assert.Len(t, paths, 2)
	assert.Contains(t, paths, "new.py")
	assert.Contains(t, paths, "app.py")
	assert.NotContains(t, paths, "old.py")
}
