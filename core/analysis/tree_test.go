package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFileTreeNestsBySegment(t *testing.T) {
	files := []FileInfo{
		{Path: "main.py", Size: 10},
		{Path: "src/app.py", Size: 20},
		{Path: "src/util/helpers.py", Size: 30},
	}

	root := BuildFileTree(files)

	require.NotNil(t, root)
	require.Contains(t, root.Children, "main.py")
	assert.NotNil(t, root.Children["main.py"].File)
	assert.Equal(t, int64(10), root.Children["main.py"].File.Size)

	src := root.Children["src"]
	require.NotNil(t, src)
	assert.Nil(t, src.File)
	require.Contains(t, src.Children, "app.py")
	require.Contains(t, src.Children, "util")

	util := src.Children["util"]
	require.Contains(t, util.Children, "helpers.py")
	assert.Equal(t, "helpers.py", util.Children["helpers.py"].Name)
	assert.Equal(t, int64(30), util.Children["helpers.py"].File.Size)
}

func TestBuildFileTreeEmptyListing(t *testing.T) {
	root := BuildFileTree(nil)

	require.NotNil(t, root)
	assert.Empty(t, root.Children)
}
