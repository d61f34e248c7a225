package analysis

import "strings"

// TreeNode is one node of the hierarchical file-tree view. Directory nodes
// carry children keyed by path segment; leaf nodes carry the file entry.
type TreeNode struct {
	Name     string               `json:"name"`
	File     *FileInfo            `json:"file,omitempty"`
	Children map[string]*TreeNode `json:"children,omitempty"`
}

// BuildFileTree folds a flat file listing into a nested tree keyed by
// slash-separated path segments.
func BuildFileTree(files []FileInfo) *TreeNode {
	root := &TreeNode{Name: "", Children: make(map[string]*TreeNode)}

	for i := range files {
		insertFile(root, &files[i])
	}

	return root
}

// insertFile walks the tree creating directory nodes as needed and places
// the file at the final segment.
func insertFile(root *TreeNode, file *FileInfo) {
	parts := strings.Split(file.Path, "/")
	current := root

	for _, part := range parts[:len(parts)-1] {
		child, ok := current.Children[part]
		if !ok {
			child = &TreeNode{Name: part, Children: make(map[string]*TreeNode)}
			current.Children[part] = child
		}
		current = child
	}

	leaf := parts[len(parts)-1]
	current.Children[leaf] = &TreeNode{Name: leaf, File: file}
}
