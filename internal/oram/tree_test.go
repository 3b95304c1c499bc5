package oram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixSize(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"seven", 7, 7},
		{"five rounds up", 5, 6},
		{"one", 1, 1},
		{"three", 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fixSize(tt.input))
		})
	}
}

func TestNewPerfectTreeHeightAndLeaves(t *testing.T) {
	tree := newPerfectTree(7)
	assert.Equal(t, 2, tree.height)
	assert.Len(t, tree.leaves(), 4)
	assert.Len(t, tree.levels, 3)
	assert.Same(t, tree.root, tree.levels[0][0])
}

func TestPerfectTreeParentLinks(t *testing.T) {
	tree := newPerfectTree(7)
	for level := 0; level < tree.height; level++ {
		for _, parent := range tree.levels[level] {
			assert.Same(t, parent, parent.left.parent)
			assert.Same(t, parent, parent.right.parent)
		}
	}
}
