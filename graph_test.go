package xab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDot(t *testing.T) {
	p := newTestPartition(t, Domain{{Min: 0, Max: 1}}, 1)
	root := p.Root()
	root.record(0.5)
	left, _ := p.Split(root)
	p.Split(left)

	dot, err := ToDot(p)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dot, "digraph G {"), dot)
	for _, name := range []string{"d0_i1", "d1_i1", "d1_i2", "d2_i3", "d2_i4"} {
		assert.Contains(t, dot, name)
	}
	assert.Equal(t, 4, strings.Count(dot, "->"), "one edge per child")
	assert.Contains(t, dot, "n=1 mean=0.5")
}
