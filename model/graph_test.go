package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPairCanonicalOrder(t *testing.T) {
	require.Equal(t, NewPair("a", "b"), NewPair("b", "a"))
	require.Equal(t, "a", NewPair("b", "a").U)
}

func TestGraphNormalizeDeduplicates(t *testing.T) {
	g := NewGraph(
		[]string{"c", "a", "b", "a"},
		[]Pair{{U: "b", V: "a"}, {U: "a", V: "b"}, {U: "b", V: "c"}},
	)

	require.Equal(t, []string{"a", "b", "c"}, g.Nodes)
	require.Equal(t, []Pair{NewPair("a", "b"), NewPair("b", "c")}, g.Edges)
}

func TestGraphValidate(t *testing.T) {
	tests := []struct {
		name    string
		graph   *Graph
		wantErr string
	}{
		{
			name:  "valid",
			graph: NewGraph([]string{"a", "b"}, []Pair{NewPair("a", "b")}),
		},
		{
			name:    "undeclared endpoint",
			graph:   &Graph{Nodes: []string{"a"}, Edges: []Pair{NewPair("a", "b")}},
			wantErr: "undeclared node",
		},
		{
			name:    "self loop",
			graph:   &Graph{Nodes: []string{"a"}, Edges: []Pair{{U: "a", V: "a"}}},
			wantErr: "self-loop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.graph.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestGraphDegreesIncludeIsolatedNodes(t *testing.T) {
	g := NewGraph([]string{"a", "b", "c", "d"}, []Pair{
		NewPair("a", "b"),
		NewPair("b", "c"),
	})

	require.Equal(t, map[string]int{"a": 1, "b": 2, "c": 1, "d": 0}, g.Degrees())
}

func TestGraphAddEdgeDeclaresEndpoints(t *testing.T) {
	g := &Graph{}
	g.AddEdge("x", "y")
	g.AddEdge("y", "x") // duplicate, other orientation

	require.Len(t, g.Edges, 1)
	require.ElementsMatch(t, []string{"x", "y"}, g.Nodes)
}
