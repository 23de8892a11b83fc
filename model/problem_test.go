package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func pathProblem() *Problem {
	// 4-node path a-b-c-d, ferromagnetic couplings.
	p := NewProblem(Spin)
	p.SetQuadratic("a", "b", -1)
	p.SetQuadratic("b", "c", -1)
	p.SetQuadratic("c", "d", -1)
	return p
}

func TestSetQuadraticDeclaresVariables(t *testing.T) {
	p := pathProblem()

	require.Equal(t, []string{"a", "b", "c", "d"}, p.Variables())
	require.NoError(t, p.Validate())
}

func TestProblemValidateRejectsInconsistentKeys(t *testing.T) {
	p := NewProblem(Spin)
	p.Linear["a"] = 1
	p.Quadratic[NewPair("a", "z")] = -1

	require.ErrorContains(t, p.Validate(), "undeclared variable")

	p2 := NewProblem(Binary)
	p2.Linear["a"] = 0
	p2.Quadratic[Pair{U: "a", V: "a"}] = 1
	require.ErrorContains(t, p2.Validate(), "single variable")
}

func TestProblemEnergy(t *testing.T) {
	p := pathProblem()
	p.Offset = 0.5

	ground := map[string]int{"a": 1, "b": 1, "c": 1, "d": 1}
	require.InDelta(t, -2.5, p.Energy(ground), 1e-12)

	excited := map[string]int{"a": 1, "b": -1, "c": 1, "d": -1}
	require.InDelta(t, 3.5, p.Energy(excited), 1e-12)
}

func TestProblemJSONRoundTrip(t *testing.T) {
	p := pathProblem()
	p.Name = "path4"
	p.SetLinear("a", 0.25)
	p.Offset = -1.75

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var got Problem
	require.NoError(t, json.Unmarshal(data, &got))

	require.Equal(t, p.Name, got.Name)
	require.Equal(t, p.Linear, got.Linear)
	require.Equal(t, p.Quadratic, got.Quadratic)
	require.Equal(t, p.Offset, got.Offset)
	require.Equal(t, p.Vartype, got.Vartype)
}

func TestProblemJSONDeterministic(t *testing.T) {
	p := pathProblem()

	first, err := json.Marshal(p)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := json.Marshal(pathProblem())
		require.NoError(t, err)
		require.Equal(t, string(first), string(again))
	}
}

func TestInteractionGraphMatchesQuadraticStructure(t *testing.T) {
	p := pathProblem()
	p.Name = "path4"
	g := p.InteractionGraph()

	require.Equal(t, "path4", g.Name)
	require.Equal(t, []string{"a", "b", "c", "d"}, g.Nodes)
	require.Equal(t, []Pair{NewPair("a", "b"), NewPair("b", "c"), NewPair("c", "d")}, g.Edges)
	require.NoError(t, g.Validate())
}
