package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Vartype is the variable domain of a problem.
type Vartype string

const (
	// Spin variables take values in {-1, +1}.
	Spin Vartype = "SPIN"
	// Binary variables take values in {0, 1}.
	Binary Vartype = "BINARY"
)

// Problem is a bias-weighted interaction graph: a real-valued bias per
// variable, a bias per interacting pair, an offset constant, and a variable
// domain. Problems are immutable once fingerprinted and written.
type Problem struct {
	Name      string
	Linear    map[string]float64
	Quadratic map[Pair]float64
	Offset    float64
	Vartype   Vartype
}

// NewProblem creates an empty problem with the given variable domain.
func NewProblem(vt Vartype) *Problem {
	return &Problem{
		Linear:    make(map[string]float64),
		Quadratic: make(map[Pair]float64),
		Vartype:   vt,
	}
}

// SetLinear sets the linear bias of a variable, declaring it if needed.
func (p *Problem) SetLinear(v string, bias float64) {
	p.Linear[v] = bias
}

// SetQuadratic sets the bias of an interacting pair. Both endpoints are
// declared with zero linear bias if missing, keeping the variable sets
// consistent by construction.
func (p *Problem) SetQuadratic(u, v string, bias float64) {
	if _, ok := p.Linear[u]; !ok {
		p.Linear[u] = 0
	}
	if _, ok := p.Linear[v]; !ok {
		p.Linear[v] = 0
	}
	p.Quadratic[NewPair(u, v)] = bias
}

// Variables returns the declared variables in sorted order.
func (p *Problem) Variables() []string {
	vars := make([]string, 0, len(p.Linear))
	for v := range p.Linear {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

// Interactions returns the quadratic structure as a sorted edge list.
func (p *Problem) Interactions() []Pair {
	edges := make([]Pair, 0, len(p.Quadratic))
	for e := range p.Quadratic {
		edges = append(edges, NewPair(e.U, e.V))
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].U != edges[j].U {
			return edges[i].U < edges[j].U
		}
		return edges[i].V < edges[j].V
	})
	return edges
}

// InteractionGraph returns the problem's variable-interaction structure as
// a Graph, the shape both the fingerprint engine and embedders consume.
func (p *Problem) InteractionGraph() *Graph {
	g := NewGraph(p.Variables(), p.Interactions())
	g.Name = p.Name
	return g
}

// Validate checks the problem invariant: every quadratic key references
// two distinct declared variables.
func (p *Problem) Validate() error {
	if p.Vartype != Spin && p.Vartype != Binary {
		return fmt.Errorf("problem %q: unknown vartype %q", p.Name, p.Vartype)
	}
	for e := range p.Quadratic {
		if e.U == e.V {
			return fmt.Errorf("problem %q: quadratic bias on single variable %q", p.Name, e.U)
		}
		if _, ok := p.Linear[e.U]; !ok {
			return fmt.Errorf("problem %q: quadratic key references undeclared variable %q", p.Name, e.U)
		}
		if _, ok := p.Linear[e.V]; !ok {
			return fmt.Errorf("problem %q: quadratic key references undeclared variable %q", p.Name, e.V)
		}
	}
	return nil
}

// Energy evaluates the objective for a full assignment.
func (p *Problem) Energy(assignment map[string]int) float64 {
	e := p.Offset
	for v, bias := range p.Linear {
		e += bias * float64(assignment[v])
	}
	for pair, bias := range p.Quadratic {
		e += bias * float64(assignment[pair.U]) * float64(assignment[pair.V])
	}
	return e
}

// problemDoc is the persisted form. Quadratic terms are flattened to a
// sorted list so the document is deterministic and JSON-representable.
type problemDoc struct {
	Name      string             `json:"name,omitempty"`
	Linear    map[string]float64 `json:"linear"`
	Quadratic []quadraticTerm    `json:"quadratic"`
	Offset    float64            `json:"offset"`
	Vartype   Vartype            `json:"vartype"`
}

type quadraticTerm struct {
	U    string  `json:"u"`
	V    string  `json:"v"`
	Bias float64 `json:"bias"`
}

// MarshalJSON encodes the problem as a deterministic document.
func (p *Problem) MarshalJSON() ([]byte, error) {
	doc := problemDoc{
		Name:      p.Name,
		Linear:    p.Linear,
		Quadratic: make([]quadraticTerm, 0, len(p.Quadratic)),
		Offset:    p.Offset,
		Vartype:   p.Vartype,
	}
	for _, e := range p.Interactions() {
		doc.Quadratic = append(doc.Quadratic, quadraticTerm{U: e.U, V: e.V, Bias: p.Quadratic[e]})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the persisted document form.
func (p *Problem) UnmarshalJSON(data []byte) error {
	var doc problemDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	p.Name = doc.Name
	p.Linear = doc.Linear
	if p.Linear == nil {
		p.Linear = make(map[string]float64)
	}
	p.Quadratic = make(map[Pair]float64, len(doc.Quadratic))
	for _, term := range doc.Quadratic {
		p.Quadratic[NewPair(term.U, term.V)] = term.Bias
	}
	p.Offset = doc.Offset
	p.Vartype = doc.Vartype
	return nil
}
