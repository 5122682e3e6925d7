package committer

import "cloud.google.com/go/spanner"

// Plan collects the Spanner mutations of one invoice change so they commit
// together.
type Plan struct {
	mutations []*spanner.Mutation
}

// NewPlan returns a plan holding the non-nil mutations given.
func NewPlan(ms ...*spanner.Mutation) *Plan {
	p := &Plan{mutations: make([]*spanner.Mutation, 0, len(ms))}
	for _, m := range ms {
		p.Add(m)
	}
	return p
}

func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
