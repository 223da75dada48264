// Package parser classifies uploads by streamer, stream date and games,
// using per-identity rulesets built from an injected Toolkit.
package parser

import (
	"fmt"
	"sort"

	"replay_fetcher/internal/domain"
)

// Strategy is one attempt at classifying an upload.
type Strategy func(u domain.Upload) (domain.Record, bool)

// Parser classifies uploads for one identity. Strategies are tried in order
// and the first success wins.
type Parser struct {
	identity   domain.Identity
	strategies []Strategy
}

func New(identity domain.Identity, strategies ...Strategy) *Parser {
	return &Parser{identity: identity, strategies: strategies}
}

func (p *Parser) Identity() domain.Identity { return p.identity }

// Parse returns false when no strategy accepts the upload. Accepted records
// always carry at least one game.
func (p *Parser) Parse(u domain.Upload) (domain.Record, bool) {
	for _, try := range p.strategies {
		r, ok := try(u)
		if ok && len(r.Games) > 0 {
			return r, true
		}
	}
	return domain.Record{}, false
}

// Ruleset builds the strategies of one title convention.
type Ruleset func(tk *Toolkit) []Strategy

var rulesets = map[string]Ruleset{
	"bracketed": Bracketed,
	"dated":     Dated,
	"quin":      Quin,
}

// Rulesets lists the registered ruleset names.
func Rulesets() []string {
	names := make([]string, 0, len(rulesets))
	for name := range rulesets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IdentitySpec binds an identity to a ruleset by name.
type IdentitySpec struct {
	Identity domain.Identity
	Ruleset  string
}

// Registry maps tracked identities to their parsers, keeping configuration order.
type Registry struct {
	parsers []*Parser
	byID    map[int64]*Parser
}

func NewRegistry(parsers ...*Parser) (*Registry, error) {
	r := &Registry{byID: make(map[int64]*Parser, len(parsers))}
	for _, p := range parsers {
		id := p.Identity().ID
		if _, dup := r.byID[id]; dup {
			return nil, fmt.Errorf("parser for identity %d registered twice", id)
		}
		r.byID[id] = p
		r.parsers = append(r.parsers, p)
	}
	return r, nil
}

// Build creates a registry from identity specs, resolving rulesets by name.
func Build(tk *Toolkit, specs []IdentitySpec) (*Registry, error) {
	parsers := make([]*Parser, 0, len(specs))
	for _, spec := range specs {
		rs, ok := rulesets[spec.Ruleset]
		if !ok {
			return nil, fmt.Errorf("identity %d: unknown ruleset %q (known: %v)", spec.Identity.ID, spec.Ruleset, Rulesets())
		}
		parsers = append(parsers, New(spec.Identity, rs(tk)...))
	}
	return NewRegistry(parsers...)
}

func (r *Registry) Lookup(id int64) (*Parser, bool) {
	p, ok := r.byID[id]
	return p, ok
}

func (r *Registry) Parsers() []*Parser {
	return append([]*Parser(nil), r.parsers...)
}

func (r *Registry) Identities() []domain.Identity {
	out := make([]domain.Identity, len(r.parsers))
	for i, p := range r.parsers {
		out[i] = p.Identity()
	}
	return out
}

func classify(u domain.Upload, liveTime int64, games []string, streamer domain.Streamer) domain.Record {
	return domain.Record{
		Upload:   u,
		LiveTime: liveTime,
		Games:    games,
		Streamer: streamer,
	}
}
