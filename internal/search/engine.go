package search

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sha1n/mcp-widget-catalog/internal/domain"
)

const (
	// DefaultLimit is the number of results returned when no limit is given.
	DefaultLimit = 10

	// DefaultNamePrefix is the dotted path prepended to suggestion prefixes.
	DefaultNamePrefix = "st."

	exactWeight   = 2
	partialWeight = 1

	highlightMarker = "**"
)

// Mode selects how query tokens are matched against the index.
type Mode int

const (
	// ModeExact scores only tokens present verbatim in the index.
	ModeExact Mode = iota
	// ModePartial additionally scores index tokens that contain, or are contained in, a query token.
	ModePartial
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModePartial:
		return "partial"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return ModeExact, nil
	case "partial":
		return ModePartial, nil
	default:
		return 0, fmt.Errorf("unknown search mode: %q (expected exact or partial)", s)
	}
}

// Request is a fully resolved search request.
type Request struct {
	Query    string
	Mode     Mode
	Limit    int
	Category string   // empty means no category filter
	Tags     []string // empty means no tag filter
}

// Option customizes a search request.
type Option func(*Request)

// WithMode sets the match mode.
func WithMode(m Mode) Option {
	return func(r *Request) {
		r.Mode = m
	}
}

// WithLimit sets the maximum number of results. Zero or negative yields no results.
func WithLimit(n int) Option {
	return func(r *Request) {
		r.Limit = n
	}
}

// WithCategory keeps only components in the given category.
func WithCategory(category string) Option {
	return func(r *Request) {
		r.Category = category
	}
}

// WithTags keeps only components carrying at least one of the given tags.
func WithTags(tags ...string) Option {
	return func(r *Request) {
		r.Tags = tags
	}
}

// NewRequest builds a request with defaults (partial mode, DefaultLimit) and applies opts.
func NewRequest(query string, opts ...Option) Request {
	req := Request{
		Query: query,
		Mode:  ModePartial,
		Limit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// Engine answers keyword queries over an immutable Index.
// It is safe for concurrent use; to pick up catalog changes build a new Engine.
type Engine struct {
	index      *Index
	namePrefix string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithNamePrefix sets the dotted path convention used by Suggest.
func WithNamePrefix(prefix string) EngineOption {
	return func(e *Engine) {
		e.namePrefix = prefix
	}
}

// NewEngine indexes the components and returns a ready engine.
// Construction fails with a *domain.ValidationError on a blank or duplicate ID.
func NewEngine(components []domain.Component, opts ...EngineOption) (*Engine, error) {
	index, err := BuildIndex(components)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		index:      index,
		namePrefix: DefaultNamePrefix,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Index returns the underlying index.
func (e *Engine) Index() *Index {
	return e.index
}

// Len returns the number of components in the catalog.
func (e *Engine) Len() int {
	return e.index.Len()
}

// Search runs a query with defaults overridden by opts.
func (e *Engine) Search(query string, opts ...Option) []domain.SearchResult {
	return e.Execute(NewRequest(query, opts...))
}

// candidate accumulates the score of one component during a query.
type candidate struct {
	id     string
	score  int
	fields fieldSet
}

// Execute runs a resolved request. Any query string is valid input; unknown
// filters or an empty query simply produce no results.
func (e *Engine) Execute(req Request) []domain.SearchResult {
	if req.Query == "" || req.Limit <= 0 {
		return []domain.SearchResult{}
	}

	tokens := Tokenize(req.Query)
	if len(tokens) == 0 {
		return []domain.SearchResult{}
	}

	candidates := make(map[string]*candidate)
	credit := func(postings map[string]fieldSet, weight int) {
		for id, fs := range postings {
			c, ok := candidates[id]
			if !ok {
				c = &candidate{id: id}
				candidates[id] = c
			}
			c.score += weight * fs.Count()
			c.fields |= fs
		}
	}

	for _, tok := range tokens {
		if postings, ok := e.index.inverted[tok]; ok {
			credit(postings, exactWeight)
		}

		if req.Mode == ModePartial {
			for _, indexTok := range e.index.vocabulary {
				if strings.Contains(indexTok, tok) || strings.Contains(tok, indexTok) {
					credit(e.index.inverted[indexTok], partialWeight)
				}
			}
		}
	}

	ranked := make([]*candidate, 0, len(candidates))
	for id, c := range candidates {
		comp, _ := e.index.Lookup(id)
		if req.Category != "" && comp.Category != req.Category {
			continue
		}
		if len(req.Tags) > 0 && !comp.HasAnyTag(req.Tags) {
			continue
		}
		ranked = append(ranked, c)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return e.index.position(ranked[i].id) < e.index.position(ranked[j].id)
	})

	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}

	patterns := highlightPatterns(tokens)
	results := make([]domain.SearchResult, 0, len(ranked))
	for _, c := range ranked {
		comp, _ := e.index.Lookup(c.id)
		results = append(results, domain.SearchResult{
			ComponentID:   comp.ID,
			Name:          comp.Name,
			Category:      comp.Category,
			Description:   comp.Description,
			Score:         float64(c.score),
			MatchedFields: c.fields.Names(),
			Highlights:    highlight(comp, patterns),
		})
	}
	return results
}

// highlightPatterns compiles one case-insensitive literal pattern per token, in token order.
func highlightPatterns(tokens []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(tokens))
	for _, tok := range tokens {
		patterns = append(patterns, regexp.MustCompile("(?i)"+regexp.QuoteMeta(tok)))
	}
	return patterns
}

// highlight marks query token occurrences in the name and description.
// Patterns are applied one after another, so overlapping tokens may nest markers.
// Only fields whose text changed are included.
func highlight(comp domain.Component, patterns []*regexp.Regexp) map[string]string {
	highlights := make(map[string]string)
	for _, field := range []struct {
		name string
		text string
	}{
		{domain.FieldName, comp.Name},
		{domain.FieldDescription, comp.Description},
	} {
		marked := field.text
		for _, p := range patterns {
			marked = p.ReplaceAllStringFunc(marked, func(m string) string {
				return highlightMarker + m + highlightMarker
			})
		}
		if marked != field.text {
			highlights[field.name] = marked
		}
	}
	return highlights
}

// ByTag returns the IDs of components carrying any of the tags, in catalog order.
func (e *Engine) ByTag(tags []string) []string {
	matched := make(map[string]struct{})
	for _, tag := range tags {
		for _, id := range e.index.tags[tag] {
			matched[id] = struct{}{}
		}
	}

	ids := make([]string, 0, len(matched))
	for _, c := range e.index.components {
		if _, ok := matched[c.ID]; ok {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Component returns the component with the given ID.
func (e *Engine) Component(id string) (domain.Component, bool) {
	return e.index.Lookup(id)
}

// Components returns a copy of the catalog in its original order.
func (e *Engine) Components() []domain.Component {
	return append([]domain.Component(nil), e.index.components...)
}

// Categories returns the distinct categories in order of first appearance.
func (e *Engine) Categories() []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, c := range e.index.components {
		if _, ok := seen[c.Category]; ok {
			continue
		}
		seen[c.Category] = struct{}{}
		categories = append(categories, c.Category)
	}
	return categories
}
