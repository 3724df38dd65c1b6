package search

import (
	"fmt"
	"math/bits"
	"sort"
	"strings"

	"github.com/sha1n/mcp-widget-catalog/internal/domain"
)

// fieldSet is a bit set over the indexed field names.
type fieldSet uint8

// indexedFields is the canonical field order; bit i of a fieldSet refers to indexedFields[i].
var indexedFields = []string{
	domain.FieldID,
	domain.FieldName,
	domain.FieldDescription,
	domain.FieldCategory,
	domain.FieldKeywords,
}

func fieldBit(name string) fieldSet {
	for i, f := range indexedFields {
		if f == name {
			return 1 << i
		}
	}
	return 0
}

// Count returns the number of distinct fields in the set.
func (s fieldSet) Count() int {
	return bits.OnesCount8(uint8(s))
}

// Names returns the field names in canonical order.
func (s fieldSet) Names() []string {
	names := make([]string, 0, s.Count())
	for i, f := range indexedFields {
		if s&(1<<i) != 0 {
			names = append(names, f)
		}
	}
	return names
}

// Index holds the structures built once from a catalog: an inverted index
// (token -> component ID -> fields), a tag index and a direct ID lookup.
// It is read-only after construction.
type Index struct {
	components []domain.Component
	byID       map[string]int // component ID -> catalog position
	inverted   map[string]map[string]fieldSet
	vocabulary []string // sorted inverted index keys
	tags       map[string][]string
}

// BuildIndex indexes the catalog in order.
// It returns a *domain.ValidationError for a record with a blank or duplicate ID.
func BuildIndex(components []domain.Component) (*Index, error) {
	idx := &Index{
		components: make([]domain.Component, 0, len(components)),
		byID:       make(map[string]int, len(components)),
		inverted:   make(map[string]map[string]fieldSet),
		tags:       make(map[string][]string),
	}

	for i, c := range components {
		if strings.TrimSpace(c.ID) == "" {
			return nil, &domain.ValidationError{Index: i, Reason: "missing id"}
		}
		if first, dup := idx.byID[c.ID]; dup {
			return nil, &domain.ValidationError{
				Index:  i,
				ID:     c.ID,
				Reason: fmt.Sprintf("duplicate id, first seen at position %d", first),
			}
		}

		idx.byID[c.ID] = len(idx.components)
		idx.components = append(idx.components, c)

		idx.addField(c.ID, domain.FieldID, c.ID)
		idx.addField(c.ID, domain.FieldName, c.Name)
		idx.addField(c.ID, domain.FieldDescription, c.Description)
		idx.addField(c.ID, domain.FieldCategory, c.Category)
		for _, kw := range c.Keywords {
			idx.addField(c.ID, domain.FieldKeywords, kw)
		}

		for _, tag := range c.Tags {
			idx.tags[tag] = append(idx.tags[tag], c.ID)
		}
	}

	idx.vocabulary = make([]string, 0, len(idx.inverted))
	for tok := range idx.inverted {
		idx.vocabulary = append(idx.vocabulary, tok)
	}
	sort.Strings(idx.vocabulary)

	return idx, nil
}

func (idx *Index) addField(id, field, text string) {
	bit := fieldBit(field)
	for _, tok := range Tokenize(text) {
		postings, ok := idx.inverted[tok]
		if !ok {
			postings = make(map[string]fieldSet)
			idx.inverted[tok] = postings
		}
		postings[id] |= bit
	}
}

// Len returns the number of indexed components.
func (idx *Index) Len() int {
	return len(idx.components)
}

// VocabularySize returns the number of distinct tokens in the inverted index.
func (idx *Index) VocabularySize() int {
	return len(idx.vocabulary)
}

// Lookup returns the component with the given ID.
func (idx *Index) Lookup(id string) (domain.Component, bool) {
	pos, ok := idx.byID[id]
	if !ok {
		return domain.Component{}, false
	}
	return idx.components[pos], true
}

// Postings returns the component IDs and matched field names for a token,
// or nil if the token is not indexed.
func (idx *Index) Postings(token string) map[string][]string {
	postings, ok := idx.inverted[token]
	if !ok {
		return nil
	}
	out := make(map[string][]string, len(postings))
	for id, fs := range postings {
		out[id] = fs.Names()
	}
	return out
}

// TaggedWith returns the IDs of components carrying the tag, in catalog order.
func (idx *Index) TaggedWith(tag string) []string {
	ids := idx.tags[tag]
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}

// position returns the catalog position of an ID, used for stable tie-breaking.
func (idx *Index) position(id string) int {
	return idx.byID[id]
}
