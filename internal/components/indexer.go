package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/cjk"
	"github.com/blevesearch/bleve/v2/mapping"
	blevesearch "github.com/blevesearch/bleve/v2/search"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/sha1n/mcp-widget-catalog/internal/domain"
	"github.com/sha1n/mcp-widget-catalog/internal/search"
)

const (
	// fieldNameTerms holds the name and id split on dots and underscores, so
	// "st.text_input" is searchable by "text" and "input".
	fieldNameTerms = "name_terms"

	nameBoost     = 3.0
	keywordsBoost = 2.0

	// MaxBatchSize is the maximum number of documents per batch
	MaxBatchSize = 100
)

var nameSplitter = strings.NewReplacer(".", " ", "_", " ", "-", " ")

// markReplacer turns bleve's html highlight markers into the markdown emphasis used elsewhere.
var markReplacer = strings.NewReplacer("<mark>", "**", "</mark>", "**")

// fullTextDocument is the bleve representation of a component.
type fullTextDocument struct {
	Name        string   `json:"name"`
	NameTerms   string   `json:"name_terms"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func newFullTextDocument(c domain.Component) fullTextDocument {
	return fullTextDocument{
		Name:        c.Name,
		NameTerms:   nameSplitter.Replace(c.Name + " " + c.ID),
		Description: c.Description,
		Keywords:    c.Keywords,
		Category:    c.Category,
		Tags:        c.Tags,
	}
}

// FullTextIndex is an in-memory bleve index over a catalog. It complements the
// token engine with relevance-ranked search and analyzer-based CJK matching.
type FullTextIndex struct {
	index bleve.Index
}

// CreateIndexMapping creates the bleve index mapping for component documents.
func CreateIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Analysed text fields, stored for display and highlighting
	for _, field := range []string{domain.FieldName, domain.FieldDescription} {
		textField := bleve.NewTextFieldMapping()
		textField.Analyzer = cjk.AnalyzerName
		textField.Store = true
		textField.IncludeTermVectors = true
		docMapping.AddFieldMappingsAt(field, textField)
	}

	// Analysed, search only
	for _, field := range []string{fieldNameTerms, domain.FieldKeywords} {
		textField := bleve.NewTextFieldMapping()
		textField.Analyzer = cjk.AnalyzerName
		textField.Store = false
		textField.IncludeTermVectors = true
		docMapping.AddFieldMappingsAt(field, textField)
	}

	// Category - keyword, stored for display
	categoryField := bleve.NewTextFieldMapping()
	categoryField.Analyzer = keyword.Name
	categoryField.Store = true
	docMapping.AddFieldMappingsAt(domain.FieldCategory, categoryField)

	// Tags - keyword, filter only
	tagsField := bleve.NewTextFieldMapping()
	tagsField.Analyzer = keyword.Name
	tagsField.Store = false
	docMapping.AddFieldMappingsAt(domain.FieldTags, tagsField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = cjk.AnalyzerName

	return indexMapping
}

// NewFullTextIndex builds an in-memory index of the components.
func NewFullTextIndex(components []domain.Component) (*FullTextIndex, error) {
	index, err := bleve.NewMemOnly(CreateIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create full-text index: %w", err)
	}

	batch := index.NewBatch()
	for _, c := range components {
		if err := batch.Index(c.ID, newFullTextDocument(c)); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("failed to index component %s: %w", c.ID, err)
		}

		// Flush batch if needed
		if batch.Size() >= MaxBatchSize {
			if err := index.Batch(batch); err != nil {
				_ = index.Close()
				return nil, fmt.Errorf("batch index failed: %w", err)
			}
			batch = index.NewBatch()
		}
	}

	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			_ = index.Close()
			return nil, fmt.Errorf("final batch index failed: %w", err)
		}
	}

	return &FullTextIndex{index: index}, nil
}

// DocCount returns the number of indexed components.
func (f *FullTextIndex) DocCount() (uint64, error) {
	return f.index.DocCount()
}

// Search runs a relevance-ranked query. The request mode is ignored; the
// category and tag filters have the same meaning as in the token engine.
func (f *FullTextIndex) Search(ctx context.Context, req search.Request) ([]domain.SearchResult, error) {
	if strings.TrimSpace(req.Query) == "" || req.Limit <= 0 {
		return []domain.SearchResult{}, nil
	}

	searchReq := bleve.NewSearchRequest(buildFullTextQuery(req))
	searchReq.Size = req.Limit
	searchReq.Fields = []string{domain.FieldName, domain.FieldCategory, domain.FieldDescription}
	searchReq.IncludeLocations = true
	searchReq.Highlight = bleve.NewHighlight()
	searchReq.Highlight.AddField(domain.FieldName)
	searchReq.Highlight.AddField(domain.FieldDescription)

	res, err := f.index.SearchInContext(ctx, searchReq)
	if err != nil {
		return nil, fmt.Errorf("full-text search failed: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r := domain.SearchResult{
			ComponentID:   hit.ID,
			Name:          stringField(hit.Fields, domain.FieldName),
			Category:      stringField(hit.Fields, domain.FieldCategory),
			Description:   stringField(hit.Fields, domain.FieldDescription),
			Score:         hit.Score,
			MatchedFields: matchedFields(hit.Locations),
		}

		for field, fragments := range hit.Fragments {
			if len(fragments) == 0 {
				continue
			}
			if r.Highlights == nil {
				r.Highlights = make(map[string]string)
			}
			r.Highlights[field] = markReplacer.Replace(fragments[0])
		}

		results = append(results, r)
	}

	return results, nil
}

// Close releases the index.
func (f *FullTextIndex) Close() error {
	if err := f.index.Close(); err != nil {
		return fmt.Errorf("failed to close full-text index: %w", err)
	}
	return nil
}

// buildFullTextQuery constructs a bleve query from a search request.
func buildFullTextQuery(req search.Request) query.Query {
	nameQuery := bleve.NewMatchQuery(req.Query)
	nameQuery.SetField(fieldNameTerms)
	nameQuery.SetBoost(nameBoost)

	keywordsQuery := bleve.NewMatchQuery(req.Query)
	keywordsQuery.SetField(domain.FieldKeywords)
	keywordsQuery.SetBoost(keywordsBoost)

	descriptionQuery := bleve.NewMatchQuery(req.Query)
	descriptionQuery.SetField(domain.FieldDescription)

	// Combined search query (Disjunction - OR)
	searchQuery := bleve.NewDisjunctionQuery(nameQuery, keywordsQuery, descriptionQuery)

	// If no filters, return search query directly
	if req.Category == "" && len(req.Tags) == 0 {
		return searchQuery
	}

	// Build conjunction query with filters
	must := []query.Query{searchQuery}

	if req.Category != "" {
		categoryQuery := bleve.NewTermQuery(req.Category)
		categoryQuery.SetField(domain.FieldCategory)
		must = append(must, categoryQuery)
	}

	if len(req.Tags) > 0 {
		tagQueries := make([]query.Query, 0, len(req.Tags))
		for _, tag := range req.Tags {
			tagQuery := bleve.NewTermQuery(tag)
			tagQuery.SetField(domain.FieldTags)
			tagQueries = append(tagQueries, tagQuery)
		}
		must = append(must, bleve.NewDisjunctionQuery(tagQueries...))
	}

	return bleve.NewConjunctionQuery(must...)
}

// matchedFields maps bleve hit locations to the catalog field names, in canonical order.
func matchedFields(locations blevesearch.FieldTermLocationMap) []string {
	hit := make(map[string]bool, len(locations))
	for field := range locations {
		if field == fieldNameTerms {
			field = domain.FieldName
		}
		hit[field] = true
	}

	var fields []string
	for _, field := range []string{domain.FieldName, domain.FieldDescription, domain.FieldKeywords} {
		if hit[field] {
			fields = append(fields, field)
		}
	}
	return fields
}

func stringField(fields map[string]interface{}, name string) string {
	if val, ok := fields[name].(string); ok {
		return val
	}
	return ""
}
