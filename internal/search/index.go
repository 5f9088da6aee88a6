package search

import (
	"sort"
	"strings"
	"time"
)

// DefaultLimit caps Search results when the caller does not provide a
// positive limit.
const DefaultLimit = 50

// Scoring weights. Exact phrase hits dominate, token substring hits follow,
// and fuzzy matches contribute the least so typo tolerance never outranks a
// literal match.
const (
	phraseBonus      = 100.0
	phraseTitleBonus = 50.0
	tokenBonus       = 10.0
	tokenTitleBonus  = 20.0
	coverageBonus    = 25.0
	fuzzyUnitBonus   = 2.0
	recencyMaxBonus  = 5.0
	recencyDecay     = 0.1
)

// Metadata carries the per-document fields used only for scoring. Zero
// values withhold the corresponding bonus: an empty Title skips title
// bonuses and a zero UpdatedAt skips the recency bonus.
type Metadata struct {
	Title     string
	UpdatedAt time.Time
}

// document is the stored source of truth for one indexed entry. seq records
// insertion order and breaks score ties deterministically.
type document struct {
	content string
	meta    Metadata
	seq     uint64
}

// Stats reports read-only introspection over the index. Token counts are
// recomputed from stored content on demand rather than cached.
type Stats struct {
	Documents                int
	Tokens                   int
	AverageTokensPerDocument float64
}

// Index maintains an inverted token index over documents alongside a store
// of their content and metadata, and serves ranked keyword queries.
//
// The index is not safe for concurrent use. Owners that share it across
// goroutines must serialize access behind their own lock; see the index
// service. Search walks every stored document so the substring and fuzzy
// scoring stay exact, a deliberate simplicity-over-scalability tradeoff at
// note-taking scale.
type Index struct {
	docs     map[string]document
	postings map[string]map[string]struct{}
	seq      uint64

	now func() time.Time
}

// NewIndex constructs an empty index.
func NewIndex() *Index {
	return &Index{
		docs:     make(map[string]document),
		postings: make(map[string]map[string]struct{}),
		now:      time.Now,
	}
}

// Add stores content and metadata under id and indexes every token of the
// content. Re-adding an existing id first removes its stale postings, so Add
// is safe to use for edits without an explicit Remove.
func (ix *Index) Add(id, content string, meta Metadata) {
	if _, exists := ix.docs[id]; exists {
		ix.Remove(id)
	}

	ix.seq++
	ix.docs[id] = document{content: content, meta: meta, seq: ix.seq}

	for _, token := range Tokenize(content) {
		set, ok := ix.postings[token]
		if !ok {
			set = make(map[string]struct{})
			ix.postings[token] = set
		}
		set[id] = struct{}{}
	}
}

// Remove deletes id from the document store and from every posting set its
// content produced. Empty posting sets are dropped so dead tokens do not
// accumulate. Unknown ids are ignored.
func (ix *Index) Remove(id string) {
	doc, ok := ix.docs[id]
	if !ok {
		return
	}

	for _, token := range Tokenize(doc.content) {
		set, ok := ix.postings[token]
		if !ok {
			continue
		}
		delete(set, id)
		if len(set) == 0 {
			delete(ix.postings, token)
		}
	}

	delete(ix.docs, id)
}

// Clear empties the index and the document store.
func (ix *Index) Clear() {
	ix.docs = make(map[string]document)
	ix.postings = make(map[string]map[string]struct{})
}

// Has reports whether id is currently stored.
func (ix *Index) Has(id string) bool {
	_, ok := ix.docs[id]
	return ok
}

// Len returns the number of stored documents.
func (ix *Index) Len() int {
	return len(ix.docs)
}

type candidate struct {
	id    string
	score float64
	seq   uint64
}

// Search evaluates query against every stored document and returns up to
// limit document ids ordered by descending score. Documents scoring zero are
// excluded. An empty or whitespace-only query returns no results rather than
// every document.
func (ix *Index) Search(query string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	loweredQuery := strings.ToLower(strings.TrimSpace(query))
	if loweredQuery == "" {
		return nil
	}

	queryTokens := Tokenize(query)
	now := ix.now()

	candidates := make([]candidate, 0)
	for id, doc := range ix.docs {
		score := ix.score(doc, loweredQuery, queryTokens, now)
		if score <= 0 {
			continue
		}
		candidates = append(candidates, candidate{id: id, score: score, seq: doc.seq})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].seq < candidates[j].seq
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.id
	}
	return ids
}

func (ix *Index) score(doc document, loweredQuery string, queryTokens []string, now time.Time) float64 {
	loweredContent := strings.ToLower(doc.content)
	loweredTitle := strings.ToLower(doc.meta.Title)

	var score float64

	if strings.Contains(loweredContent, loweredQuery) {
		score += phraseBonus
		if loweredTitle != "" && strings.Contains(loweredTitle, loweredQuery) {
			score += phraseTitleBonus
		}
	}

	allTokensFound := len(queryTokens) > 0
	for _, token := range queryTokens {
		if strings.Contains(loweredContent, token) {
			score += tokenBonus
			if loweredTitle != "" && strings.Contains(loweredTitle, token) {
				score += tokenTitleBonus
			}
		} else {
			allTokensFound = false
		}
	}
	if allTokensFound {
		score += coverageBonus
	}

	words := strings.Fields(loweredContent)
	var fuzzyCount float64
	for _, token := range queryTokens {
		for _, word := range words {
			fuzzyCount += fuzzyWeight(token, word)
		}
	}
	score += fuzzyCount * fuzzyUnitBonus

	if !doc.meta.UpdatedAt.IsZero() {
		ageDays := now.Sub(doc.meta.UpdatedAt).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		if bonus := recencyMaxBonus - recencyDecay*ageDays; bonus > 0 {
			score += bonus
		}
	}

	return score
}

// Stats recounts documents and distinct tokens. The per-document token mean
// is derived by retokenizing stored content rather than from a cached count.
func (ix *Index) Stats() Stats {
	stats := Stats{
		Documents: len(ix.docs),
		Tokens:    len(ix.postings),
	}

	if len(ix.docs) == 0 {
		return stats
	}

	total := 0
	for _, doc := range ix.docs {
		total += len(Tokenize(doc.content))
	}
	stats.AverageTokensPerDocument = float64(total) / float64(len(ix.docs))

	return stats
}
