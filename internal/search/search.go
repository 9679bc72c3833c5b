// Package search ranks known people against interactive queries.
package search

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kettleby/dossier/internal/match"
	"github.com/kettleby/dossier/internal/person"
)

const (
	// minScore filters out noise matches.
	minScore = 0.1
	// newPersonScore ranks the synthetic candidate above weak fuzzy
	// matches but below any real partial match at 0.6 or higher.
	newPersonScore = 0.5
	// maxResults caps the result list for interactive display.
	maxResults = 10
)

// Result is one ranked candidate for a query. A synthetic candidate
// represents a person that does not exist yet.
type Result struct {
	Person      person.PersonRecord
	IsNewPerson bool
	MatchScore  float64
}

// Searcher ranks the people index. The one-entry query cache serves
// repeated renders of the same query; it is owned by a single logical
// flow and needs no locking.
type Searcher struct {
	index *person.Index

	lastQuery   string
	lastResults []Result
	cached      bool
}

func New(index *person.Index) *Searcher {
	return &Searcher{index: index}
}

// Search returns candidates for query, descending by score, at most
// ten. A query that trims to nothing yields no results, not even the
// synthetic candidate.
func (s *Searcher) Search(query string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}

	if s.cached && s.lastQuery == trimmed {
		return s.lastResults, nil
	}

	people, err := s.index.People()
	if err != nil {
		return nil, err
	}

	var results []Result
	exactExists := false
	for _, p := range people {
		if strings.EqualFold(p.Name, trimmed) || strings.EqualFold(p.NormalizedName, trimmed) {
			exactExists = true
		}

		score := match.Score(p.Name, trimmed)
		if score > minScore {
			results = append(results, Result{Person: p, MatchScore: score})
		}
	}

	if !exactExists {
		results = append(results, Result{
			Person:      s.index.Record(trimmed),
			IsNewPerson: true,
			MatchScore:  newPersonScore,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	if len(results) > maxResults {
		results = results[:maxResults]
	}

	s.lastQuery = trimmed
	s.lastResults = results
	s.cached = true

	return results, nil
}

// Invalidate drops the query cache. Callers invoke it when the
// underlying directory may have changed, e.g. after creating a person.
func (s *Searcher) Invalidate() {
	s.cached = false
	s.lastQuery = ""
	s.lastResults = nil
}

// Outcome is delivered by Async searches.
type Outcome struct {
	Query   string
	Results []Result
	Err     error
}

// Async wraps a Searcher with cancellation-by-superseding: each new
// query invalidates the previous pending one, so only the latest
// query's outcome is ever delivered.
type Async struct {
	searcher *Searcher
	mu       sync.Mutex
	gen      atomic.Uint64
}

func NewAsync(searcher *Searcher) *Async {
	return &Async{searcher: searcher}
}

// Search runs the query in the background and delivers its outcome
// unless a newer Search call has superseded it. Delivery happens on the
// background goroutine. Queries are serialized so the wrapped Searcher
// stays single-flow.
func (a *Async) Search(query string, deliver func(Outcome)) {
	mine := a.gen.Add(1)

	go func() {
		a.mu.Lock()
		results, err := a.searcher.Search(query)
		a.mu.Unlock()

		if a.gen.Load() != mine {
			return
		}
		deliver(Outcome{Query: query, Results: results, Err: err})
	}()
}
