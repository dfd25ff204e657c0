// Package state holds the controller state of the search screen and the
// reducer that is the only place it changes.
package state

import (
	"strings"

	"github.com/kerbaras/bookfinder/pkg/data"
)

// State is the full controller state. The zero value is the initial state:
// empty query, no results, nothing selected.
type State struct {
	Query    string
	Results  []data.Book
	Selected *data.Book

	// seq numbers submitted searches; only the latest may land.
	seq uint64
}

// SearchRequest is the effect of a submit: the caller runs the search and
// feeds the outcome back as SearchCompleted with the same Seq.
type SearchRequest struct {
	Seq   uint64
	Query string
}

// Event is an input to Reduce.
type Event interface {
	event()
}

type QueryChanged struct{ Text string }

type Submitted struct{}

type SearchCompleted struct {
	Seq   uint64
	Books []data.Book
	Err   error
}

type CardClicked struct{ Book data.Book }

type OverlayClosed struct{}

func (QueryChanged) event()    {}
func (Submitted) event()       {}
func (SearchCompleted) event() {}
func (CardClicked) event()     {}
func (OverlayClosed) event()   {}

// Reduce applies ev to s. The returned request is non-nil only when a search
// has to be started.
func Reduce(s State, ev Event) (State, *SearchRequest) {
	switch ev := ev.(type) {
	case QueryChanged:
		s.Query = ev.Text

	case Submitted:
		if strings.TrimSpace(s.Query) == "" {
			return s, nil
		}
		s.seq++
		return s, &SearchRequest{Seq: s.seq, Query: s.Query}

	case SearchCompleted:
		if ev.Seq != s.seq || ev.Err != nil {
			return s, nil
		}
		s.Results = cloneBooks(ev.Books)

	case CardClicked:
		book := ev.Book
		s.Selected = &book

	case OverlayClosed:
		s.Selected = nil
	}
	return s, nil
}

// Latest reports the sequence number of the most recent submitted search.
func (s State) Latest() uint64 {
	return s.seq
}

// IsStale reports whether a completion for seq would be ignored.
func (s State) IsStale(seq uint64) bool {
	return seq != s.seq
}

func cloneBooks(books []data.Book) []data.Book {
	if len(books) == 0 {
		return []data.Book{}
	}
	dup := make([]data.Book, len(books))
	copy(dup, books)
	return dup
}
