package data

import (
	"strconv"
	"strings"
)

// Book is a normalized search result. Treat it as read-only once built.
type Book struct {
	Key              string
	Title            string
	AuthorNames      []string
	FirstPublishYear *int
	Publishers       []string
	CoverID          *int64
	ISBNs            []string
}

const (
	UnknownAuthor = "Unknown"
	notAvailable  = "N/A"
)

// Authors joins the author names for display.
func (b Book) Authors() string {
	joined := strings.Join(b.AuthorNames, ", ")
	if joined == "" {
		return UnknownAuthor
	}
	return joined
}

func (b Book) Published() string {
	if b.FirstPublishYear == nil || *b.FirstPublishYear == 0 {
		return notAvailable
	}
	return strconv.Itoa(*b.FirstPublishYear)
}

// Publisher returns the first listed publisher.
func (b Book) Publisher() string {
	if len(b.Publishers) == 0 || b.Publishers[0] == "" {
		return notAvailable
	}
	return b.Publishers[0]
}

// FirstISBN returns the ISBN used for cover lookups, if any.
func (b Book) FirstISBN() (string, bool) {
	if len(b.ISBNs) == 0 {
		return "", false
	}
	return b.ISBNs[0], true
}
