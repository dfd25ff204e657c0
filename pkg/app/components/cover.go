package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/bookfinder/pkg/app/styles"
	"github.com/kerbaras/bookfinder/pkg/covers"
	"github.com/kerbaras/bookfinder/pkg/data"
)

type CoverStatus int

const (
	CoverLoading CoverStatus = iota
	CoverReady
	CoverFailed
)

// Cover is the image slot of one card or of the overlay. It tracks which URL
// is being shown and falls back to the placeholder at most once.
type Cover struct {
	Class  covers.Class
	URL    string
	Art    string
	Status CoverStatus

	placeholder string
	fellBack    bool
}

func NewCover(resolver covers.Resolver, book data.Book, class covers.Class) *Cover {
	c := &Cover{
		Class:       class,
		URL:         resolver.URL(book, class),
		placeholder: resolver.Placeholder(class),
	}
	// Nothing left to swap to when the placeholder is the first choice.
	c.fellBack = c.URL == c.placeholder
	return c
}

// Loaded records art for url. Results for a URL the slot no longer shows are dropped.
func (c *Cover) Loaded(url, art string) bool {
	if url != c.URL || c.Status == CoverFailed {
		return false
	}
	c.Art = art
	c.Status = CoverReady
	return true
}

// Failed handles a load error for url. It returns the placeholder URL to load
// next the first time, and false once the fallback is spent.
func (c *Cover) Failed(url string) (string, bool) {
	if url != c.URL || c.Status != CoverLoading {
		return "", false
	}
	if c.fellBack {
		c.Status = CoverFailed
		return "", false
	}
	c.fellBack = true
	c.URL = c.placeholder
	return c.URL, true
}

// FellBack reports whether the slot switched to the placeholder.
func (c *Cover) FellBack() bool {
	return c.fellBack
}

func (c *Cover) View(cols, rows int) string {
	if c != nil && c.Status == CoverReady {
		return c.Art
	}
	text := "No Cover"
	if c != nil && c.Status == CoverLoading {
		text = "…"
	}
	// The frame border takes two cells in each direction.
	return styles.NoCoverStyle.
		Width(max(cols-2, 1)).
		Height(max(rows-2, 1)).
		Render(lipgloss.NewStyle().MaxWidth(max(cols-2, 1)).Render(text))
}
