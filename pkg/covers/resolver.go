package covers

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kerbaras/bookfinder/pkg/data"
)

// Size is the image variant suffix understood by the covers host.
type Size string

const (
	Small  Size = "S"
	Medium Size = "M"
	Large  Size = "L"
)

// Class says where a cover is displayed.
type Class int

const (
	Grid Class = iota
	Detail
)

func (c Class) Size() Size {
	if c == Detail {
		return Large
	}
	return Medium
}

func (c Class) String() string {
	if c == Detail {
		return "detail"
	}
	return "grid"
}

const (
	DefaultBaseURL           = "https://covers.openlibrary.org"
	DefaultGridPlaceholder   = "https://via.placeholder.com/150x200?text=No+Cover"
	DefaultDetailPlaceholder = "https://via.placeholder.com/300x400?text=No+Cover"
)

// Resolver maps books to cover image URLs.
type Resolver struct {
	baseURL      string
	placeholders [2]string
}

// NewResolver builds a Resolver. Empty arguments fall back to the Open Library defaults.
func NewResolver(baseURL, gridPlaceholder, detailPlaceholder string) Resolver {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(gridPlaceholder) == "" {
		gridPlaceholder = DefaultGridPlaceholder
	}
	if strings.TrimSpace(detailPlaceholder) == "" {
		detailPlaceholder = DefaultDetailPlaceholder
	}
	return Resolver{baseURL: baseURL, placeholders: [2]string{gridPlaceholder, detailPlaceholder}}
}

// DefaultResolver points at covers.openlibrary.org.
func DefaultResolver() Resolver {
	return NewResolver("", "", "")
}

// URL picks the cover id, then the first ISBN, then the placeholder for the class.
func (r Resolver) URL(book data.Book, class Class) string {
	if r.baseURL == "" {
		r = DefaultResolver()
	}
	if book.CoverID != nil {
		return fmt.Sprintf("%s/b/id/%d-%s.jpg", r.baseURL, *book.CoverID, class.Size())
	}
	if isbn, ok := book.FirstISBN(); ok {
		return fmt.Sprintf("%s/b/isbn/%s-%s.jpg", r.baseURL, url.PathEscape(isbn), class.Size())
	}
	return r.Placeholder(class)
}

// Placeholder returns the fixed no-cover image for the class.
func (r Resolver) Placeholder(class Class) string {
	if r.baseURL == "" {
		r = DefaultResolver()
	}
	if class == Detail {
		return r.placeholders[1]
	}
	return r.placeholders[0]
}
