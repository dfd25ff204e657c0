package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kerbaras/bookfinder/pkg/data"
	"github.com/kerbaras/bookfinder/pkg/utils"
)

const (
	DefaultSearchURL = "https://openlibrary.org/search.json"
	MaxResults       = 15
	Untitled         = "Untitled"

	defaultUserAgent = "bookfinder/0.1"
	defaultTimeout   = 15 * time.Second
)

// ErrEmptyQuery is returned before any request is made for a blank query.
var ErrEmptyQuery = errors.New("empty query")

var _ Source = (*OpenLibrary)(nil)

// doc is one raw entry of the search response. Pointer and nil-slice fields
// distinguish absent values from zero values.
type doc struct {
	Key              *string  `json:"key"`
	Title            *string  `json:"title"`
	TitleSuggest     *string  `json:"title_suggest"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear *int     `json:"first_publish_year"`
	Publisher        []string `json:"publisher"`
	CoverI           *int64   `json:"cover_i"`
	ISBN             []string `json:"isbn"`
}

type searchResponse struct {
	Docs *[]doc `json:"docs"`
}

func (d *doc) ToBook() data.Book {
	book := data.Book{
		FirstPublishYear: d.FirstPublishYear,
		Publishers:       d.Publisher,
		CoverID:          d.CoverI,
		ISBNs:            d.ISBN,
	}

	switch {
	case d.Key != nil:
		book.Key = *d.Key
	default:
		book.Key = uuid.NewString()
	}

	switch {
	case d.Title != nil:
		book.Title = *d.Title
	case d.TitleSuggest != nil:
		book.Title = *d.TitleSuggest
	default:
		book.Title = Untitled
	}

	if d.AuthorName != nil {
		book.AuthorNames = d.AuthorName
	} else {
		book.AuthorNames = []string{data.UnknownAuthor}
	}
	return book
}

// OpenLibrary searches the Open Library catalog.
type OpenLibrary struct {
	api       *utils.API
	client    *http.Client
	searchURL string
	userAgent string
}

type Option func(*OpenLibrary)

func WithHTTPClient(client *http.Client) Option {
	return func(o *OpenLibrary) {
		if client != nil {
			o.client = client
		}
	}
}

func WithSearchURL(searchURL string) Option {
	return func(o *OpenLibrary) {
		if trimmed := strings.TrimSpace(searchURL); trimmed != "" {
			o.searchURL = trimmed
		}
	}
}

func NewOpenLibrary(opts ...Option) *OpenLibrary {
	o := &OpenLibrary{
		client:    &http.Client{Timeout: defaultTimeout},
		searchURL: DefaultSearchURL,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.api = utils.NewAPI(o.searchURL, o.client, o.userAgent)
	return o
}

// Search looks up books by title and returns at most MaxResults normalized
// books in upstream order.
func (o *OpenLibrary) Search(ctx context.Context, query string) ([]data.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("title", query)

	var payload searchResponse
	if err := o.api.Get(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	if payload.Docs == nil {
		return nil, errors.New("decode response: missing docs")
	}

	docs := *payload.Docs
	if len(docs) > MaxResults {
		docs = docs[:MaxResults]
	}
	out := make([]data.Book, len(docs))
	for i := range docs {
		out[i] = docs[i].ToBook()
	}
	return out, nil
}
