package sources

import (
	"context"

	"github.com/kerbaras/bookfinder/pkg/data"
)

// Source looks books up by title.
type Source interface {
	Search(ctx context.Context, query string) ([]data.Book, error)
}
