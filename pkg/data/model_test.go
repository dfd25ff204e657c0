package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestBookAuthors(t *testing.T) {
	book := Book{AuthorNames: []string{"Terry Pratchett", "Neil Gaiman"}}
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", book.Authors())

	assert.Equal(t, "Unknown", Book{}.Authors())
	assert.Equal(t, "Unknown", Book{AuthorNames: []string{}}.Authors())
}

func TestBookPublished(t *testing.T) {
	assert.Equal(t, "1965", Book{FirstPublishYear: intPtr(1965)}.Published())
	assert.Equal(t, "N/A", Book{}.Published())
	assert.Equal(t, "N/A", Book{FirstPublishYear: intPtr(0)}.Published())
}

func TestBookPublisher(t *testing.T) {
	book := Book{Publishers: []string{"Chilton Books", "Ace"}}
	assert.Equal(t, "Chilton Books", book.Publisher())
	assert.Equal(t, "N/A", Book{}.Publisher())
}

func TestBookFirstISBN(t *testing.T) {
	isbn, ok := Book{ISBNs: []string{"9780441013593", "0441013597"}}.FirstISBN()
	assert.True(t, ok)
	assert.Equal(t, "9780441013593", isbn)

	_, ok = Book{}.FirstISBN()
	assert.False(t, ok)
}
