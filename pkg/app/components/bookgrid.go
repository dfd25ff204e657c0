package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kerbaras/bookfinder/pkg/app/styles"
	"github.com/kerbaras/bookfinder/pkg/data"
)

const (
	// CardWidth is the outer width of a card, borders included.
	CardWidth = 26

	cardBorder  = 2
	cardPadding = 2
	cardText    = CardWidth - cardBorder - cardPadding
	textLines   = 2
)

// CoverFunc renders the cover of a book into a cols x rows block.
type CoverFunc func(book data.Book, cols, rows int) string

// BookGrid lays results out as cards in as many columns as fit the width.
type BookGrid struct {
	Items         []data.Book
	SelectedIndex int
	Width         int
	Height        int
	Focused       bool

	// CoverRows of zero renders text-only cards.
	CoverCols int
	CoverRows int

	offset int
}

func NewBookGrid() *BookGrid {
	return &BookGrid{
		Items:         []data.Book{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
		CoverCols:     12,
		CoverRows:     8,
	}
}

// SetItems replaces the grid contents and resets the cursor.
func (g *BookGrid) SetItems(items []data.Book) {
	g.Items = items
	g.SelectedIndex = 0
	g.offset = 0
}

func (g *BookGrid) Columns() int {
	return max(g.Width/CardWidth, 1)
}

// CardHeight is the outer height of a card, borders included.
func (g *BookGrid) CardHeight() int {
	inner := textLines
	if g.CoverRows > 0 {
		inner += g.CoverRows + 1
	}
	return inner + cardBorder
}

func (g *BookGrid) visibleRows() int {
	return max(g.Height/g.CardHeight(), 1)
}

func (g *BookGrid) Next() {
	if len(g.Items) == 0 {
		return
	}
	g.SelectedIndex++
	if g.SelectedIndex >= len(g.Items) {
		g.SelectedIndex = 0
	}
	g.scroll()
}

func (g *BookGrid) Prev() {
	if len(g.Items) == 0 {
		return
	}
	g.SelectedIndex--
	if g.SelectedIndex < 0 {
		g.SelectedIndex = len(g.Items) - 1
	}
	g.scroll()
}

// Down moves one row down, staying on the last card when the row below is short.
func (g *BookGrid) Down() {
	if len(g.Items) == 0 {
		return
	}
	g.SelectedIndex = min(g.SelectedIndex+g.Columns(), len(g.Items)-1)
	g.scroll()
}

func (g *BookGrid) Up() {
	if len(g.Items) == 0 {
		return
	}
	if g.SelectedIndex-g.Columns() >= 0 {
		g.SelectedIndex -= g.Columns()
	}
	g.scroll()
}

func (g *BookGrid) Selected() *data.Book {
	if len(g.Items) == 0 || g.SelectedIndex >= len(g.Items) {
		return nil
	}
	return &g.Items[g.SelectedIndex]
}

// CardAt maps a position relative to the grid's top-left corner to the index
// of the card drawn there.
func (g *BookGrid) CardAt(x, y int) (int, bool) {
	if x < 0 || y < 0 {
		return 0, false
	}
	col := x / CardWidth
	row := y / g.CardHeight()
	if col >= g.Columns() || row >= g.visibleRows() {
		return 0, false
	}
	index := (g.offset+row)*g.Columns() + col
	if index >= len(g.Items) {
		return 0, false
	}
	return index, true
}

// Visible returns the indexes of the cards currently drawn.
func (g *BookGrid) Visible() []int {
	cols := g.Columns()
	start := g.offset * cols
	end := min(start+g.visibleRows()*cols, len(g.Items))
	out := make([]int, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

func (g *BookGrid) scroll() {
	row := g.SelectedIndex / g.Columns()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+g.visibleRows() {
		g.offset = row - g.visibleRows() + 1
	}
}

func (g *BookGrid) View(cover CoverFunc) string {
	if len(g.Items) == 0 {
		return ""
	}
	g.scroll()

	cols := g.Columns()
	var rows []string
	var line []string
	for _, i := range g.Visible() {
		line = append(line, g.renderCard(g.Items[i], g.Focused && i == g.SelectedIndex, cover))
		if len(line) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line = nil
		}
	}
	if len(line) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return strings.Join(rows, "\n")
}

func (g *BookGrid) renderCard(book data.Book, active bool, cover CoverFunc) string {
	title := styles.CardTitleStyle.Render(truncate(book.Title, cardText))
	authors := styles.MutedStyle.Render(truncate(book.Authors(), cardText))

	parts := []string{}
	if g.CoverRows > 0 && cover != nil {
		art := cover(book, g.CoverCols, g.CoverRows)
		parts = append(parts, lipgloss.PlaceHorizontal(cardText, lipgloss.Center, art), "")
	}
	parts = append(parts, title, authors)

	return styles.CardFrame(active).
		Width(CardWidth - cardBorder).
		Height(g.CardHeight() - cardBorder).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// truncate flattens s to a single line no wider than width cells.
func truncate(s string, width int) string {
	return ansi.Truncate(strings.Join(strings.Fields(ansi.Strip(s)), " "), width, "…")
}
