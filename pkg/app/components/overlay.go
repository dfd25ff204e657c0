package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/bookfinder/pkg/app/styles"
	"github.com/kerbaras/bookfinder/pkg/data"
)

const overlayTextWidth = 40

// Overlay shows one book with its large cover, centered on the screen.
type Overlay struct {
	Width  int
	Height int

	// CoverRows of zero leaves the cover out.
	CoverCols int
	CoverRows int
}

func NewOverlay() *Overlay {
	return &Overlay{Width: 80, Height: 24, CoverCols: 24, CoverRows: 18}
}

// Resize fits the cover to the screen, keeping its 2:3 shape in cells.
func (o *Overlay) Resize(width, height int) {
	o.Width = width
	o.Height = height
	if o.CoverRows == 0 {
		return
	}
	rows := min(18, max(height-8, 4))
	o.CoverRows = rows
	o.CoverCols = rows * 4 / 3
}

// Box renders the overlay content without placing it.
func (o *Overlay) Box(book *data.Book, cover CoverFunc) string {
	if book == nil {
		return ""
	}

	text := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.TitleStyle.Render(truncate(book.Title, overlayTextWidth)),
		field("Author", book.Authors()),
		field("First Published", book.Published()),
		field("Publisher", book.Publisher()),
		"",
		styles.HelpStyle.Render("esc: close"),
	)

	content := text
	if o.CoverRows > 0 && cover != nil {
		art := cover(*book, o.CoverCols, o.CoverRows)
		content = lipgloss.JoinHorizontal(lipgloss.Top, art, "   ", text)
	}
	return styles.OverlayStyle.Render(content)
}

// View renders nothing when no book is selected.
func (o *Overlay) View(book *data.Book, cover CoverFunc) string {
	box := o.Box(book, cover)
	if box == "" {
		return ""
	}
	return lipgloss.Place(o.Width, o.Height, lipgloss.Center, lipgloss.Center, box)
}

// Contains reports whether screen position x, y falls inside the overlay box.
func (o *Overlay) Contains(x, y int, book *data.Book, cover CoverFunc) bool {
	box := o.Box(book, cover)
	if box == "" {
		return false
	}
	w, h := lipgloss.Size(box)
	left := max((o.Width-w)/2, 0)
	top := max((o.Height-h)/2, 0)
	return x >= left && x < left+w && y >= top && y < top+h
}

func field(label, value string) string {
	return styles.LabelStyle.Render(label+": ") + styles.TextStyle.Render(truncate(value, overlayTextWidth))
}
