package covers

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

const halfBlock = "▀"

// Render draws img into a cols x rows block using upper half blocks, so every
// cell carries two vertically stacked pixels. The image keeps its aspect ratio
// and is centered; unused cells are blank.
func Render(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	w, h := fitDimensions(img.Bounds().Dx(), img.Bounds().Dy(), cols, rows*2)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)

	offX := (cols - w) / 2
	offY := (rows*2 - h) / 2
	// Keep pixel pairs aligned to cells.
	offY -= offY % 2

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			x := col - offX
			top, topOK := pixelAt(scaled, x, row*2-offY)
			bottom, bottomOK := pixelAt(scaled, x, row*2+1-offY)
			b.WriteString(cell(top, topOK, bottom, bottomOK))
		}
	}
	return b.String()
}

func cell(top color.Color, topOK bool, bottom color.Color, bottomOK bool) string {
	switch {
	case topOK && bottomOK:
		return lipgloss.NewStyle().Foreground(hex(top)).Background(hex(bottom)).Render(halfBlock)
	case topOK:
		return lipgloss.NewStyle().Foreground(hex(top)).Render(halfBlock)
	case bottomOK:
		return lipgloss.NewStyle().Foreground(hex(bottom)).Render("▄")
	default:
		return " "
	}
}

func pixelAt(img *image.RGBA, x, y int) (color.Color, bool) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return nil, false
	}
	return img.At(x, y), true
}

func hex(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// fitDimensions scales width x height to fit inside maxW x maxH, keeping the aspect ratio.
func fitDimensions(width, height, maxW, maxH int) (int, int) {
	if width <= 0 || height <= 0 {
		return maxW, maxH
	}

	w, h := maxW, maxH
	if width*maxH <= height*maxW {
		w = width * maxH / height
	} else {
		h = height * maxW / width
	}
	return max(w, 1), max(h, 1)
}
