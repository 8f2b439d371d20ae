package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qyinm/pullshop/types"
)

// ProductDelegate is a custom list delegate for rendering Product items
type ProductDelegate struct{}

// Height returns the height of a list item (2 lines)
func (d ProductDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between list items
func (d ProductDelegate) Spacing() int {
	return 1
}

// Update handles updates for the delegate (no-op for products)
func (d ProductDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single product item
func (d ProductDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	product, ok := item.(types.Product)
	if !ok {
		return
	}
	isSelected := index == m.Index()

	// Line 1: Glyph + Name ........ ¥Price
	priceStr := "¥" + product.PriceText()
	nameStr := product.Glyph() + "  " + product.Name()

	available := m.Width() - lipgloss.Width(priceStr) - 1
	if available < 0 {
		available = 0
	}
	nameStr = fitWidth(nameStr, available)

	nameStyle := ProductNameStyle
	if isSelected {
		nameStyle = ProductSelectedStyle
	}
	line1 := nameStyle.Render(nameStr) + " " + ProductPriceStyle.Render(priceStr)

	// Line 2: id (indented, dimmed)
	line2 := "    " + ProductMetaStyle.Render(fmt.Sprintf("#%d", product.ID()))

	fmt.Fprint(w, line1+"\n"+line2)
}

// fitWidth truncates s with an ellipsis or pads it to exactly width cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s + strings.Repeat(" ", width-lipgloss.Width(s))
	}
	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width-1 {
			break
		}
		b.WriteRune(r)
	}
	out := b.String() + "…"
	return out + strings.Repeat(" ", width-lipgloss.Width(out))
}
