// Package render provides output formatting for CLI commands.
// Separates presentation from flow logic.
package render

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/glowify/storefront/internal/domain"
	"github.com/glowify/storefront/internal/money"
	"github.com/glowify/storefront/internal/textutil"
)

// Renderer handles terminal output formatting.
type Renderer struct {
	pretty bool
	fmt    *money.Formatter
}

// New creates a renderer. Pretty mode adds color and rules; plain mode is
// for pipes and NO_COLOR environments.
func New(pretty bool, locale string) *Renderer {
	return &Renderer{pretty: pretty, fmt: money.New(locale)}
}

// Products formats the catalog listing.
func (r *Renderer) Products(products []domain.Product) string {
	if len(products) == 0 {
		return "No products available"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.MagentaString("Produk Unggulan\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, p := range products {
		r.formatProduct(&sb, p)
	}

	return sb.String()
}

func (r *Renderer) formatProduct(sb *strings.Builder, p domain.Product) {
	price := r.fmt.Format(p.Price)
	if r.pretty {
		fmt.Fprintf(sb, "%4d  %-30s %s\n", p.ID, textutil.Truncate(p.Title, 30), color.GreenString(price))
		if p.Description != "" {
			fmt.Fprintf(sb, "      %s\n", color.HiBlackString(textutil.Truncate(p.Description, 70)))
		}
		return
	}
	fmt.Fprintf(sb, "%d\t%s\t%s\n", p.ID, p.Title, price)
}

// Cart formats a cart snapshot with the server-computed total.
func (r *Renderer) Cart(snap domain.CartSnapshot) string {
	if snap.Empty() {
		return "Keranjang kosong"
	}

	var sb strings.Builder

	if r.pretty {
		sb.WriteString(color.MagentaString("Keranjang\n"))
		sb.WriteString(strings.Repeat("─", 60) + "\n")
	}

	for _, line := range snap.Items {
		qty := fmt.Sprintf("%d x %s", line.Quantity, r.fmt.Format(line.Price))
		if r.pretty {
			fmt.Fprintf(&sb, "%-30s %-24s %s\n",
				textutil.Truncate(line.Title, 30), qty, color.GreenString(r.fmt.Format(line.Subtotal)))
		} else {
			fmt.Fprintf(&sb, "%s\t%s\t%s\n", line.Title, qty, r.fmt.Format(line.Subtotal))
		}
	}

	if r.pretty {
		sb.WriteString(strings.Repeat("─", 60) + "\n")
		fmt.Fprintf(&sb, "%-30s %s\n", "Total", color.New(color.Bold).Sprint(r.fmt.Format(snap.Total)))
	} else {
		fmt.Fprintf(&sb, "Total\t%s\n", r.fmt.Format(snap.Total))
	}

	return sb.String()
}

// Answer formats an assistant reply, wrapped for the terminal.
func (r *Renderer) Answer(text string, width int) string {
	wrapped := textutil.WordWrap(text, width)
	if r.pretty {
		return color.CyanString(wrapped)
	}
	return wrapped
}
