package tui

import (
	"fmt"
	"strings"

	"github.com/glowify/storefront/internal/domain"
	"github.com/glowify/storefront/internal/textutil"
)

// View renders the current view
func (m Model) View() string {
	if m.quitting {
		return "Sampai jumpa!\n"
	}

	var body string
	switch m.view {
	case ViewProducts:
		body = m.productsView()
	case ViewCart:
		body = m.cartView()
	case ViewAuth:
		body = m.authView()
	case ViewChat:
		body = m.chatPanelView()
	case ViewHelp:
		body = m.helpView()
	}

	return body + "\n" + m.statusBar()
}

func (m Model) productsView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("✨ Glowify") + "\n\n")

	if m.loading && len(m.products) == 0 {
		sb.WriteString(fmt.Sprintf("  %s Memuat produk...\n", m.spinner.View()))
		return sb.String()
	}

	if len(m.products) == 0 {
		sb.WriteString(infoStyle.Render("  Tidak ada produk. Tekan 'r' untuk memuat ulang.") + "\n")
	}

	for i, p := range m.products {
		cursor := "  "
		title := textutil.TruncateRunes(p.Title, 36)
		line := fmt.Sprintf("%-36s %s", title, priceStyle.Render(m.money.Format(p.Price)))
		if i == m.cursor {
			cursor = "> "
			line = selectedStyle.Render(fmt.Sprintf("%-36s", title)) + " " + priceStyle.Render(m.money.Format(p.Price))
		}
		sb.WriteString(cursor + line + "\n")
		if i == m.cursor && p.Description != "" {
			sb.WriteString("    " + infoStyle.Render(textutil.TruncateRunes(p.Description, 70)) + "\n")
		}
	}

	if m.loading {
		sb.WriteString(fmt.Sprintf("\n  %s\n", m.spinner.View()))
	}

	sb.WriteString(helpStyle.Render("  enter: tambah ke keranjang • c: keranjang • t: tanya • l: masuk/keluar • q: keluar aplikasi"))
	return sb.String()
}

func (m Model) cartView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("🛒 Keranjang") + "\n\n")

	if m.cart.Empty() {
		sb.WriteString(infoStyle.Render("  Keranjang kosong") + "\n")
	} else {
		for _, line := range m.cart.Items {
			sb.WriteString(fmt.Sprintf("  %-32s %d x %-16s %s\n",
				textutil.TruncateRunes(line.Title, 32),
				line.Quantity,
				m.money.Format(line.Price),
				priceStyle.Render(m.money.Format(line.Subtotal))))
		}
		sb.WriteString("\n  " + strings.Repeat("─", 58) + "\n")
		sb.WriteString(fmt.Sprintf("  %-32s %s\n", "Total", priceStyle.Bold(true).Render(m.money.Format(m.cart.Total))))
	}

	if m.loading {
		sb.WriteString(fmt.Sprintf("\n  %s Memproses...\n", m.spinner.View()))
	}

	sb.WriteString(helpStyle.Render("  x: checkout • esc: kembali"))
	return sb.String()
}

func (m Model) authView() string {
	var sb strings.Builder

	heading := "Masuk"
	if m.authRegister {
		heading = "Daftar"
	}
	sb.WriteString(titleStyle.Render(heading) + "\n\n")

	var form strings.Builder
	if m.authRegister {
		form.WriteString(m.authInputs[authFieldName].View() + "\n")
	}
	form.WriteString(m.authInputs[authFieldEmail].View() + "\n")
	form.WriteString(m.authInputs[authFieldPassword].View())

	sb.WriteString(boxStyle.Render(form.String()) + "\n")

	if m.loading {
		sb.WriteString(fmt.Sprintf("\n  %s\n", m.spinner.View()))
	}

	toggle := "ctrl+r: belum punya akun? daftar"
	if m.authRegister {
		toggle = "ctrl+r: sudah punya akun? masuk"
	}
	sb.WriteString(helpStyle.Render("  enter: kirim • tab: pindah kolom • " + toggle + " • esc: batal"))
	return sb.String()
}

func (m Model) chatPanelView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("💬 Tanya Glowify") + "\n\n")
	sb.WriteString(m.chatView.View() + "\n\n")
	sb.WriteString(m.chatInput.View() + "\n")

	if m.loading {
		sb.WriteString(fmt.Sprintf("  %s Menunggu jawaban...\n", m.spinner.View()))
	}

	sb.WriteString(helpStyle.Render("  enter: kirim • esc: kembali"))
	return sb.String()
}

func (m Model) helpView() string {
	help := `Navigasi

  ↑/k, ↓/j   pilih produk
  enter/a    tambah ke keranjang
  c          buka/tutup keranjang
  x          checkout
  t          tanya asisten
  l          masuk / keluar akun
  r          muat ulang produk
  q          keluar aplikasi

Tekan tombol apa saja untuk kembali.`
	return titleStyle.Render("Bantuan") + "\n\n" + help
}

func (m *Model) refreshChatView() {
	var sb strings.Builder
	width := m.chatView.Width
	if width <= 0 {
		width = 70
	}

	for _, msg := range m.assistant.Messages() {
		text := textutil.WordWrap(msg.Text, width-6)
		if msg.Role == domain.RoleBot {
			sb.WriteString(botStyle.Render("Glowify: ") + text + "\n\n")
		} else {
			sb.WriteString(selectedStyle.Render("Kamu: ") + text + "\n\n")
		}
	}

	m.chatView.SetContent(sb.String())
	m.chatView.GotoBottom()
}

func (m Model) statusBar() string {
	who := "tamu"
	if m.identity != nil {
		who = m.identity.Email
	}

	parts := []string{who, fmt.Sprintf("keranjang: %s", m.money.Format(m.cart.Total))}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	if m.errText != "" {
		parts = append(parts, errorStyle.Render(m.errText))
	}

	return statusBarStyle.Width(max(m.width, 60)).Render(strings.Join(parts, "  •  "))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
