package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/appengine-ltd/bundle-forge/internal/craft"
	"github.com/appengine-ltd/bundle-forge/internal/ingredient"
	"github.com/appengine-ltd/bundle-forge/internal/item"
)

// --- Styles (retro green) ---
var (
	green       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	brightGreen = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimGreen    = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	amber       = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	border      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	highlighted = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
)

const rule = "----------------------------------------"

func itemLabel(it *item.Item) string {
	if it == nil {
		return "-"
	}
	label := it.String()
	if it.Quality > 0 {
		label += fmt.Sprintf(" *%d", it.Quality)
	}
	if n := it.TotalForgeLevels(); n > 0 {
		label += fmt.Sprintf(" +%d", n)
	}
	return label
}

func money(n int) string {
	return fmt.Sprintf("%dg", n)
}

func (m model) reqLabel(r ingredient.Requirement) string {
	if r.IsCategory() || r.IsMoney() {
		return r.String()
	}
	name := r.ID
	if def, ok := m.cat.Items.Lookup(r.ID); ok {
		name = def.Name
	}
	if r.PreservesID != "" {
		if def, ok := m.cat.Items.Lookup(r.PreservesID); ok {
			name = def.Name + " " + name
		}
	}
	label := fmt.Sprintf("%s x%d", name, r.Stack)
	if r.Quality > 0 {
		label += fmt.Sprintf(" *%d", r.Quality)
	}
	return label
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(brightGreen.Render("BUNDLE FORGE"))
	if m.cfg.Version != "" {
		b.WriteString(dimGreen.Render(fmt.Sprintf("  v%s (%s) %s", m.cfg.Version, m.cfg.Commit, m.cfg.BuildDate)))
	}
	b.WriteString("\n" + border.Render(rule) + "\n\n")

	switch m.screen {
	case screenMenu:
		b.WriteString(m.menuView())
	case screenBundles:
		b.WriteString(m.bundlesView())
	case screenStation:
		b.WriteString(m.stationView())
	case screenShops:
		b.WriteString(m.shopsView())
	case screenShop:
		b.WriteString(m.shopView())
	}

	if m.screen != screenMenu && m.screen != screenShops {
		b.WriteString("\n" + m.inventoryView(m.inventoryHighlights()))
	}

	b.WriteString("\n" + border.Render(rule) + "\n")
	b.WriteString(dimGreen.Render(m.help()) + "\n")
	if m.status != "" {
		b.WriteString("\n" + amber.Render(m.status) + "\n")
	}
	for _, line := range m.history {
		b.WriteString(green.Render(line) + "\n")
	}
	return b.String()
}

func (m model) help() string {
	switch m.screen {
	case screenBundles:
		return "↑/↓ bundle, Enter open, ←/→ slot, d donate, D donate held, w withdraw, t take one, p pay, x cursor, Esc back"
	case screenStation:
		return "←/→ slot, 1/2 place left/right, [/] place held, c craft, u unforge, x cursor, Esc back"
	case screenShops:
		return "↑/↓ shop, Enter open, Esc back"
	case screenShop:
		return "↑/↓ entry, b buy, B buy 5, ←/→ slot, s sell, x cursor, Esc back"
	default:
		return "↑/↓ to move, Enter to select, q to quit"
	}
}

func cursorLine(selected bool, text string) string {
	if selected {
		return "> " + brightGreen.Render(text) + "\n"
	}
	return "  " + green.Render(text) + "\n"
}

func (m model) menuView() string {
	var b strings.Builder
	for i, label := range menuLabels {
		b.WriteString(cursorLine(i == m.idx, label))
	}
	return b.String()
}

func (m model) bundlesView() string {
	var b strings.Builder
	lastArea := ""
	for i, ref := range m.bundleList() {
		if ref.area.Name != lastArea {
			lastArea = ref.area.Name
			title := lastArea
			if ref.area.IsComplete() {
				title += " (complete)"
			}
			b.WriteString(dimGreen.Render(title) + "\n")
		}
		label := ref.bundle.Name
		if ref.bundle.IsComplete() {
			label += " ✓"
		}
		b.WriteString(cursorLine(i == m.idx, label))
	}

	if m.page == nil || m.page.Bundle() == nil {
		return b.String()
	}
	bd := m.page.Bundle()
	b.WriteString("\n" + brightGreen.Render(bd.Name+" Bundle") + "\n")
	for i, req := range bd.Ingredients {
		mark := "[ ]"
		if bd.SlotCompleted(i) {
			mark = "[x]"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", mark, m.reqLabel(req)))
	}
	if l := m.page.Ledger(); l != nil && l.Active() {
		b.WriteString(amber.Render(fmt.Sprintf("  partial: %s %d/%d", itemLabel(l.Pending()), l.PendingUnits(), l.Target())) + "\n")
	}
	return b.String()
}

func (m model) stationView() string {
	if m.tx == nil {
		return ""
	}
	var b strings.Builder
	ev := m.tx.Evaluation()
	b.WriteString(brightGreen.Render(m.tx.Station().Name()) + "\n")
	b.WriteString(fmt.Sprintf("  left:  %s\n", itemLabel(m.tx.Slot(craft.Left))))
	b.WriteString(fmt.Sprintf("  right: %s\n", itemLabel(m.tx.Slot(craft.Right))))
	b.WriteString(fmt.Sprintf("  state: %s", ev.State))
	if ev.Cost > 0 {
		b.WriteString(fmt.Sprintf("  cost: %d", ev.Cost))
	}
	b.WriteString("\n")
	if ev.Preview != nil {
		b.WriteString("  makes: " + brightGreen.Render(itemLabel(ev.Preview)) + "\n")
	}
	if m.tx.Locked() {
		b.WriteString(amber.Render(fmt.Sprintf("  working... %s", m.tx.Countdown().Round(10*time.Millisecond))) + "\n")
	}
	b.WriteString(fmt.Sprintf("  cursor: %s\n", itemLabel(m.st.Held())))
	return b.String()
}

func (m model) shopsView() string {
	var b strings.Builder
	for i, name := range m.cat.ShopNames() {
		b.WriteString(cursorLine(i == m.idx, name))
	}
	return b.String()
}

func (m model) shopView() string {
	if m.shop == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(brightGreen.Render(m.shop.Name()) + dimGreen.Render("  "+money(m.st.Money())) + "\n")
	for i, e := range m.shop.Entries() {
		label := itemLabel(e.Item)
		if e.IsRecipe {
			label += " recipe"
		}
		var cost []string
		if e.Price > 0 {
			cost = append(cost, money(e.Price))
		}
		if e.TradeItemID != "" {
			cost = append(cost, fmt.Sprintf("%d %s", e.TradeItemCount, e.TradeItemName))
		}
		label += "  " + strings.Join(cost, " + ")
		if !e.Infinite() {
			label += fmt.Sprintf("  (%d left)", e.Stock)
		}
		if e.BuyBack {
			label += "  buy back"
		}
		b.WriteString(cursorLine(i == m.idx, label))
	}
	if sel := m.st.Inventory().Get(m.slot); sel != nil && m.shop.CanSell(sel) {
		b.WriteString(dimGreen.Render(fmt.Sprintf("  sells for %s", money(m.shop.Payout(sel)))) + "\n")
	}
	return b.String()
}

func (m model) inventoryHighlights() []bool {
	switch {
	case m.screen == screenBundles && m.page != nil && m.page.Bundle() != nil:
		return m.page.HighlightInventory()
	case m.screen == screenStation && m.tx != nil:
		return m.tx.HighlightInventory()
	}
	return nil
}

func (m model) inventoryView(lit []bool) string {
	var b strings.Builder
	b.WriteString(dimGreen.Render(fmt.Sprintf("Inventory  %s  free: %d  cursor: %s", money(m.st.Money()), m.st.Inventory().EmptySlots(), itemLabel(m.st.Held()))) + "\n")
	for i, it := range m.st.Inventory().Items() {
		cell := fmt.Sprintf("%2d %-22s", i, itemLabel(it))
		switch {
		case i == m.slot:
			cell = highlighted.Render(cell)
		case i < len(lit) && lit[i]:
			cell = brightGreen.Render(cell)
		case it == nil:
			cell = dimGreen.Render(cell)
		default:
			cell = green.Render(cell)
		}
		b.WriteString(cell)
		if i%4 == 3 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}
