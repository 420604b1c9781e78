package item

// GalaxySoul tracks souls fed into a galaxy weapon. It is neither a forge level nor
// replaced by prismatic enchanting.
const GalaxySoul = "GalaxySoul"

// TotalForgeLevels counts every applied forge enchantment level.
func (it *Item) TotalForgeLevels() int {
	if it == nil {
		return 0
	}
	total := 0
	for _, e := range it.Enchantments {
		if e.Forge {
			total += max(1, e.Level)
		}
	}
	return total
}

// AddForgeLevel raises the named forge enchantment by one level, adding it if missing.
func (it *Item) AddForgeLevel(name string) {
	for i := range it.Enchantments {
		if it.Enchantments[i].Forge && it.Enchantments[i].Name == name {
			it.Enchantments[i].Level++
			return
		}
	}
	it.Enchantments = append(it.Enchantments, Enchantment{Name: name, Level: 1, Forge: true})
}

// Enchantment returns the named enchantment.
func (it *Item) Enchantment(name string) (Enchantment, bool) {
	if it == nil {
		return Enchantment{}, false
	}
	for _, e := range it.Enchantments {
		if e.Name == name {
			return e, true
		}
	}
	return Enchantment{}, false
}

// SetEnchantment replaces the single non-forge enchantment slot.
func (it *Item) SetEnchantment(e Enchantment) {
	e.Forge = false
	kept := it.Enchantments[:0]
	for _, cur := range it.Enchantments {
		if cur.Forge || cur.Name == GalaxySoul {
			kept = append(kept, cur)
		}
	}
	it.Enchantments = append(kept, e)
}

// StripForge removes forge enchantments and the appearance override.
// Returns the forge levels that were removed.
func (it *Item) StripForge() int {
	removed := it.TotalForgeLevels()
	kept := it.Enchantments[:0]
	for _, e := range it.Enchantments {
		if !e.Forge {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	it.Enchantments = kept
	it.AppearanceID = ""
	return removed
}

// HasForgeState reports forge levels or an appearance override.
func (it *Item) HasForgeState() bool {
	return it != nil && (it.TotalForgeLevels() > 0 || it.AppearanceID != "")
}
