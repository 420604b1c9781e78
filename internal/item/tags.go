package item

import (
	"strconv"
	"strings"
)

// ContextTags returns explicit tags plus the derived id/category/quality tags.
func (it *Item) ContextTags() []string {
	if it == nil {
		return nil
	}
	tags := make([]string, 0, len(it.Tags)+5)
	for _, t := range it.Tags {
		if t = normaliseTag(t); t != "" {
			tags = append(tags, t)
		}
	}
	tags = append(tags, "id_"+idTag(it.ID))
	tags = append(tags, "item_"+slug(it.Name))
	tags = append(tags, "kind_"+it.Kind.String())
	if it.Category != 0 {
		tags = append(tags, "category_"+strconv.Itoa(it.Category))
	}
	tags = append(tags, "quality_"+strconv.Itoa(it.Quality))
	if it.IsClothing() && it.Dyeable {
		tags = append(tags, "dyeable")
	}
	return tags
}

// HasContextTag matches case-insensitively. A leading '!' negates the tag.
func (it *Item) HasContextTag(tag string) bool {
	tag = normaliseTag(tag)
	if tag == "" {
		return true
	}
	if strings.HasPrefix(tag, "!") {
		return !it.HasContextTag(tag[1:])
	}
	for _, t := range it.ContextTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// DyeColor returns the color granted by a "color_*" tag, if any.
func (it *Item) DyeColor() (string, bool) {
	if it == nil {
		return "", false
	}
	for _, t := range it.Tags {
		t = normaliseTag(t)
		if c, ok := strings.CutPrefix(t, "color_"); ok && c != "" {
			return c, true
		}
	}
	return "", false
}

func normaliseTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

func idTag(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.NewReplacer("(", "", ")", "_").Replace(id)
	return id
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
