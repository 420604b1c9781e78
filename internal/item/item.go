package item

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	KindObject Kind = iota
	KindTool
	KindWeapon
	KindRing
	KindCombinedRing
	KindBoots
	KindClothing
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindTool:
		return "tool"
	case KindWeapon:
		return "weapon"
	case KindRing:
		return "ring"
	case KindCombinedRing:
		return "combined_ring"
	case KindBoots:
		return "boots"
	case KindClothing:
		return "clothing"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind reads a kind name as written by String.
func ParseKind(s string) (Kind, error) {
	for k := KindObject; k <= KindClothing; k++ {
		if strings.EqualFold(strings.TrimSpace(s), k.String()) {
			return k, nil
		}
	}
	return KindObject, fmt.Errorf("unknown item kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts a kind name; an empty value is an object.
func (k *Kind) UnmarshalText(text []byte) error {
	if len(strings.TrimSpace(string(text))) == 0 {
		*k = KindObject
		return nil
	}
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Quality tiers. Iridium skips 3.
const (
	QualityNormal  = 0
	QualitySilver  = 1
	QualityGold    = 2
	QualityIridium = 4
)

const defaultObjectStack = 999

// Enchantment is a named tool modifier. Forge enchantments stack levels and can be
// removed again by unforging.
type Enchantment struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
	Forge bool   `json:"forge,omitempty"`
}

// Item is one physical stack of a single item kind.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Category int      `json:"category,omitempty"`
	Stack    int      `json:"stack"`
	Quality  int      `json:"quality,omitempty"`
	MaxStack int      `json:"max_stack,omitempty"`
	Price    int      `json:"price,omitempty"`
	Edible   bool     `json:"edible,omitempty"`
	NoTrash  bool     `json:"no_trash,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	// Flavored items (jelly, wine, ...) remember the ingredient they were made from.
	PreservedParentID string `json:"preserved_parent_id,omitempty"`

	ToolClass    string        `json:"tool_class,omitempty"`
	WeaponType   int           `json:"weapon_type,omitempty"`
	Enchantments []Enchantment `json:"enchantments,omitempty"`
	AppearanceID string        `json:"appearance_id,omitempty"`

	CombinedRings []*Item `json:"combined_rings,omitempty"`

	AppliedBootsID string `json:"applied_boots_id,omitempty"`

	Dyeable bool   `json:"dyeable,omitempty"`
	Color   string `json:"color,omitempty"`
}

// Qualify turns an unqualified id into an object id: "24" -> "(O)24".
func Qualify(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, "(") {
		return id
	}
	return "(O)" + id
}

// Unqualify strips the type prefix: "(O)24" -> "24".
func Unqualify(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, "(") {
		if end := strings.Index(id, ")"); end >= 0 {
			return id[end+1:]
		}
	}
	return id
}

// SameID reports whether two ids name the same item, qualified or not.
func SameID(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return Qualify(a) == Qualify(b)
}

// IsCategoryID reports whether id is a negative category placeholder such as "-75".
func IsCategoryID(id string) bool {
	n, err := strconv.Atoi(Unqualify(id))
	return err == nil && n < 0
}

func (it *Item) UnqualifiedID() string {
	if it == nil {
		return ""
	}
	return Unqualify(it.ID)
}

// HasID matches the qualified or unqualified form of id. Unqualified ids name objects.
func (it *Item) HasID(id string) bool {
	if it == nil {
		return false
	}
	return SameID(it.ID, id)
}

func (it *Item) MaximumStackSize() int {
	if it == nil {
		return 0
	}
	if it.MaxStack > 0 {
		return it.MaxStack
	}
	if it.Kind == KindObject {
		return defaultObjectStack
	}
	return 1
}

func (it *Item) Stackable() bool {
	return it.MaximumStackSize() > 1
}

func (it *Item) CanBeTrashed() bool {
	return it != nil && !it.NoTrash
}

func (it *Item) IsTool() bool {
	return it != nil && (it.Kind == KindTool || it.Kind == KindWeapon)
}

func (it *Item) IsWeapon() bool {
	return it != nil && it.Kind == KindWeapon
}

func (it *Item) IsRing() bool {
	return it != nil && (it.Kind == KindRing || it.Kind == KindCombinedRing)
}

func (it *Item) IsBoots() bool {
	return it != nil && it.Kind == KindBoots
}

func (it *Item) IsClothing() bool {
	return it != nil && it.Kind == KindClothing
}

// CanStackWith reports whether other can merge into this stack.
func (it *Item) CanStackWith(other *Item) bool {
	if it == nil || other == nil || it == other {
		return false
	}
	if !it.Stackable() || !other.Stackable() {
		return false
	}
	return it.ID == other.ID &&
		it.Quality == other.Quality &&
		it.PreservedParentID == other.PreservedParentID &&
		it.Color == other.Color &&
		it.Name == other.Name
}

// AddToStack merges as much of other as fits and returns how many units did not fit.
// other is left untouched; the caller owns the remainder.
func (it *Item) AddToStack(other *Item) int {
	if other == nil {
		return 0
	}
	if !it.CanStackWith(other) {
		return other.Stack
	}
	room := max(0, it.MaximumStackSize()-it.Stack)
	moved := min(room, other.Stack)
	it.Stack += moved
	return other.Stack - moved
}

// Clone deep-copies the item, including nested rings and enchantments.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	if it.Tags != nil {
		c.Tags = append([]string(nil), it.Tags...)
	}
	if it.Enchantments != nil {
		c.Enchantments = append([]Enchantment(nil), it.Enchantments...)
	}
	if it.CombinedRings != nil {
		c.CombinedRings = make([]*Item, len(it.CombinedRings))
		for i, r := range it.CombinedRings {
			c.CombinedRings[i] = r.Clone()
		}
	}
	return &c
}

// GetOne returns a single-unit copy.
func (it *Item) GetOne() *Item {
	c := it.Clone()
	if c != nil {
		c.Stack = 1
	}
	return c
}

// WithStack returns a copy holding n units.
func (it *Item) WithStack(n int) *Item {
	c := it.Clone()
	if c != nil {
		c.Stack = n
	}
	return c
}

func (it *Item) String() string {
	if it == nil {
		return "<nil>"
	}
	label := it.Name
	if strings.TrimSpace(label) == "" {
		label = it.ID
	}
	if it.Stack > 1 {
		return fmt.Sprintf("%s x%d", label, it.Stack)
	}
	return label
}
