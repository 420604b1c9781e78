package item

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Definition is the read-only data an Item is created from.
type Definition struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Kind       Kind     `json:"kind"`
	Category   int      `json:"category,omitempty"`
	Price      int      `json:"price,omitempty"`
	MaxStack   int      `json:"max_stack,omitempty"`
	Edible     bool     `json:"edible,omitempty"`
	NoTrash    bool     `json:"no_trash,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	ToolClass  string   `json:"tool_class,omitempty"`
	WeaponType int      `json:"weapon_type,omitempty"`
	Dyeable    bool     `json:"dyeable,omitempty"`
	Color      string   `json:"color,omitempty"`
}

type Registry struct {
	defs  map[string]Definition
	order []string
}

func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

func (r *Registry) Register(def Definition) error {
	def.ID = Qualify(def.ID)
	if def.ID == "" {
		return fmt.Errorf("register item: empty id")
	}
	if _, ok := r.defs[def.ID]; ok {
		return fmt.Errorf("register item %s: %w", def.ID, ErrDuplicateItem)
	}
	r.defs[def.ID] = def
	r.order = append(r.order, def.ID)
	return nil
}

func (r *Registry) Lookup(id string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	def, ok := r.defs[Qualify(id)]
	return def, ok
}

// IDs returns qualified ids in registration order.
func (r *Registry) IDs() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Create builds a new stack of the item. Unknown ids report the closest known ids.
func (r *Registry) Create(id string, stack int) (*Item, error) {
	def, ok := r.Lookup(id)
	if !ok {
		if sugg := r.Suggest(id, 3); len(sugg) > 0 {
			return nil, fmt.Errorf("%w %q (did you mean %s?)", ErrUnknownItem, id, strings.Join(sugg, ", "))
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownItem, id)
	}
	if stack < 1 {
		stack = 1
	}
	it := &Item{
		ID:         def.ID,
		Name:       def.Name,
		Kind:       def.Kind,
		Category:   def.Category,
		Stack:      stack,
		MaxStack:   def.MaxStack,
		Price:      def.Price,
		Edible:     def.Edible,
		NoTrash:    def.NoTrash,
		ToolClass:  def.ToolClass,
		WeaponType: def.WeaponType,
		Dyeable:    def.Dyeable,
		Color:      def.Color,
	}
	if len(def.Tags) > 0 {
		it.Tags = append([]string(nil), def.Tags...)
	}
	if stack > it.MaximumStackSize() {
		it.Stack = it.MaximumStackSize()
	}
	return it, nil
}

// MustCreate is Create for built-in ids known at compile time.
func (r *Registry) MustCreate(id string, stack int) *Item {
	it, err := r.Create(id, stack)
	if err != nil {
		panic(err)
	}
	return it
}

// Suggest ranks known ids and names by edit distance to the input.
func (r *Registry) Suggest(input string, limit int) []string {
	if r == nil || limit <= 0 {
		return nil
	}
	token := strings.ToLower(strings.TrimSpace(input))
	if token == "" {
		return nil
	}
	type scored struct {
		id   string
		dist int
	}
	results := make([]scored, 0, len(r.order))
	for _, id := range r.order {
		def := r.defs[id]
		best := -1
		for _, cand := range []string{strings.ToLower(id), strings.ToLower(Unqualify(id)), strings.ToLower(def.Name)} {
			if cand == "" {
				continue
			}
			if strings.HasPrefix(cand, token) && len(token) >= 2 {
				best = 0
				break
			}
			d := levenshtein.ComputeDistance(token, cand)
			if d > suggestionLimit(len(cand)) {
				continue
			}
			if best < 0 || d < best {
				best = d
			}
		}
		if best >= 0 {
			results = append(results, scored{id: id, dist: best})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].dist == results[j].dist {
			return results[i].id < results[j].id
		}
		return results[i].dist < results[j].dist
	})
	out := make([]string, 0, min(limit, len(results)))
	for _, res := range results {
		if len(out) >= limit {
			break
		}
		out = append(out, res.id)
	}
	return out
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
