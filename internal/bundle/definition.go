package bundle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/appengine-ltd/bundle-forge/internal/ingredient"
)

// Definition is a bundle as stored in the game data, before any donations.
type Definition struct {
	Index         int                      `json:"index"`
	Area          string                   `json:"area"`
	Name          string                   `json:"name"`
	Reward        string                   `json:"reward,omitempty"`
	Ingredients   []ingredient.Requirement `json:"ingredients"`
	NumberOfSlots int                      `json:"slots,omitempty"`
	Color         int                      `json:"color,omitempty"`
}

// ParseDefinition reads a bundle record keyed "Area/Index" with a value of
// "Name/Reward/id stack quality .../color/slots". An id written "344:398" asks for
// item 344 flavored with 398.
func ParseDefinition(key, raw string) (Definition, error) {
	area, idxRaw, ok := strings.Cut(strings.TrimSpace(key), "/")
	if !ok || strings.TrimSpace(area) == "" {
		return Definition{}, fmt.Errorf("%w: key %q must be Area/Index", ErrMalformedBundle, key)
	}
	index, err := strconv.Atoi(strings.TrimSpace(idxRaw))
	if err != nil || index < 0 {
		return Definition{}, fmt.Errorf("%w: key %q has invalid index", ErrMalformedBundle, key)
	}

	fields := strings.Split(raw, "/")
	if len(fields) < 3 {
		return Definition{}, fmt.Errorf("%w: bundle %q needs name, reward and ingredients", ErrMalformedBundle, key)
	}
	def := Definition{
		Index:  index,
		Area:   strings.TrimSpace(area),
		Name:   strings.TrimSpace(fields[0]),
		Reward: strings.TrimSpace(fields[1]),
	}
	if def.Name == "" {
		return Definition{}, fmt.Errorf("%w: bundle %q has no name", ErrMalformedBundle, key)
	}

	tokens := strings.Fields(fields[2])
	if len(tokens) == 0 || len(tokens)%3 != 0 {
		return Definition{}, fmt.Errorf("%w: bundle %q ingredients must be id/stack/quality triples", ErrMalformedBundle, key)
	}
	for i := 0; i < len(tokens); i += 3 {
		req, err := parseIngredient(tokens[i], tokens[i+1], tokens[i+2])
		if err != nil {
			return Definition{}, fmt.Errorf("%w: bundle %q ingredient %d: %v", ErrMalformedBundle, key, i/3, err)
		}
		def.Ingredients = append(def.Ingredients, req)
	}

	if len(fields) > 3 && strings.TrimSpace(fields[3]) != "" {
		if def.Color, err = strconv.Atoi(strings.TrimSpace(fields[3])); err != nil {
			return Definition{}, fmt.Errorf("%w: bundle %q has invalid color", ErrMalformedBundle, key)
		}
	}
	def.NumberOfSlots = len(def.Ingredients)
	if len(fields) > 4 && strings.TrimSpace(fields[4]) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(fields[4]))
		if err != nil || n < 1 || n > len(def.Ingredients) {
			return Definition{}, fmt.Errorf("%w: bundle %q slot count %q out of range", ErrMalformedBundle, key, fields[4])
		}
		def.NumberOfSlots = n
	}
	return def, nil
}

func parseIngredient(idRaw, stackRaw, qualityRaw string) (ingredient.Requirement, error) {
	stack, err := strconv.Atoi(stackRaw)
	if err != nil {
		return ingredient.Requirement{}, fmt.Errorf("stack %q", stackRaw)
	}
	quality, err := strconv.Atoi(qualityRaw)
	if err != nil {
		return ingredient.Requirement{}, fmt.Errorf("quality %q", qualityRaw)
	}
	id, preserves, _ := strings.Cut(idRaw, ":")
	req := ingredient.Parse(id, stack, quality)
	if req.IsMoney() {
		// Money slots repeat the amount in the quality column.
		req.Quality = 0
	}
	if preserves != "" {
		req = req.WithPreserve(preserves)
	}
	return req, req.Validate()
}
