package world

import (
	"maps"
	"slices"

	"github.com/appengine-ltd/bundle-forge/internal/inventory"
	"github.com/appengine-ltd/bundle-forge/internal/item"
)

// BroadcastEvent is one fire-and-forget notification for the multiplayer layer.
type BroadcastEvent struct {
	Event  string
	Fields map[string]any
}

// State is an in-memory Player and Sink.
type State struct {
	inv      *inventory.Inventory
	held     *item.Item
	equipped []*item.Item
	money    int
	debris   []*item.Item
	recipes  map[string]bool

	bundleFlags     map[int][]bool
	completeBundles map[int]bool
	completeAreas   map[string]bool
	cutscenes       []string
	broadcasts      []BroadcastEvent
	restock         map[string][]*item.Item
}

func NewState(inv *inventory.Inventory, money int) *State {
	if inv == nil {
		inv = inventory.New(inventory.DefaultCapacity)
	}
	return &State{
		inv:             inv,
		money:           max(0, money),
		recipes:         make(map[string]bool),
		bundleFlags:     make(map[int][]bool),
		completeBundles: make(map[int]bool),
		completeAreas:   make(map[string]bool),
		restock:         make(map[string][]*item.Item),
	}
}

func (s *State) Inventory() *inventory.Inventory { return s.inv }
func (s *State) Held() *item.Item                { return s.held }
func (s *State) SetHeld(it *item.Item) {
	if it != nil && it.Stack <= 0 {
		it = nil
	}
	s.held = it
}

func (s *State) Equipped() []*item.Item { return s.equipped }

func (s *State) Equip(items ...*item.Item) {
	s.equipped = append(s.equipped, items...)
}

func (s *State) Money() int { return s.money }

func (s *State) Spend(amount int) bool {
	if amount < 0 || amount > s.money {
		return false
	}
	s.money -= amount
	return true
}

func (s *State) Earn(amount int) {
	if amount > 0 {
		s.money += amount
	}
}

func (s *State) DropDebris(it *item.Item) {
	if it == nil || it.Stack <= 0 {
		return
	}
	s.debris = append(s.debris, it)
}

func (s *State) Debris() []*item.Item {
	return slices.Clone(s.debris)
}

// DebrisUnits counts every unit lying on the ground.
func (s *State) DebrisUnits() int {
	n := 0
	for _, d := range s.debris {
		n += d.Stack
	}
	return n
}

func (s *State) LearnRecipe(name string)      { s.recipes[name] = true }
func (s *State) KnowsRecipe(name string) bool { return s.recipes[name] }

func (s *State) SaveBundleFlags(bundleIndex int, flags []bool) {
	s.bundleFlags[bundleIndex] = slices.Clone(flags)
}

// BundleFlags returns the persisted per-slot completion flags for a bundle.
func (s *State) BundleFlags(bundleIndex int) ([]bool, bool) {
	flags, ok := s.bundleFlags[bundleIndex]
	return slices.Clone(flags), ok
}

func (s *State) MarkBundleComplete(bundleIndex int) {
	s.completeBundles[bundleIndex] = true
}

func (s *State) BundleComplete(bundleIndex int) bool {
	return s.completeBundles[bundleIndex]
}

func (s *State) MarkAreaComplete(area string) {
	s.completeAreas[area] = true
}

func (s *State) AreaComplete(area string) bool {
	return s.completeAreas[area]
}

func (s *State) RequestRewardCutscene(area string) {
	s.cutscenes = append(s.cutscenes, area)
}

func (s *State) Cutscenes() []string {
	return slices.Clone(s.cutscenes)
}

func (s *State) Broadcast(event string, fields map[string]any) {
	s.broadcasts = append(s.broadcasts, BroadcastEvent{Event: event, Fields: maps.Clone(fields)})
}

func (s *State) Broadcasts() []BroadcastEvent {
	return slices.Clone(s.broadcasts)
}

func (s *State) QueueRestock(shop string, it *item.Item) {
	if it == nil {
		return
	}
	s.restock[shop] = append(s.restock[shop], it)
}

func (s *State) Restock(shop string) []*item.Item {
	return slices.Clone(s.restock[shop])
}
