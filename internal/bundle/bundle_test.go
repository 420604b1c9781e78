package bundle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/bundle-forge/internal/ingredient"
	"github.com/appengine-ltd/bundle-forge/internal/inventory"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

func parsnip(n int) *item.Item {
	return &item.Item{ID: "(O)24", Name: "Parsnip", Category: -75, Stack: n, Price: 35}
}

func sword() *item.Item {
	return &item.Item{ID: "(W)0", Name: "Rusty Sword", Kind: item.KindWeapon, Stack: 1}
}

func singleSlot(index, stack int) Definition {
	return Definition{
		Index:       index,
		Area:        "Pantry",
		Name:        "Spring Crops",
		Ingredients: []ingredient.Requirement{{ID: "(O)24", Stack: stack}},
	}
}

func TestDepositConsumesExactStackAndReturnsRemainder(t *testing.T) {
	st := world.NewState(nil, 0)
	b := New(singleSlot(0, 5), nil, st)

	src := parsnip(7)
	left := b.Deposit(src, 0)
	require.NotNil(t, left)
	assert.Equal(t, 2, left.Stack)
	assert.True(t, b.SlotCompleted(0))
	assert.Equal(t, 5, b.SlotItem(0).Stack)

	flags, ok := st.BundleFlags(0)
	require.True(t, ok)
	assert.Equal(t, []bool{true}, flags)
}

func TestDepositTooSmallIsNoOp(t *testing.T) {
	b := New(singleSlot(0, 5), nil, nil)
	src := parsnip(3)
	assert.Same(t, src, b.Deposit(src, 0))
	assert.Equal(t, 3, src.Stack)
	assert.False(t, b.SlotCompleted(0))
}

func TestDepositRejectsFilledSlotAndLockedBundle(t *testing.T) {
	def := singleSlot(0, 1)
	def.Ingredients = append(def.Ingredients, ingredient.Requirement{ID: "(O)24", Stack: 1})
	b := New(def, nil, nil)

	require.Nil(t, b.Deposit(parsnip(1), 0))
	src := parsnip(1)
	assert.False(t, b.CanAccept(src, 0))
	assert.Same(t, src, b.Deposit(src, 0))

	b.DepositsAllowed = false
	assert.False(t, b.CanAccept(src, 1))
}

func TestCompletionFiresOnce(t *testing.T) {
	st := world.NewState(nil, 0)
	rec := &present.Recorder{}
	b := New(singleSlot(3, 1), nil, st, WithPresenter(rec))

	require.Nil(t, b.Deposit(parsnip(1), 0))
	assert.True(t, b.CheckCompletion())
	for i := 0; i < 3; i++ {
		assert.False(t, b.CheckCompletion())
		assert.True(t, b.IsComplete())
	}
	assert.True(t, b.SlotCompleted(0))
	assert.True(t, st.BundleComplete(3))

	completions := 0
	for _, ev := range st.Broadcasts() {
		if ev.Event == "bundle_complete" {
			completions++
		}
	}
	assert.Equal(t, 1, completions)
	assert.True(t, rec.SaidContaining("Spring Crops"))
}

func TestIsCompleteHonoursSlotCount(t *testing.T) {
	def := Definition{
		Index: 4,
		Area:  "Fish Tank",
		Name:  "River Fish",
		Ingredients: []ingredient.Requirement{
			{ID: "145", Stack: 1},
			{ID: "143", Stack: 1},
			{ID: "706", Stack: 1},
		},
		NumberOfSlots: 2,
	}
	b := New(def, nil, nil)
	require.Nil(t, b.Deposit(&item.Item{ID: "(O)145", Stack: 1}, 0))
	assert.False(t, b.IsComplete())
	require.Nil(t, b.Deposit(&item.Item{ID: "(O)143", Stack: 1}, 1))
	assert.True(t, b.IsComplete())
}

func TestNewDiscardsMismatchedFlags(t *testing.T) {
	def := singleSlot(0, 1)
	def.Ingredients = append(def.Ingredients, ingredient.Requirement{ID: "(O)24", Stack: 1})

	b := New(def, []bool{true}, nil)
	assert.False(t, b.SlotCompleted(0))
	assert.False(t, b.IsComplete())

	restored := New(def, []bool{true, true}, nil)
	assert.True(t, restored.IsComplete())
	assert.False(t, restored.CheckCompletion(), "already complete bundles do not fire again")
}

func TestPurchaseShortCircuitsMoneyBundle(t *testing.T) {
	def, err := ParseDefinition("Vault/23", "2,500g/O 220 3/-1 2500 2500/4/1")
	require.NoError(t, err)

	rec := &present.Recorder{}
	poor := world.NewState(nil, 1000)
	b := New(def, nil, poor, WithPresenter(rec))
	assert.False(t, b.Purchase(poor))
	assert.Equal(t, 1000, poor.Money())
	assert.True(t, rec.Played(present.SoundCancel))
	assert.False(t, b.IsComplete())

	rich := world.NewState(nil, 3000)
	b = New(def, nil, rich)
	assert.False(t, b.CanAccept(&item.Item{ID: "(O)24", Category: -1, Stack: 2500}, 0))
	assert.True(t, b.Purchase(rich))
	assert.Equal(t, 500, rich.Money())
	assert.True(t, b.IsComplete())
	assert.True(t, rich.BundleComplete(23))
	assert.False(t, b.Purchase(rich))
	assert.Equal(t, 500, rich.Money())
}

func TestAreaCompletesOnce(t *testing.T) {
	st := world.NewState(nil, 0)
	a := singleSlot(0, 1)
	b := singleSlot(1, 1)
	b.Name = "Summer Crops"
	areas := Build([]Definition{a, b}, st, st)
	require.Len(t, areas, 1)
	area := areas[0]

	require.Nil(t, area.Bundle(0).Deposit(parsnip(1), 0))
	area.Bundle(0).CheckCompletion()
	assert.False(t, area.IsComplete())

	require.Nil(t, area.Bundle(1).Deposit(parsnip(1), 0))
	area.Bundle(1).CheckCompletion()
	assert.True(t, area.IsComplete())
	assert.False(t, area.Check())
	assert.Equal(t, []string{"Pantry"}, st.Cutscenes())
	assert.True(t, st.AreaComplete("Pantry"))
}

func TestBuildRestoresPersistedFlags(t *testing.T) {
	st := world.NewState(nil, 0)
	st.SaveBundleFlags(0, []bool{true})
	areas := Build([]Definition{singleSlot(0, 1)}, st, st)
	require.Len(t, areas, 1)
	assert.True(t, areas[0].Bundle(0).IsComplete())
}

func TestBuildCompletesAreaFromRestoredFlags(t *testing.T) {
	st := world.NewState(nil, 0)
	st.SaveBundleFlags(0, []bool{true})
	areas := Build([]Definition{singleSlot(0, 1)}, st, st)
	require.Len(t, areas, 1)
	assert.True(t, areas[0].IsComplete())
	assert.True(t, st.AreaComplete("Pantry"))
	assert.Equal(t, []string{"Pantry"}, st.Cutscenes())

	again := Build([]Definition{singleSlot(0, 1)}, st, st)
	assert.True(t, again[0].IsComplete())
	assert.Equal(t, []string{"Pantry"}, st.Cutscenes(), "a restored area flag is not announced twice")
}

func TestParseDefinition(t *testing.T) {
	def, err := ParseDefinition("Pantry/0", "Spring Crops/O 465 20/24 1 0 188 1 0 190 1 0 192 1 0/0")
	require.NoError(t, err)
	assert.Equal(t, "Pantry", def.Area)
	assert.Equal(t, 0, def.Index)
	assert.Equal(t, "Spring Crops", def.Name)
	assert.Equal(t, "O 465 20", def.Reward)
	assert.Len(t, def.Ingredients, 4)
	assert.Equal(t, 4, def.NumberOfSlots)

	def, err = ParseDefinition("Fish Tank/7", "Lake Fish/O 687 1/136 1 0 142 1 0 700 1 0 698 1 0/6/3")
	require.NoError(t, err)
	assert.Equal(t, 3, def.NumberOfSlots)

	def, err = ParseDefinition("Crafts Room/13", "Exotic Foraging/O 235 5/-81 5 0 88 1 2 344:398 1 0/1")
	require.NoError(t, err)
	assert.Equal(t, -81, def.Ingredients[0].Category)
	assert.Equal(t, 2, def.Ingredients[1].Quality)
	assert.Equal(t, "398", def.Ingredients[2].PreservesID)
}

func TestParseDefinitionRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		key  string
		raw  string
	}{
		{name: "no index", key: "Pantry", raw: "A/B/24 1 0"},
		{name: "bad index", key: "Pantry/x", raw: "A/B/24 1 0"},
		{name: "missing fields", key: "Pantry/0", raw: "A/B"},
		{name: "incomplete triple", key: "Pantry/0", raw: "A/B/24 1"},
		{name: "bad stack", key: "Pantry/0", raw: "A/B/24 x 0"},
		{name: "zero stack", key: "Pantry/0", raw: "A/B/24 0 0"},
		{name: "slots out of range", key: "Pantry/0", raw: "A/B/24 1 0/0/9"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDefinition(tc.key, tc.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedBundle))
		})
	}
}

func newPage(t *testing.T, def Definition, inv *inventory.Inventory) (*Page, *world.State) {
	t.Helper()
	st := world.NewState(inv, 0)
	areas := Build([]Definition{def}, st, st)
	require.Len(t, areas, 1)
	pg := NewPage(areas[0], st)
	require.True(t, pg.Open(def.Index))
	return pg, st
}

func TestPageFullStackGoesStraightToSlot(t *testing.T) {
	inv := inventory.From(4, parsnip(8))
	pg, st := newPage(t, singleSlot(0, 5), inv)

	assert.True(t, pg.DonateFromInventory(0))
	assert.False(t, pg.Ledger().Active())
	assert.Equal(t, 3, inv.Get(0).Stack)
	assert.True(t, pg.Bundle().IsComplete())
	assert.True(t, st.AreaComplete("Pantry"))
}

func TestPageRejectsUnusableItems(t *testing.T) {
	rec := &present.Recorder{}
	inv := inventory.From(4, sword())
	st := world.NewState(inv, 0)
	area := NewArea("Pantry", []*Bundle{New(singleSlot(0, 5), nil, st)}, st, false)
	pg := NewPage(area, st, WithPresenter(rec))
	require.True(t, pg.Open(0))

	assert.False(t, pg.DonateFromInventory(0))
	assert.NotNil(t, inv.Get(0))
	assert.True(t, rec.Played(present.SoundCancel))
}

func TestPageHighlight(t *testing.T) {
	inv := inventory.From(3, parsnip(2), sword(), nil)
	pg, st := newPage(t, singleSlot(0, 5), inv)
	st.Equip(&item.Item{ID: "(O)24", Category: -75, Stack: 1})

	assert.Equal(t, []bool{true, false, false}, pg.HighlightInventory())
	assert.Equal(t, []bool{true}, pg.HighlightEquipped())

	inv.Set(1, parsnip(9))
	require.True(t, pg.DonateFromInventory(1))
	assert.Equal(t, []bool{false, false, false}, pg.HighlightInventory())
}

func TestPageDonateHeld(t *testing.T) {
	pg, st := newPage(t, singleSlot(0, 5), inventory.New(4))
	st.SetHeld(parsnip(6))

	assert.True(t, pg.DonateHeld())
	require.NotNil(t, st.Held())
	assert.Equal(t, 1, st.Held().Stack)
	assert.True(t, pg.Bundle().SlotCompleted(0))
}

func TestOpenAnotherBundleReturnsPending(t *testing.T) {
	inv := inventory.From(4, parsnip(3), parsnip(4))
	st := world.NewState(inv, 0)
	second := singleSlot(1, 1)
	second.Ingredients = []ingredient.Requirement{{ID: "(O)72", Stack: 1}}
	areas := Build([]Definition{singleSlot(0, 5), second}, st, st)
	pg := NewPage(areas[0], st)
	require.True(t, pg.Open(0))
	require.True(t, pg.DonateFromInventory(0))
	require.True(t, pg.Ledger().Active())

	require.True(t, pg.Open(1))
	assert.False(t, pg.Ledger().Active())
	assert.Equal(t, 7, inv.CountID("24"))
}
