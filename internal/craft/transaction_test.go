package craft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appengine-ltd/bundle-forge/internal/bundle"
	"github.com/appengine-ltd/bundle-forge/internal/ingredient"
	"github.com/appengine-ltd/bundle-forge/internal/inventory"
	"github.com/appengine-ltd/bundle-forge/internal/item"
	"github.com/appengine-ltd/bundle-forge/internal/present"
	"github.com/appengine-ltd/bundle-forge/internal/world"
)

const forgeDuration = 1600 * time.Millisecond

func forgeSession(t *testing.T, p *world.State) (*Transaction, *item.Registry, *present.Recorder) {
	t.Helper()
	r := testRegistry(t)
	rec := &present.Recorder{}
	return New(NewForge(r, 1), p, forgeDuration, WithPresenter(rec)), r, rec
}

func TestSetSlotRevalidates(t *testing.T) {
	r := testRegistry(t)
	p := newPlayer(4, r.MustCreate(ShardID, 50))
	tx := New(NewForge(r, 1), p, forgeDuration)
	assert.Equal(t, MissingIngredients, tx.State())

	prev, ok := tx.SetSlot(Left, r.MustCreate("(W)0", 1))
	require.True(t, ok)
	assert.Nil(t, prev)
	assert.Equal(t, MissingIngredients, tx.State())

	_, ok = tx.SetSlot(Right, r.MustCreate("(O)64", 1))
	require.True(t, ok)
	assert.Equal(t, Valid, tx.State())
	require.NotNil(t, tx.Preview())
	assert.Equal(t, 1, tx.Preview().TotalForgeLevels())
	assert.Zero(t, tx.Slot(Left).TotalForgeLevels())

	parsnip := r.MustCreate("(O)24", 1)
	back, ok := tx.SetSlot(Left, parsnip)
	assert.False(t, ok, "forge left slot only takes tools and rings")
	assert.Same(t, parsnip, back)
}

func TestCommitCountdownAndCompletion(t *testing.T) {
	p := newPlayer(4)
	tx, r, rec := forgeSession(t, p)
	p.Inventory().Set(0, r.MustCreate(ShardID, 15))
	sword := r.MustCreate("(W)0", 1)
	rubies := r.MustCreate("(O)64", 3)
	_, _ = tx.SetSlot(Left, sword)
	_, _ = tx.SetSlot(Right, rubies)

	require.True(t, tx.Commit())
	assert.True(t, tx.Locked())
	assert.Equal(t, forgeDuration, tx.Countdown())
	assert.True(t, rec.Played(present.SoundForgeStart))

	_, ok := tx.SetSlot(Right, nil)
	assert.False(t, ok, "slots are locked while the countdown runs")
	assert.False(t, tx.Commit())
	assert.False(t, tx.Close())

	assert.False(t, tx.Tick(time.Second))
	assert.Equal(t, 600*time.Millisecond, tx.Countdown())
	assert.True(t, tx.Tick(700*time.Millisecond))

	assert.False(t, tx.Locked())
	assert.Nil(t, tx.Slot(Left))
	assert.Same(t, rubies, tx.Slot(Right))
	assert.Equal(t, 2, rubies.Stack)
	require.NotNil(t, p.Held())
	assert.Equal(t, 1, p.Held().TotalForgeLevels())
	assert.Equal(t, 5, p.Inventory().CountID(ShardID))
	assert.Equal(t, MissingIngredients, tx.State())
	assert.True(t, rec.Played(present.SoundForgeDone))
}

func TestCommitFailureLeavesSlotsUntouched(t *testing.T) {
	r := testRegistry(t)
	tests := []struct {
		name    string
		player  func() *world.State
		right   string
		message string
	}{
		{
			name: "no room for result",
			player: func() *world.State {
				p := newPlayer(1, r.MustCreate(ShardID, 50))
				p.SetHeld(r.MustCreate("(W)16", 1))
				return p
			},
			right:   "(O)64",
			message: present.Text(present.MsgNoRoom),
		},
		{
			name:    "not enough shards",
			player:  func() *world.State { return newPlayer(4, r.MustCreate(ShardID, 3)) },
			right:   "(O)64",
			message: present.Text(present.MsgNotEnoughShards, 15),
		},
		{
			name:    "invalid recipe",
			player:  func() *world.State { return newPlayer(4, r.MustCreate(ShardID, 50)) },
			right:   "(O)766",
			message: present.Text(present.MsgInvalidRecipe),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &present.Recorder{}
			p := tc.player()
			tx := New(NewForge(r, 1), p, forgeDuration, WithPresenter(rec))
			left := forgeLevels(r.MustCreate("(W)0", 1), "Jade")
			right := r.MustCreate(tc.right, 2)
			tx.left, tx.right = left, right
			tx.revalidate()
			leftBefore, rightBefore := left.Clone(), right.Clone()
			shardsBefore := p.Inventory().CountID(ShardID)

			assert.False(t, tx.Commit())
			assert.False(t, tx.Locked())
			assert.Same(t, left, tx.Slot(Left))
			assert.Same(t, right, tx.Slot(Right))
			assert.Equal(t, leftBefore, left)
			assert.Equal(t, rightBefore, right)
			assert.Equal(t, shardsBefore, p.Inventory().CountID(ShardID))
			assert.True(t, rec.Played(present.SoundCancel))
			assert.Equal(t, tc.message, rec.LastMessage())
		})
	}
}

func TestRoomVanishingMidCraftAborts(t *testing.T) {
	p := newPlayer(1)
	tx, r, rec := forgeSession(t, p)
	p.Inventory().Set(0, r.MustCreate(ShardID, 30))
	sword, ruby := r.MustCreate("(W)0", 1), r.MustCreate("(O)64", 1)
	_, _ = tx.SetSlot(Left, sword)
	_, _ = tx.SetSlot(Right, ruby)
	require.True(t, tx.Commit())

	p.SetHeld(r.MustCreate("(W)16", 1))
	assert.False(t, tx.Tick(forgeDuration))

	assert.False(t, tx.Locked())
	assert.Equal(t, Valid, tx.State())
	assert.Same(t, sword, tx.Slot(Left))
	assert.Zero(t, sword.TotalForgeLevels())
	assert.Same(t, ruby, tx.Slot(Right))
	assert.Equal(t, 1, ruby.Stack)
	assert.Equal(t, 30, p.Inventory().CountID(ShardID))
	assert.Equal(t, present.Text(present.MsgNoRoom), rec.LastMessage())
}

func TestResultGoesToInventoryWhenCursorBusy(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, testRecipes())
	p := newPlayer(1, r.MustCreate("(O)24", 1))
	held := r.MustCreate("(C)1000", 1)
	p.SetHeld(held)
	tx := New(tl, p, 1500*time.Millisecond)
	_, _ = tx.SetSlot(Left, r.MustCreate("(O)428", 2))
	_, _ = tx.SetSlot(Right, r.MustCreate("(O)24", 1))

	assert.False(t, tx.Commit(), "clothing does not stack and the inventory is full")
	p.Inventory().Set(0, nil)
	require.True(t, tx.Commit())
	require.True(t, tx.Tick(1500*time.Millisecond))
	assert.Same(t, held, p.Held())
	assert.Equal(t, "(C)1000", p.Inventory().Get(0).ID)
	assert.Equal(t, 1, tx.Slot(Left).Stack)
	assert.Nil(t, tx.Slot(Right))
}

func TestUnforgeRefundsShards(t *testing.T) {
	p := newPlayer(4)
	tx, r, rec := forgeSession(t, p)
	pickaxe := forgeLevels(r.MustCreate("(T)IridiumPickaxe", 1), "Ruby", "Jade")
	_, _ = tx.SetSlot(Left, pickaxe)

	require.True(t, tx.Unforge())
	assert.Equal(t, 12, p.Inventory().CountID(ShardID))
	assert.Zero(t, pickaxe.TotalForgeLevels())
	assert.Empty(t, pickaxe.Enchantments)
	assert.Same(t, pickaxe, tx.Slot(Left))
	assert.True(t, rec.SaidContaining("12"))

	assert.False(t, tx.Unforge(), "nothing left to unforge")
}

func TestUnforgeRefusedWithRightSlotOccupied(t *testing.T) {
	p := newPlayer(4)
	tx, r, rec := forgeSession(t, p)
	sword := forgeLevels(r.MustCreate("(W)0", 1), "Ruby")
	_, _ = tx.SetSlot(Left, sword)
	_, _ = tx.SetSlot(Right, r.MustCreate("(O)64", 1))

	assert.False(t, tx.Unforge())
	assert.Equal(t, 1, sword.TotalForgeLevels())
	assert.Equal(t, present.Text(present.MsgUnforgeBlocked), rec.LastMessage())
}

func TestUnforgeNeedsRoomForRefund(t *testing.T) {
	p := newPlayer(1)
	tx, r, rec := forgeSession(t, p)
	p.Inventory().Set(0, r.MustCreate("(O)24", 1))
	sword := forgeLevels(r.MustCreate("(W)0", 1), "Ruby")
	_, _ = tx.SetSlot(Left, sword)

	assert.False(t, tx.Unforge())
	assert.Equal(t, 1, sword.TotalForgeLevels())
	assert.Equal(t, present.Text(present.MsgNoRoom), rec.LastMessage())
}

func TestUnforgeSplitsCombinedRing(t *testing.T) {
	p := newPlayer(2)
	tx, r, _ := forgeSession(t, p)
	combined, err := NewForge(r, 1).Craft(nil, r.MustCreate("(O)516", 1), r.MustCreate("(O)529", 1))
	require.NoError(t, err)
	_, _ = tx.SetSlot(Left, combined.Result)

	require.True(t, tx.Unforge())
	assert.Equal(t, "(O)516", tx.Slot(Left).ID)
	assert.Equal(t, "(O)529", tx.Slot(Right).ID)
	assert.Zero(t, p.Inventory().CountID(ShardID))
}

// Force-closing everything at once with nowhere to put it drops every unit on
// the ground and loses none.
func TestEmergencyShutdownRescuesEverything(t *testing.T) {
	r := testRegistry(t)
	inv := inventory.From(3, r.MustCreate(ShardID, 50), r.MustCreate("(O)24", 3), r.MustCreate("(W)1", 1))
	p := world.NewState(inv, 0)

	areas := bundle.Build([]bundle.Definition{{
		Index:       0,
		Area:        "Pantry",
		Name:        "Spring Crops",
		Ingredients: []ingredient.Requirement{{ID: "(O)24", Stack: 5}},
	}}, p, p)
	page := bundle.NewPage(areas[0], p)
	require.True(t, page.Open(0))
	require.True(t, page.DonateFromInventory(1))
	require.Equal(t, 3, page.Ledger().PendingUnits())
	inv.Set(1, r.MustCreate("(O)766", 999))

	tx := New(NewForge(r, 1), p, forgeDuration)
	_, _ = tx.SetSlot(Left, r.MustCreate("(W)0", 1))
	_, _ = tx.SetSlot(Right, r.MustCreate("(O)64", 4))
	require.True(t, tx.Commit())
	p.SetHeld(r.MustCreate("(W)16", 1))
	require.True(t, tx.Locked())

	tx.EmergencyShutdown()
	page.EmergencyShutdown()

	assert.True(t, tx.Closed())
	assert.False(t, tx.Locked())
	assert.Nil(t, tx.Slot(Left))
	assert.Nil(t, tx.Slot(Right))
	assert.Nil(t, p.Held())
	assert.False(t, page.Ledger().Active())
	// sword + 4 rubies + knife + 3 parsnips
	assert.Equal(t, 9, p.DebrisUnits())
	assert.Equal(t, 50, inv.CountID(ShardID), "shards are only spent when a craft lands")
}

func TestCloseReturnsSlotsToInventory(t *testing.T) {
	p := newPlayer(4)
	tx, r, _ := forgeSession(t, p)
	_, _ = tx.SetSlot(Left, r.MustCreate("(W)0", 1))
	_, _ = tx.SetSlot(Right, r.MustCreate("(O)64", 2))

	require.True(t, tx.Close())
	assert.True(t, tx.Closed())
	assert.Equal(t, 2, p.Inventory().CountID("(O)64"))
	assert.Equal(t, 1, p.Inventory().CountID("(W)0"))
	assert.Zero(t, p.DebrisUnits())
	_, ok := tx.SetSlot(Left, r.MustCreate("(W)1", 1))
	assert.False(t, ok)
}

func TestPlaceFromInventoryAndHeld(t *testing.T) {
	p := newPlayer(4)
	tx, r, _ := forgeSession(t, p)
	p.Inventory().Set(2, r.MustCreate("(W)0", 1))
	p.SetHeld(r.MustCreate("(O)64", 1))

	require.True(t, tx.PlaceFromInventory(2, Left))
	assert.Nil(t, p.Inventory().Get(2))
	require.True(t, tx.PlaceHeld(Right))
	assert.Nil(t, p.Held())
	assert.Equal(t, "(O)64", tx.Slot(Right).ID)

	assert.Equal(t, []bool{false, false, false, false}, tx.HighlightInventory())
	p.Inventory().Set(0, r.MustCreate("(O)529", 1))
	assert.True(t, tx.HighlightInventory()[0])
}
