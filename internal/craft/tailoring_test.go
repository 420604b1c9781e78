package craft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecipes() []Recipe {
	return []Recipe{
		{Name: "slime_shirt", FirstItemTags: []string{"item_cloth"}, SecondItemTags: []string{"item_slime"}, SpendRightItem: true, CraftedItemID: "(C)1002"},
		{Name: "sailor_shirt", FirstItemTags: []string{"item_cloth"}, SecondItemTags: []string{"!category_-75"}, CraftedItemID: "(C)1001"},
		{Name: "shirt", FirstItemTags: []string{"item_cloth"}, SpendRightItem: true, CraftedItemID: "(C)1000"},
	}
}

func TestRecipeTableFirstMatchWins(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, testRecipes())
	cloth := r.MustCreate("(O)428", 1)

	tests := []struct {
		right string
		want  string
	}{
		{right: "(O)766", want: "slime_shirt"},
		{right: "(O)64", want: "sailor_shirt"},
		{right: "(O)24", want: "shirt"},
	}
	for _, tc := range tests {
		t.Run(tc.right, func(t *testing.T) {
			got, ok := tl.RecipeFor(cloth, r.MustCreate(tc.right, 1))
			require.True(t, ok)
			assert.Equal(t, tc.want, got.Name)
		})
	}
}

func TestTailoringRecipeConsumesOneCloth(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, testRecipes())
	cloth, slime := r.MustCreate("(O)428", 3), r.MustCreate("(O)766", 2)

	ev := tl.Evaluate(nil, cloth, slime)
	require.Equal(t, Valid, ev.State)
	assert.Equal(t, "(C)1002", ev.Preview.ID)
	assert.Equal(t, "green", ev.Preview.Color)
	assert.Zero(t, ev.Cost)

	out, err := tl.Craft(nil, cloth, slime)
	require.NoError(t, err)
	assert.Equal(t, "(C)1002", out.Result.ID)
	assert.Equal(t, 2, out.Left.Stack)
	assert.Equal(t, 1, out.Right.Stack)
}

func TestTailoringKeepsRightItemWhenNotSpent(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, testRecipes())
	ruby := r.MustCreate("(O)64", 1)

	out, err := tl.Craft(nil, r.MustCreate("(O)428", 1), ruby)
	require.NoError(t, err)
	assert.Equal(t, "(C)1001", out.Result.ID)
	assert.Nil(t, out.Left)
	assert.Same(t, ruby, out.Right)
	assert.Equal(t, 1, ruby.Stack)
}

func TestDyeMutatesLeftInPlace(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, testRecipes())
	shirt := r.MustCreate("(C)1000", 1)

	ev := tl.Evaluate(nil, shirt, r.MustCreate("(O)766", 1))
	require.Equal(t, Valid, ev.State)
	assert.Equal(t, "dye", ev.Recipe)
	assert.Empty(t, shirt.Color)

	out, err := tl.Craft(nil, shirt, r.MustCreate("(O)766", 1))
	require.NoError(t, err)
	assert.Same(t, shirt, out.Result)
	assert.Equal(t, "green", shirt.Color)
	assert.Nil(t, out.Left)
	assert.Nil(t, out.Right)

	assert.Equal(t, InvalidRecipe, tl.Evaluate(nil, shirt, r.MustCreate("(O)766", 1)).State,
		"dyeing to the same color is not a craft")
}

func TestNotDyeable(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, testRecipes())

	ev := tl.Evaluate(nil, r.MustCreate("(C)1001", 1), r.MustCreate("(O)766", 1))
	assert.Equal(t, NotDyeable, ev.State)
	assert.Nil(t, ev.Preview)

	ev = tl.Evaluate(nil, r.MustCreate("(C)1001", 1), r.MustCreate("(O)24", 1))
	assert.Equal(t, InvalidRecipe, ev.State)
}

func TestBootsSwapLooks(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, nil)
	sneakers := r.MustCreate("(B)504", 1)

	out, err := tl.Craft(nil, sneakers, r.MustCreate("(B)505", 1))
	require.NoError(t, err)
	assert.Same(t, sneakers, out.Result)
	assert.Equal(t, "(B)505", sneakers.AppliedBootsID)

	assert.Equal(t, InvalidRecipe, tl.Evaluate(nil, sneakers, r.MustCreate("(B)505", 1)).State)
	assert.Equal(t, InvalidRecipe, tl.Evaluate(nil, sneakers, r.MustCreate("(B)504", 1)).State)
}

func TestTailoringUnknownResultIsInvalid(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, []Recipe{{Name: "ghost", FirstItemTags: []string{"item_cloth"}, CraftedItemID: "(C)9999"}})

	ev := tl.Evaluate(nil, r.MustCreate("(O)428", 1), r.MustCreate("(O)24", 1))
	assert.Equal(t, InvalidRecipe, ev.State)
	_, err := tl.Craft(nil, r.MustCreate("(O)428", 1), r.MustCreate("(O)24", 1))
	assert.ErrorIs(t, err, ErrUnknownResult)
}

func TestTailoringAccepts(t *testing.T) {
	r := testRegistry(t)
	tl := NewTailoring(r, testRecipes())

	assert.True(t, tl.Accepts(Left, r.MustCreate("(O)428", 1)))
	assert.True(t, tl.Accepts(Left, r.MustCreate("(C)1001", 1)))
	assert.False(t, tl.Accepts(Left, r.MustCreate("(O)24", 1)))
	assert.True(t, tl.Accepts(Right, r.MustCreate("(O)766", 1)))
	assert.True(t, tl.Accepts(Right, r.MustCreate("(B)505", 1)))
}
