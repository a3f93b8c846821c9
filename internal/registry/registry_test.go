package registry

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/idilsaglam/calories/internal/model"
)

type stubLoader struct {
	items []model.Item
	err   error
}

func (s stubLoader) LoadAll() ([]model.Item, error) { return s.items, s.err }

func mustAdd(t *testing.T, r *Registry, name, calories string) model.Item {
	t.Helper()
	it, err := r.AddItem(name, calories)
	require.NoError(t, err)
	return it
}

func TestNew_Empty(t *testing.T) {
	r := New(nil)
	assert.NotNil(t, r.Items())
	assert.Equal(t, 0, r.Len())
	_, ok := r.CurrentItem()
	assert.False(t, ok)
	assert.Equal(t, 0, r.total)

	it := mustAdd(t, r, "Eggs", "300")
	assert.Equal(t, 0, it.ID)
}

func TestLoad_SeedsFromLoader(t *testing.T) {
	r, err := Load(stubLoader{items: []model.Item{
		{ID: 0, Name: "Eggs", Calories: 300},
		{ID: 5, Name: "Toast", Calories: 150},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	it := mustAdd(t, r, "Jam", "50")
	assert.Equal(t, 6, it.ID)
}

func TestLoad_Error(t *testing.T) {
	boom := errors.New("boom")
	_, err := Load(stubLoader{err: boom})
	assert.ErrorIs(t, err, boom)
}

func TestAddItem_Totals(t *testing.T) {
	r := New(nil)
	mustAdd(t, r, "Steak", "1200")
	assert.Equal(t, 1200, r.TotalCalories())

	mustAdd(t, r, "Salad", "300")
	assert.Equal(t, 1500, r.TotalCalories())
}

func TestAddItem_InvalidCalories(t *testing.T) {
	r := New(nil)
	_, err := r.AddItem("Mystery", "lots")
	assert.ErrorIs(t, err, model.ErrInvalidCalories)
	assert.Equal(t, 0, r.Len())

	// a failed parse does not burn an id
	it := mustAdd(t, r, "Eggs", "300")
	assert.Equal(t, 0, it.ID)
}

func TestItems_ReturnsCopy(t *testing.T) {
	r := New(nil)
	mustAdd(t, r, "Eggs", "300")

	items := r.Items()
	items[0].Calories = 9999

	got, ok := r.ItemByID(0)
	require.True(t, ok)
	assert.Equal(t, 300, got.Calories)
}

func TestUpdateItem_OnlyTouchesCurrent(t *testing.T) {
	r := New(nil)
	eggs := mustAdd(t, r, "Eggs", "300")
	toast := mustAdd(t, r, "Toast", "150")
	jam := mustAdd(t, r, "Jam", "50")

	r.SetCurrentItem(toast)
	updated, err := r.UpdateItem("Rye toast", "120")
	require.NoError(t, err)
	assert.Equal(t, model.Item{ID: toast.ID, Name: "Rye toast", Calories: 120}, updated)

	assert.Equal(t, []model.Item{
		eggs,
		{ID: toast.ID, Name: "Rye toast", Calories: 120},
		jam,
	}, r.Items())
	assert.Equal(t, 470, r.TotalCalories())
}

func TestUpdateItem_NoCurrent(t *testing.T) {
	r := New(nil)
	mustAdd(t, r, "Eggs", "300")

	_, err := r.UpdateItem("Omelette", "350")
	assert.ErrorIs(t, err, ErrNoCurrentItem)
}

func TestUpdateItem_CurrentRemoved(t *testing.T) {
	r := New(nil)
	eggs := mustAdd(t, r, "Eggs", "300")
	r.SetCurrentItem(eggs)
	require.NoError(t, r.DeleteItem(eggs.ID))

	_, ok := r.CurrentItem()
	assert.False(t, ok)

	_, err := r.UpdateItem("Omelette", "350")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestUpdateItem_InvalidCalories(t *testing.T) {
	r := New(nil)
	eggs := mustAdd(t, r, "Eggs", "300")
	r.SetCurrentItem(eggs)

	_, err := r.UpdateItem("Eggs", "")
	assert.ErrorIs(t, err, model.ErrInvalidCalories)

	got, _ := r.ItemByID(eggs.ID)
	assert.Equal(t, eggs, got)
}

func TestDeleteItem(t *testing.T) {
	r := New(nil)
	mustAdd(t, r, "Eggs", "300")
	mustAdd(t, r, "Toast", "150")
	mustAdd(t, r, "Jam", "50")

	require.NoError(t, r.DeleteItem(1))
	assert.Equal(t, 2, r.Len())
	_, ok := r.ItemByID(1)
	assert.False(t, ok)

	err := r.DeleteItem(42)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, 2, r.Len())
}

func TestClearAllItems(t *testing.T) {
	r := New(nil)
	mustAdd(t, r, "Eggs", "300")
	mustAdd(t, r, "Toast", "150")

	r.ClearAllItems()
	assert.Empty(t, r.Items())
	assert.Equal(t, 0, r.TotalCalories())

	// ids keep counting after a clear
	it := mustAdd(t, r, "Apple", "95")
	assert.Equal(t, 2, it.ID)
}

func TestCurrentItem_Lifecycle(t *testing.T) {
	r := New(nil)
	eggs := mustAdd(t, r, "Eggs", "300")

	r.SetCurrentItem(eggs)
	cur, ok := r.CurrentItem()
	require.True(t, ok)
	assert.Equal(t, eggs, cur)

	r.ClearCurrentItem()
	_, ok = r.CurrentItem()
	assert.False(t, ok)
}

func TestDeleteHighestThenAdd_NoReuse(t *testing.T) {
	r := New(nil)
	mustAdd(t, r, "Eggs", "300")
	toast := mustAdd(t, r, "Toast", "150")

	require.NoError(t, r.DeleteItem(toast.ID))
	it := mustAdd(t, r, "Jam", "50")
	assert.Equal(t, 2, it.ID)
}

func TestScenario_EggsAndToast(t *testing.T) {
	r := New(nil)
	mustAdd(t, r, "Eggs", "300")
	mustAdd(t, r, "Toast", "150")
	assert.Equal(t, 450, r.TotalCalories())

	require.NoError(t, r.DeleteItem(0))
	items := r.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Toast", items[0].Name)
	assert.Equal(t, 150, r.TotalCalories())
}

// TestRegistry_IDsStrictlyIncreasing drives random add/delete/clear sequences
// and checks ids stay unique and every new id beats all earlier ones.
func TestRegistry_IDsStrictlyIncreasing(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := New(nil)
		lastID := -1
		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 9).Draw(rt, "op") {
			case 0:
				r.ClearAllItems()
			case 1, 2, 3:
				if r.Len() > 0 {
					idx := rapid.IntRange(0, r.Len()-1).Draw(rt, "idx")
					if err := r.DeleteItem(r.Items()[idx].ID); err != nil {
						rt.Fatalf("delete: %v", err)
					}
				}
			default:
				cal := rapid.IntRange(0, 5000).Draw(rt, "calories")
				it, err := r.AddItem("food", strconv.Itoa(cal))
				if err != nil {
					rt.Fatalf("add: %v", err)
				}
				if it.ID <= lastID {
					rt.Fatalf("id %d not greater than previous %d", it.ID, lastID)
				}
				lastID = it.ID
			}

			seen := map[int]bool{}
			for _, it := range r.Items() {
				if seen[it.ID] {
					rt.Fatalf("duplicate id %d", it.ID)
				}
				seen[it.ID] = true
			}
		}
	})
}

// TestRegistry_TotalMatchesSum checks the cached total against a plain sum.
func TestRegistry_TotalMatchesSum(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := New(nil)
		want := 0
		cals := rapid.SliceOfN(rapid.IntRange(0, 3000), 0, 30).Draw(rt, "calories")
		for _, c := range cals {
			if _, err := r.AddItem("food", strconv.Itoa(c)); err != nil {
				rt.Fatalf("add: %v", err)
			}
			want += c
		}
		if got := r.TotalCalories(); got != want {
			rt.Fatalf("total = %d, want %d", got, want)
		}
	})
}
