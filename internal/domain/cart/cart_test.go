package cart

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCart_Add_MergesSameProductAndVariant(t *testing.T) {
	c := New()

	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 2))
	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 1))

	require.Equal(t, 1, c.Len())
	item := c.Items()[0]
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, dec("120").Equal(item.TotalPrice))
	assert.True(t, dec("120").Equal(c.Subtotal()))
	assert.True(t, dec("170").Equal(c.Total(dec("50"))))
}

func TestCart_Add_DifferentVariantsStaySeparate(t *testing.T) {
	c := New()

	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 1))
	require.NoError(t, c.Add("Tomato", "500g", dec("22"), 1))

	assert.Equal(t, 2, c.Len())
}

func TestCart_Add_KeepsInsertionOrder(t *testing.T) {
	c := New()

	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 1))
	require.NoError(t, c.Add("Onion", "1kg", dec("30"), 1))
	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 2))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Tomato", items[0].ProductName)
	assert.Equal(t, "Onion", items[1].ProductName)
}

func TestCart_Add_RejectsBadInput(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		price    decimal.Decimal
		quantity int
		wantErr  error
	}{
		{"zero quantity", "Tomato", dec("40"), 0, ErrInvalidQuantity},
		{"negative quantity", "Tomato", dec("40"), -2, ErrInvalidQuantity},
		{"negative price", "Tomato", dec("-1"), 1, ErrNegativePrice},
		{"empty product name", "", dec("40"), 1, ErrMissingProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			err := c.Add(tt.product, "1kg", tt.price, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, c.Len())
		})
	}
}

func TestCart_Add_AllowsFreeItems(t *testing.T) {
	c := New()

	require.NoError(t, c.Add("Coriander", "bunch", decimal.Zero, 1))
	assert.True(t, c.Subtotal().IsZero())
}

func TestCart_SetQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 2))

	require.NoError(t, c.SetQuantity(0, 5))

	item := c.Items()[0]
	assert.Equal(t, 5, item.Quantity)
	assert.True(t, dec("200").Equal(item.TotalPrice))
}

func TestCart_SetQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		c := New()
		require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 2))

		require.NoError(t, c.SetQuantity(0, q))

		assert.True(t, c.IsEmpty())
		assert.True(t, c.Subtotal().IsZero())
	}
}

func TestCart_SetQuantity_OutOfRange(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 1))

	assert.ErrorIs(t, c.SetQuantity(1, 2), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.SetQuantity(-1, 2), ErrIndexOutOfRange)
}

func TestCart_Remove_ShiftsIndices(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 1))
	require.NoError(t, c.Add("Onion", "1kg", dec("30"), 1))
	require.NoError(t, c.Add("Potato", "2kg", dec("60"), 1))

	require.NoError(t, c.Remove(1))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Tomato", items[0].ProductName)
	assert.Equal(t, "Potato", items[1].ProductName)
}

func TestCart_ByID_SurvivesRemovals(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 1))
	require.NoError(t, c.Add("Onion", "1kg", dec("30"), 1))
	require.NoError(t, c.Add("Potato", "2kg", dec("60"), 1))

	potatoID := c.Items()[2].ID
	require.NoError(t, c.Remove(0))

	require.NoError(t, c.SetQuantityByID(potatoID, 4))
	assert.Equal(t, 4, c.Items()[1].Quantity)

	require.NoError(t, c.RemoveByID(potatoID))
	assert.Equal(t, 1, c.Len())
	assert.ErrorIs(t, c.RemoveByID(potatoID), ErrItemNotFound)
}

func TestCart_Subtotal_OrderIndependent(t *testing.T) {
	type entry struct {
		name    string
		variant string
		price   decimal.Decimal
		qty     int
	}
	entries := []entry{
		{"Tomato", "1kg", dec("40"), 2},
		{"Onion", "1kg", dec("30"), 1},
		{"Tomato", "1kg", dec("40"), 1},
		{"Milk", "500ml", dec("27.50"), 3},
		{"Onion", "1kg", dec("30"), 2},
	}

	baseline := New()
	for _, e := range entries {
		require.NoError(t, baseline.Add(e.name, e.variant, e.price, e.qty))
	}
	want := baseline.Subtotal()

	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]entry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		c := New()
		for _, e := range shuffled {
			require.NoError(t, c.Add(e.name, e.variant, e.price, e.qty))
		}
		assert.True(t, want.Equal(c.Subtotal()))
	}
}

func TestCart_Total_EmptyCartOwesNothing(t *testing.T) {
	c := New()

	assert.True(t, c.Total(dec("50")).IsZero())

	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 1))
	require.NoError(t, c.Remove(0))
	assert.True(t, c.Total(dec("50")).IsZero())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 2))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Subtotal().IsZero())
}

func TestCart_Items_ReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Add("Tomato", "1kg", dec("40"), 2))

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 2, c.Items()[0].Quantity)
}
