package view

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpalmerr/catalog/internal/store"
)

func products(names ...string) []store.Product {
	out := make([]store.Product, len(names))
	for i, n := range names {
		out[i] = store.Product{ID: fmt.Sprintf("id-%d", i), Name: n, Price: float64(i)}
	}
	return out
}

func numbered(n int) []store.Product {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("P%d", i+1)
	}
	return products(names...)
}

func rowNames(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Product.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	t.Run("empty term returns everything in order", func(t *testing.T) {
		catalog := products("c", "a", "b")
		rows := Filter(catalog, "")
		assert.Equal(t, []string{"c", "a", "b"}, rowNames(rows))
		for i, r := range rows {
			assert.Equal(t, i, r.Index)
		}
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		rows := Filter(products("Apple", "banana"), "AN")
		require.Len(t, rows, 1)
		assert.Equal(t, "banana", rows[0].Product.Name)
	})

	t.Run("keeps global index", func(t *testing.T) {
		rows := Filter(products("pen", "book", "Pencil", "paper", "PEN drive"), "pen")
		assert.Equal(t, []string{"pen", "Pencil", "PEN drive"}, rowNames(rows))
		assert.Equal(t, []int{0, 2, 4}, []int{rows[0].Index, rows[1].Index, rows[2].Index})
		assert.Equal(t, "id-2", rows[1].Product.ID)
	})

	t.Run("unicode folding", func(t *testing.T) {
		rows := Filter(products("Straße", "Bánh Mì"), "BÁNH")
		require.Len(t, rows, 1)
		assert.Equal(t, "Bánh Mì", rows[0].Product.Name)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Filter(products("a", "b"), "zzz"))
	})
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, want int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{12, 0, 3}, // falls back to DefaultPageSize
		{2, math.MaxInt, 1},
		{math.MaxInt, math.MaxInt, 1},
		{math.MaxInt, 1, math.MaxInt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.count, tt.size), "TotalPages(%d, %d)", tt.count, tt.size)
	}
}

func TestPaginate_HugePageSize(t *testing.T) {
	page := Paginate(Filter(products("a", "b"), ""), math.MaxInt, 3)

	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Number)
	assert.Len(t, page.Rows, 2)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(-4, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 1, ClampPage(2, 0))
}

func TestPaginate_TwelveItems(t *testing.T) {
	rows := Filter(numbered(12), "")

	page := Paginate(rows, 5, 3)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Number)
	assert.Len(t, page.Rows, 2)
	assert.Equal(t, 12, page.Total)

	clamped := Paginate(rows, 5, 4)
	assert.Equal(t, 3, clamped.Number)
	assert.Equal(t, page.Rows, clamped.Rows)
}

func TestPaginate_SixItems(t *testing.T) {
	rows := Filter(numbered(6), "")

	first := Paginate(rows, 5, 1)
	assert.Equal(t, 2, first.TotalPages)
	assert.Equal(t, []string{"P1", "P2", "P3", "P4", "P5"}, rowNames(first.Rows))

	second := Paginate(rows, 5, 2)
	assert.Equal(t, []string{"P6"}, rowNames(second.Rows))
	assert.Equal(t, 5, second.Rows[0].Index)
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate(nil, 5, 3)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Number)
	assert.Empty(t, page.Rows)
	assert.NotNil(t, page.Rows)
}

func TestPaginate_DefaultPageSize(t *testing.T) {
	page := Paginate(Filter(numbered(7), ""), 0, 1)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Rows, DefaultPageSize)
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	rows := Filter(numbered(3), "")
	page := Paginate(rows, 5, 1)
	page.Rows[0].Product.Name = "mutated"
	assert.Equal(t, "P1", rows[0].Product.Name)
}

func TestQuery_ClampsAfterLastPageEmptied(t *testing.T) {
	s := store.NewMemoryStore()
	for _, p := range numbered(6) {
		s.Add(p)
	}

	page := Query(s.List(), "", 5, 2)
	require.Len(t, page.Rows, 1)

	// removing the only record on page 2 must fall back to page 1
	_, err := s.Remove(page.Rows[0].Product.ID)
	require.NoError(t, err)

	page = Query(s.List(), "", 5, 2)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Rows, 5)
	assert.Equal(t, s.Version(), page.Version)
}

func TestQuery_DeleteFirstDisplayedRowRemovesRightRecord(t *testing.T) {
	s := store.NewMemoryStore()
	for _, name := range []string{"Pen", "Book", "Pencil", "Paper", "Pen case", "Notebook", "Pen refill", "Pen stand"} {
		s.Add(store.Product{Name: name})
	}

	// search "pen" with 2 per page; page 2 shows "Pen case" and "Pen refill"
	page := Query(s.List(), "pen", 2, 2)
	require.Equal(t, []string{"Pen case", "Pen refill"}, rowNames(page.Rows))

	first := page.Rows[0]
	assert.Equal(t, 4, first.Index)

	_, err := s.RemoveAt(first.Index)
	require.NoError(t, err)

	var remaining []string
	for _, p := range s.List().Products {
		remaining = append(remaining, p.Name)
	}
	// display position 0 would have removed "Pen"
	assert.Equal(t, []string{"Pen", "Book", "Pencil", "Paper", "Notebook", "Pen refill", "Pen stand"}, remaining)
}
