package aggregate

import (
	"reflect"
	"testing"
)

func TestPaginate(t *testing.T) {
	cases := []struct {
		name                 string
		n, page              int
		lo, hi, totalPages   int
	}{
		{"empty", 0, 1, 0, 0, 0},
		{"single partial page", 7, 1, 0, 7, 1},
		{"exact boundary", 40, 2, 20, 40, 2},
		{"middle page", 45, 2, 20, 40, 3},
		{"last partial page", 45, 3, 40, 45, 3},
		{"page past end", 45, 9, 45, 45, 3},
		{"page zero", 45, 0, 0, 0, 3},
		{"negative page", 45, -1, 0, 0, 3},
	}
	for _, tc := range cases {
		lo, hi, totalPages := Paginate(tc.n, tc.page)
		if lo != tc.lo || hi != tc.hi || totalPages != tc.totalPages {
			t.Errorf("%s: Paginate(%d, %d) = (%d, %d, %d), want (%d, %d, %d)",
				tc.name, tc.n, tc.page, lo, hi, totalPages, tc.lo, tc.hi, tc.totalPages)
		}
	}
}

// Requesting the same page twice over the same data is idempotent.
func TestPaginateIdempotent(t *testing.T) {
	lo1, hi1, tp1 := Paginate(63, 2)
	lo2, hi2, tp2 := Paginate(63, 2)
	if lo1 != lo2 || hi1 != hi2 || tp1 != tp2 {
		t.Fatalf("repeated call diverged: (%d,%d,%d) vs (%d,%d,%d)", lo1, hi1, tp1, lo2, hi2, tp2)
	}
}

func TestPageWindow(t *testing.T) {
	cases := []struct {
		page, totalPages int
		want             []int
	}{
		{1, 0, nil},
		{1, 3, []int{1, 2, 3}},
		{4, 5, []int{1, 2, 3, 4, 5}},
		{1, 12, []int{1, 2, 3, 4, 5}},
		{3, 12, []int{1, 2, 3, 4, 5}},
		{6, 12, []int{4, 5, 6, 7, 8}},
		{10, 12, []int{8, 9, 10, 11, 12}},
		{12, 12, []int{8, 9, 10, 11, 12}},
	}
	for _, tc := range cases {
		got := PageWindow(tc.page, tc.totalPages)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("PageWindow(%d, %d) = %v, want %v", tc.page, tc.totalPages, got, tc.want)
		}
	}
}
