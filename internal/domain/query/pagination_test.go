package query

import (
	"math"
	"testing"
)

func TestPaginate_SecondPageOfTwentyFive(t *testing.T) {
	p := Paginate(25, 2, 10)
	if p.StartIndex != 10 || p.EndIndex != 20 {
		t.Fatalf("expected window [10,20), got [%d,%d)", p.StartIndex, p.EndIndex)
	}
	if p.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", p.TotalPages)
	}
	if p.Next == nil || p.Next.Page != 3 {
		t.Fatalf("expected next page 3, got %+v", p.Next)
	}
	if p.Prev == nil || p.Prev.Page != 1 {
		t.Fatalf("expected prev page 1, got %+v", p.Prev)
	}
}

func TestPaginate_Properties(t *testing.T) {
	for total := 0; total <= 60; total++ {
		for limit := 1; limit <= 12; limit++ {
			for page := 1; page <= 8; page++ {
				p := Paginate(total, page, limit)
				if p.StartIndex >= p.EndIndex && p.StartIndex < total {
					t.Fatalf("total=%d page=%d limit=%d: empty window inside range", total, page, limit)
				}
				if (p.Next != nil) != (p.EndIndex < total) {
					t.Fatalf("total=%d page=%d limit=%d: next=%v end=%d", total, page, limit, p.Next, p.EndIndex)
				}
				if (p.Prev != nil) != (page > 1) {
					t.Fatalf("total=%d page=%d limit=%d: prev=%v", total, page, limit, p.Prev)
				}
				if p.TotalPages*limit < total || (p.TotalPages-1)*limit >= total && total > 0 {
					t.Fatalf("total=%d limit=%d: bad totalPages %d", total, limit, p.TotalPages)
				}
			}
		}
	}
}

func TestPaginate_HugeValuesDoNotOverflow(t *testing.T) {
	cases := []struct {
		total, page, limit int
		start, end, pages  int
		next, prev         bool
	}{
		{total: 5, page: 1, limit: math.MaxInt, start: 0, end: 5, pages: 1},
		{total: 5, page: 2, limit: math.MaxInt, start: 5, end: 5, pages: 1, prev: true},
		{total: 5, page: math.MaxInt, limit: 10, start: 5, end: 5, pages: 1, prev: true},
		{total: math.MaxInt, page: 2, limit: math.MaxInt - 1, start: math.MaxInt - 1, end: math.MaxInt, pages: 2, prev: true},
		{total: 30, page: math.MaxInt, limit: math.MaxInt, start: 30, end: 30, pages: 1, prev: true},
	}
	for _, tc := range cases {
		p := Paginate(tc.total, tc.page, tc.limit)
		if p.StartIndex != tc.start || p.EndIndex != tc.end || p.TotalPages != tc.pages {
			t.Errorf("Paginate(%d, %d, %d) = [%d,%d) pages=%d, want [%d,%d) pages=%d",
				tc.total, tc.page, tc.limit, p.StartIndex, p.EndIndex, p.TotalPages, tc.start, tc.end, tc.pages)
		}
		if (p.Next != nil) != tc.next || (p.Prev != nil) != tc.prev {
			t.Errorf("Paginate(%d, %d, %d): next=%v prev=%v", tc.total, tc.page, tc.limit, p.Next, p.Prev)
		}
		if (p.Next != nil) != (p.EndIndex < tc.total) {
			t.Errorf("Paginate(%d, %d, %d): next disagrees with end %d", tc.total, tc.page, tc.limit, p.EndIndex)
		}
	}
}

func TestPaginate_Defaults(t *testing.T) {
	p := Paginate(3, 0, 0)
	if p.Page != 1 || p.Limit != 25 || p.Next != nil || p.Prev != nil {
		t.Fatalf("unexpected defaults %+v", p)
	}
	empty := Paginate(0, 1, 25)
	if empty.TotalPages != 0 || empty.Next != nil || empty.EndIndex != 0 {
		t.Fatalf("unexpected empty pagination %+v", empty)
	}
}
