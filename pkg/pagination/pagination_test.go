package pagination

import (
	"testing"
	"time"
)

type row struct {
	id string
	at time.Time
}

func rows(n int) []row {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := make([]row, n)
	for i := range out {
		out[i] = row{id: string(rune('a' + i)), at: base.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := rows(7)
	tests := []struct {
		name      string
		params    *PaginationParams
		wantIDs   string
		wantPages int
		wantNext  bool
	}{
		{name: "firstPage", params: &PaginationParams{Page: 1, PerPage: 3}, wantIDs: "abc", wantPages: 3, wantNext: true},
		{name: "lastPartialPage", params: &PaginationParams{Page: 3, PerPage: 3}, wantIDs: "g", wantPages: 3},
		{name: "pastEnd", params: &PaginationParams{Page: 9, PerPage: 3}, wantIDs: "", wantPages: 3},
		{name: "defaults", params: nil, wantIDs: "abcdefg", wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Paginate(items, tt.params)
			got := ""
			for _, r := range res.Items {
				got += r.id
			}
			if got != tt.wantIDs {
				t.Errorf("items = %q, want %q", got, tt.wantIDs)
			}
			if res.Pagination.TotalPages != tt.wantPages || res.Pagination.HasNext != tt.wantNext {
				t.Errorf("pagination = %+v", res.Pagination)
			}
			if res.Pagination.Total != 7 {
				t.Errorf("total = %d, want 7", res.Pagination.Total)
			}
		})
	}
}

func TestPaginateAfter(t *testing.T) {
	items := rows(5)
	id := func(r row) string { return r.id }
	at := func(r row) time.Time { return r.at }

	first, err := PaginateAfter(items, &CursorParams{Limit: 2}, id, at)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if len(first.Items) != 2 || first.Items[1].id != "b" || first.Pagination.NextCursor == nil {
		t.Fatalf("first page = %+v", first)
	}

	second, err := PaginateAfter(items, &CursorParams{Cursor: *first.Pagination.NextCursor, Limit: 2}, id, at)
	if err != nil {
		t.Fatalf("error = %v", err)
	}
	if second.Items[0].id != "c" || second.Items[1].id != "d" || !second.Pagination.HasNext {
		t.Errorf("second page = %+v", second.Items)
	}

	if _, err := PaginateAfter(items, &CursorParams{Cursor: "%%%"}, id, at); err == nil {
		t.Error("expected error for malformed cursor")
	}

	unknown, _ := PaginateAfter(items, &CursorParams{Cursor: EncodeCursor("zz")}, id, at)
	if len(unknown.Items) != 0 {
		t.Errorf("unknown cursor returned %d items", len(unknown.Items))
	}
}
