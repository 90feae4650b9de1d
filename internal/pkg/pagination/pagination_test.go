package pagination

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
	}{
		{"valid passthrough", 3, 25, 3, 25},
		{"zero page", 0, 10, DefaultPage, 10},
		{"negative page", -5, 10, DefaultPage, 10},
		{"zero size", 1, 0, 1, DefaultSize},
		{"negative size", 1, -1, 1, DefaultSize},
		{"oversized clamped", 1, 5000, 1, MaxSize},
		{"max size kept", 2, MaxSize, 2, MaxSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Normalize(tt.page, tt.size)
			if q.Page != tt.wantPage || q.Size != tt.wantSize {
				t.Errorf("Normalize(%d, %d) = %+v, want page=%d size=%d",
					tt.page, tt.size, q, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestMeta(t *testing.T) {
	tests := []struct {
		name        string
		total       int64
		q           Query
		wantPages   int
		wantHasNext bool
	}{
		{"empty set", 0, Query{Page: 1, Size: 10}, 0, false},
		{"single partial page", 7, Query{Page: 1, Size: 10}, 1, false},
		{"exact boundary", 20, Query{Page: 1, Size: 10}, 2, true},
		{"last page", 20, Query{Page: 2, Size: 10}, 2, false},
		{"past the end", 20, Query{Page: 5, Size: 10}, 2, false},
		{"remainder adds a page", 21, Query{Page: 2, Size: 10}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Meta(tt.total, tt.q)
			if m.TotalPage != tt.wantPages {
				t.Errorf("TotalPage = %d, want %d", m.TotalPage, tt.wantPages)
			}
			if m.HasNextPage != tt.wantHasNext {
				t.Errorf("HasNextPage = %v, want %v", m.HasNextPage, tt.wantHasNext)
			}
			if m.Total != tt.total || m.CurrentPage != tt.q.Page || m.Size != tt.q.Size {
				t.Errorf("metadata mismatch: %+v", m)
			}
		})
	}
}
