package pagination

import "testing"

func TestPaginateWindows(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	p := Paginate(items, 1, 5)
	if p.Total != 3 {
		t.Fatalf("total pages = %d, want 3", p.Total)
	}
	if len(p.Items) != 5 || p.Items[0] != 0 {
		t.Fatalf("page 1 window = %v", p.Items)
	}

	p = Paginate(items, 3, 5)
	if len(p.Items) != 2 || p.Items[0] != 10 {
		t.Fatalf("page 3 window = %v", p.Items)
	}
}

func TestPaginateClamping(t *testing.T) {
	items := make([]int, 12)

	if p := Paginate(items, 0, 5); p.Number != 1 {
		t.Fatalf("page 0 clamped to %d, want 1", p.Number)
	}
	if p := Paginate(items, 4, 5); p.Number != 3 {
		t.Fatalf("page 4 clamped to %d, want 3", p.Number)
	}
	if p := Paginate(items, -7, 5); p.Number != 1 {
		t.Fatalf("negative page clamped to %d, want 1", p.Number)
	}
}

func TestPaginateEmpty(t *testing.T) {
	p := Paginate([]string(nil), 2, 5)
	if p.Total != 1 || p.Number != 1 || len(p.Items) != 0 {
		t.Fatalf("empty listing: %+v", p)
	}
}
