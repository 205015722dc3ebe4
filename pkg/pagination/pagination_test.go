package pagination

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	params := Params{}.Normalize()
	if params.Page != 1 || params.Limit != DefaultLimit {
		t.Fatalf("unexpected defaults: %+v", params)
	}
}

func TestNormalizeCapsLimit(t *testing.T) {
	params := Params{Page: 2, Limit: 500}.Normalize()
	if params.Limit != MaxLimit {
		t.Fatalf("expected limit capped at %d, got %d", MaxLimit, params.Limit)
	}
}

func TestOffset(t *testing.T) {
	if got := (Params{Page: 1, Limit: 10}).Offset(); got != 0 {
		t.Fatalf("expected offset 0, got %d", got)
	}
	if got := (Params{Page: 3, Limit: 10}).Offset(); got != 20 {
		t.Fatalf("expected offset 20, got %d", got)
	}
}

func TestBuildTotalPages(t *testing.T) {
	page := Params{Page: 1, Limit: 10}.Build(21)
	if page.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", page.TotalPages)
	}
	if page.Total != 21 {
		t.Fatalf("expected total 21, got %d", page.Total)
	}

	page = Params{Page: 1, Limit: 10}.Build(0)
	if page.TotalPages != 0 {
		t.Fatalf("expected 0 total pages for empty listing, got %d", page.TotalPages)
	}
}
