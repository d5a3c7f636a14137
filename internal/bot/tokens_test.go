package bot

import "testing"

func TestPagePayloadRoundTrip(t *testing.T) {
	cases := []struct {
		listing string
		page    int
	}{
		{listActive, 1},
		{listCompleted, 3},
		{listTracked, 12},
		{listPending, 2},
	}
	for _, tc := range cases {
		p := pagePayload(tc.listing, tc.page)
		listing, page, err := parsePagePayload(p)
		if err != nil {
			t.Fatalf("parse %q: %v", p, err)
		}
		if listing != tc.listing || page != tc.page {
			t.Fatalf("parse %q = (%q, %d), want (%q, %d)", p, listing, page, tc.listing, tc.page)
		}
	}
}

func TestParsePagePayloadRejectsGarbage(t *testing.T) {
	for _, p := range []string{"", "active", "_3", "active_", "active_x", "unknown_2"} {
		if _, _, err := parsePagePayload(p); err == nil {
			t.Fatalf("parse %q should fail", p)
		}
	}
}

func TestIndexPayload(t *testing.T) {
	if got := indexPayload(3); got != "3" {
		t.Fatalf("indexPayload(3) = %q", got)
	}
}
