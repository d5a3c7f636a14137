package auth

import "testing"

func TestAllowList(t *testing.T) {
	p := NewAllowList([]int64{100, 200, 0})

	cases := []struct {
		userID int64
		want   bool
	}{
		{100, true},
		{200, true},
		{300, false},
		{0, false},
	}
	for _, tc := range cases {
		if got := p.IsAdmin(tc.userID); got != tc.want {
			t.Fatalf("IsAdmin(%d) = %v, want %v", tc.userID, got, tc.want)
		}
	}
}

func TestAllowListEmpty(t *testing.T) {
	if NewAllowList(nil).IsAdmin(1) {
		t.Fatal("empty allow-list must not grant access")
	}
	var nilList *AllowList
	if nilList.IsAdmin(1) {
		t.Fatal("nil allow-list must not grant access")
	}
}
