package input

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Kind
	}{
		{"https://t.me/contest/123", Link},
		{"http://example.com", Link},
		{"HTTPS://example.com", Plain}, // scheme is case-sensitive, as in the URL pattern
		{"ftp://example.com", Plain},
		{"01.09", Date},
		{"31.02", Date}, // shape only; normalization rejects it later
		{"1.9", Plain},
		{"01.09.2026", Plain},
		{"show contests", Plain},
		{"", Plain},
	}

	for _, tc := range cases {
		if got := Classify(tc.text); got != tc.want {
			t.Fatalf("Classify(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestIsLinkPrefixOnly(t *testing.T) {
	// The link test anchors at the start; a URL buried in text is not a link.
	if IsLink("see https://example.com") {
		t.Fatal("embedded URL should not classify as link")
	}
	if !IsLink("https://example.com trailing words") {
		t.Fatal("leading URL should classify as link")
	}
}
