package request

import "testing"

func TestResolveEventID(t *testing.T) {
	cases := []struct {
		name                    string
		bodyID, headerID, query string
		want                    string
	}{
		{"body wins", "evt_body", "evt_header", "evt_query", "evt_body"},
		{"header when body empty", "", "evt_header", "evt_query", "evt_header"},
		{"query when body and header empty", " ", "", "evt_query", "evt_query"},
		{"all empty", "", " ", "", ""},
		{"whitespace trimmed", " evt_1 ", "", "", "evt_1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveEventID(tc.bodyID, tc.headerID, tc.query); got != tc.want {
				t.Fatalf("ResolveEventID(%q, %q, %q) = %q, want %q", tc.bodyID, tc.headerID, tc.query, got, tc.want)
			}
		})
	}
}
