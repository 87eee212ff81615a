package util

import "testing"

func TestClientIP(t *testing.T) {
	cases := []struct {
		name         string
		forwardedFor string
		realIP       string
		want         string
	}{
		{"forwarded chain", "203.0.113.7, 10.0.0.1, 10.0.0.2", "198.51.100.1", "203.0.113.7"},
		{"single forwarded", "203.0.113.7", "", "203.0.113.7"},
		{"forwarded with spaces", " 203.0.113.7 , 10.0.0.1", "", "203.0.113.7"},
		{"real ip fallback", "", "198.51.100.1", "198.51.100.1"},
		{"neither present", "", "", UnknownIP},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClientIP(tc.forwardedFor, tc.realIP); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
