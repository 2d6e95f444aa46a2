package frames

import "testing"

func TestContainsExpressionMarker(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected bool
	}{
		{"plain identifier", "plain", false},
		{"marker in middle", "a@b", true},
		{"escaped marker", "a@@b", false},
		{"marker at start", "@x", true},
		{"marker at end", "abc@", true},
		{"escaped then real", "a@@b@c", true},
		{"only escapes", "@@@@", false},
		{"triple marker is escape plus real", "a@@@b", true},
		{"empty string", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ContainsExpressionMarker(tc.input)
			if got != tc.expected {
				t.Errorf("ContainsExpressionMarker(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestStaticPortion(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain identifier", "plain", "plain"},
		{"marker in middle", "item_@x", "item_"},
		{"marker at start", "@x", ""},
		{"escaped marker is static", "a@@b", "a@@b"},
		{"escape before real marker", "a@@b@c", "a@@b"},
		{"empty string", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StaticPortion(tc.input)
			if got != tc.expected {
				t.Errorf("StaticPortion(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
