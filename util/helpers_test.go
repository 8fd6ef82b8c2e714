package util

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Devworks Bootcamp", "devworks-bootcamp"},
		{"ModernTech  Bootcamp!", "moderntech-bootcamp"},
		{"  UI/UX & Design  ", "ui-ux-design"},
		{"already-a-slug", "already-a-slug"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty("   ") {
		t.Error("whitespace-only string should be empty")
	}
	if IsEmpty(" x ") {
		t.Error("non-blank string should not be empty")
	}
}
