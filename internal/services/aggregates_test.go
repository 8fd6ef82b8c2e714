package services

import "testing"

func TestCeil10(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{150, 150},
		{137.75, 140},
		{141, 150},
		{0, 0},
		{9999.01, 10000},
		{5, 10},
	}
	for _, tc := range cases {
		if got := Ceil10(tc.in); got != tc.want {
			t.Errorf("Ceil10(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
