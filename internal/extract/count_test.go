package extract

import "testing"

func TestParseCount(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"12.3K", 12300},
		{"1M", 1000000},
		{"1.2M", 1200000},
		{"2B", 2000000000},
		{"1,234", 1234},
		{"423", 423},
		{"5.7m", 5700000},
		{"3k", 3000},
		{"", 0},
		{"abc", 0},
		{"  42  ", 42},
		{"K", 0},
		{"1.5", 2},
	}

	for _, tc := range cases {
		if got := ParseCount(tc.in); got != tc.want {
			t.Errorf("ParseCount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
