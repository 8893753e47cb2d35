package repo

import "testing"

func TestTitlePrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "short"},
		{"フリーマーケット in 横浜", "フリーマーケット i"},
		{"exactly10!", "exactly10!"},
		{"exactly10!x", "exactly10!"},
	}
	for _, c := range cases {
		if got := titlePrefix(c.in); got != c.want {
			t.Errorf("titlePrefix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
