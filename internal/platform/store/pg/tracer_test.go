package pg

import "testing"

func TestCompact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, want string
	}{
		{"SELECT 1", "SELECT 1"},
		{"SELECT\n\t1", "SELECT 1"},
		{"  a   b\r\nc  ", " a b c "},
		{"", ""},
	}
	for _, c := range cases {
		if got := compact(c.in); got != c.want {
			t.Errorf("compact(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
