package httpkit

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestPort_Parse(t *testing.T) {
	t.Parallel()

	p := NewPortFunc(func(token string) (string, error) {
		if token == "good" {
			return "operator-1", nil
		}
		return "", errors.New("nope")
	})

	cases := []struct {
		name   string
		header string
		wantID string
		wantOK bool
	}{
		{"valid", "Bearer good", "operator-1", true},
		{"case-insensitive scheme", "bearer good", "operator-1", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"empty token", "Bearer   ", "", false},
		{"rejected token", "Bearer bad", "", false},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("POST", "/", nil)
			if c.header != "" {
				r.Header.Set("Authorization", c.header)
			}
			uid, err := p.Parse(r)
			if c.wantOK {
				if err != nil || uid != c.wantID {
					t.Fatalf("Parse = (%q, %v)", uid, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Parse should reject, got %q", uid)
			}
		})
	}
}
