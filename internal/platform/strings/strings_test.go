package strings

import "testing"

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	in := []string{"東京都"}
	def := []string{"fallback"}
	if got := IfEmpty(in, def); len(got) != 1 || got[0] != "東京都" {
		t.Fatalf("IfEmpty returned wrong slice: %#v", got)
	}
	var empty []string
	if got := IfEmpty(empty, def); len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("IfEmpty did not return default: %#v", got)
	}
}

func TestMustString(t *testing.T) {
	if got := MustString("ok", "name"); got != "ok" {
		t.Fatalf("want ok got %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for blank value")
		}
	}()
	_ = MustString("   ", "name")
}

func TestMustPrefix(t *testing.T) {
	cases := map[string]string{
		"/ingest/":   "/ingest",
		" ingest  ":  "/ingest",
		"//ingest//": "/ingest",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	defer func() {
		if recover() == nil {
			t.Fatal("want panic for root path")
		}
	}()
	_ = MustPrefix("/")
}

func TestPtrDeref(t *testing.T) {
	t.Parallel()

	if Ptr("") != nil {
		t.Fatal("Ptr(\"\") should be nil")
	}
	p := Ptr("x")
	if p == nil || *p != "x" {
		t.Fatalf("Ptr = %v", p)
	}
	if Deref(nil) != "" || Deref(p) != "x" {
		t.Fatal("Deref misbehaved")
	}
}

func TestSQLNull(t *testing.T) {
	t.Parallel()

	if SQLNull("  ") != nil {
		t.Fatal("blank should become nil")
	}
	if SQLNull("会場") != "会場" {
		t.Fatal("non-blank should pass through")
	}
	if SQLNullPtr(nil) != nil {
		t.Fatal("nil pointer should become nil")
	}
	s := "みなとみらい"
	if SQLNullPtr(&s) != s {
		t.Fatal("non-blank pointer should dereference")
	}
}
