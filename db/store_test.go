package db

import "testing"

func TestIsRemote(t *testing.T) {
	cases := []struct {
		dsn  string
		want bool
	}{
		{"cppdecl-index.db", false},
		{"./local/path.db", false},
		{"libsql://example.turso.io", true},
		{"https://example.turso.io", true},
		{"wss://example.turso.io", true},
	}
	for _, c := range cases {
		if got := isRemote(c.dsn); got != c.want {
			t.Errorf("isRemote(%q) = %v, want %v", c.dsn, got, c.want)
		}
	}
}
