package token

import "testing"

// TestLookupKnown checks every entry of the fixed symbol table round-trips.
func TestLookupKnown(t *testing.T) {
	for b, want := range symbols {
		got, ok := Lookup(b)
		if !ok {
			t.Errorf("Lookup(%q) reported not-found, expected %s", b, want)
		}
		if got != want {
			t.Errorf("Lookup(%q) = %s, want %s", b, got, want)
		}
	}
}

// TestLookupUnknown checks bytes outside the symbol table are reported
// as not found, rather than silently returning a zero Kind.
func TestLookupUnknown(t *testing.T) {
	for _, b := range []byte{'0', 'a', ' ', '"', '\'', '{', '}', 'Z'} {
		if _, ok := Lookup(b); ok {
			t.Errorf("Lookup(%q) unexpectedly found a symbolic kind", b)
		}
	}
}

// TestSymbolTableSize pins the count of symbolic (payload-free) kinds
// the fixed table recognizes, matching spec.md's 27-entry table.
func TestSymbolTableSize(t *testing.T) {
	if len(symbols) != 27 {
		t.Errorf("expected 27 fixed symbols, found %d", len(symbols))
	}
}
