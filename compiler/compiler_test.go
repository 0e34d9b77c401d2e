package compiler

import (
	"strings"
	"testing"
)

// Test some valid programs parse and compile without error.
func TestValidPrograms(t *testing.T) {

	tests := []string{
		"1 2 +.",
		`"Hello, World!"`,
		"10 a: a; .",
		"[ 1 2 + ] !",
		"[ $ 0 > ] [ $ . 1 - ] #",
		"1 2 \\ - .",
		"1 $ $ + + .",
	}

	for _, test := range tests {
		c := New(test)

		if _, err := c.Parse(); err != nil {
			t.Errorf("didn't expect an error parsing %q, got %v", test, err)
		}

		if _, err := c.Compile(); err != nil {
			t.Errorf("didn't expect an error compiling %q, got %v", test, err)
		}
	}
}

// Test some bogus programs fail, either at parse time or compile time.
func TestBogusPrograms(t *testing.T) {

	tests := []string{
		"[ 1 2 +", // unterminated quote
		"`7",      // asm not supported
		"{unterminated",
	}

	for _, test := range tests {
		c := New(test)
		if _, err := c.Compile(); err == nil {
			t.Errorf("expected an error compiling %q, got none", test)
		}
	}
}

// TestParseIsCached ensures a second Parse call doesn't re-run the
// parser (and would return a stale tree if the source were mutable).
func TestParseIsCached(t *testing.T) {
	c := New("1 2 +.")

	first, err := c.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := c.Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Errorf("expected the cached tree to be returned unchanged")
	}
}

// TestCompileOutputLooksLikeAModule is a rough sanity check in the
// same spirit as the teacher's: we don't diff against a golden file,
// just confirm the module has the shape we expect.
func TestCompileOutputLooksLikeAModule(t *testing.T) {
	tests := []string{
		"1 2 -.",
		"3 4 +.",
		`"hi"`,
		"[ 1 ] !",
	}

	for _, test := range tests {
		c := New(test)
		out, err := c.Compile()
		if err != nil {
			t.Errorf("didn't expect an error compiling %q, got %v", test, err)
			continue
		}
		for _, want := range []string{"define i32 @main()", "%union.FalseValue", "ret i32 0"} {
			if !strings.Contains(out, want) {
				t.Errorf("output for %q missing %q:\n%s", test, want, out)
			}
		}
	}
}

func TestSetDebugAddsDebugComments(t *testing.T) {
	c := New("1 2 +.")
	c.SetDebug(true)

	out, err := c.Compile()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "; debug:") {
		t.Errorf("expected a debug comment in the output when debug is enabled")
	}
}
