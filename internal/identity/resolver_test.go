package identity

import "testing"

func TestParse_AnonymousPrincipal(t *testing.T) {
	body, err := Parse(AnonymousPrincipal)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(body) != 1 || body[0] != 0x04 {
		t.Fatalf("expected anonymous principal bytes [0x04], got %v", body)
	}
}

func TestEncodeParse_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		{0x04},
		{0x00},
		{0xab, 0xcd, 0xef},
		{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a},
	}

	for _, input := range inputs {
		text := Encode(input)
		body, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", text, err)
		}
		if string(body) != string(input) {
			t.Fatalf("round trip mismatch for %q: got %v, want %v", text, body, input)
		}
	}
}

func TestParse_RejectsMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"not-a-principal!",
		"hello world",
		"2VXSX-FAE",  // wrong case
		"2vxsxfae",   // missing grouping
		"2vxsx-faf",  // checksum mismatch
		"aaaaa-aaaa", // checksum mismatch
	}

	for _, input := range inputs {
		if _, err := Parse(input); err == nil {
			t.Fatalf("expected Parse(%q) to fail", input)
		}
	}
}

func TestResolve_ValidPrincipalPassesThrough(t *testing.T) {
	text := Encode([]byte{0xde, 0xad, 0xbe, 0xef})
	if got := Resolve(text); got != text {
		t.Fatalf("expected %q, got %q", text, got)
	}
}

func TestResolve_TrimsSurroundingWhitespace(t *testing.T) {
	if got := Resolve("  " + AnonymousPrincipal + "\n"); got != AnonymousPrincipal {
		t.Fatalf("expected %q, got %q", AnonymousPrincipal, got)
	}
}

func TestResolve_MalformedInputFallsBackToAnonymous(t *testing.T) {
	inputs := []string{"", "bob", "user_12345", "not a principal", "ryjl3-tyaaa"}

	for _, input := range inputs {
		if got := Resolve(input); got != AnonymousPrincipal {
			t.Fatalf("Resolve(%q): expected anonymous fallback, got %q", input, got)
		}
	}
}
