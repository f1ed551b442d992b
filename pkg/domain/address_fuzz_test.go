package domain

import (
	"strings"
	"testing"
)

// FuzzParseAddress checks that parsing never panics and that accepted
// addresses are canonical and round-trip.
func FuzzParseAddress(f *testing.F) {
	f.Add("")
	f.Add("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	f.Add("0x")
	f.Add("0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		a, err := ParseAddress(input)
		if err != nil {
			return
		}
		if len(a) != 42 || !strings.HasPrefix(string(a), "0x") || strings.ToLower(string(a)) != string(a) {
			t.Fatalf("non-canonical address %q from %q", a, input)
		}
		again, err := ParseAddress(a.String())
		if err != nil || again != a {
			t.Fatalf("round-trip failed for %q", a)
		}
	})
}
