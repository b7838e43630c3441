// Package dna implements small sequence primitives that the merge core
// treats as external collaborators: reverse-complementing a raw string and
// testing whether a stretch of sequence is entirely ambiguous bases.
package dna

// complementTable maps each ASCII base to its complement. Unrecognized
// bytes (including 'N'/'n') complement to themselves, matching the
// convention used throughout the input corpus of treating N as its own
// complement.
var complementTable = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}
	t['A'], t['T'] = 'T', 'A'
	t['a'], t['t'] = 't', 'a'
	t['C'], t['G'] = 'G', 'C'
	t['c'], t['g'] = 'g', 'c'
	return t
}()

// ReverseComplement returns the reverse complement of s. Bytes outside the
// recognized ACGTacgt alphabet (including N/n) pass through unchanged,
// aside from being reversed.
func ReverseComplement(s string) string {
	n := len(s)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = complementTable[s[i]]
	}
	return string(out)
}

// IsAllN reports whether s consists entirely of N or n bases. The empty
// string is considered all-N so that empty clips never win the readout
// tie-break against a non-empty, informative segment.
func IsAllN(s string) bool {
	for i := 0; i < len(s); i++ {
		if c := s[i]; c != 'N' && c != 'n' {
			return false
		}
	}
	return true
}
