// Package notation converts human-readable key notation into raw symbol
// sequences and back.
//
// A notation string mixes literal characters with bracketed tokens:
//
//   - Control-modified letters: "<C-a>" -> 0x01, "<C-X>" -> 0x18
//   - Named keys: "<CR>", "<Tab>", "<Esc>", "<BS>", "<Up>", "<Down>"
//   - Anything else passes through as literal text, brackets included
//
// Unrecognized tokens are not errors; they degrade to their literal
// characters. The raw form is a sequence of single-byte symbols matching
// what the terminal key reduction produces.
package notation
