package notation

import "strings"

// namedKeys maps full bracketed tokens to their single-byte raw form.
// Matching is case-sensitive, like the notation accepted in mapping
// definitions.
var namedKeys = map[string]byte{
	"<CR>":   '\n',
	"<Tab>":  '\t',
	"<Esc>":  0x1b,
	"<BS>":   0x08,
	"<Up>":   0x10, // ^P
	"<Down>": 0x0e, // ^N
}

// Parse converts a key notation string into its raw symbol sequence.
// Characters outside brackets copy through literally. A token opened by
// '<' spans up to the first '>', '<', space, or end of input; tokens that
// reduce neither to a control symbol nor to a named key are emitted as
// literal text. Parse never fails.
func Parse(text string) []byte {
	raw, _ := parse(text)
	return raw
}

// Fallbacks reports how many bracketed tokens in text degrade to literal
// characters instead of reducing to a symbol.
func Fallbacks(text string) int {
	_, n := parse(text)
	return n
}

func parse(text string) ([]byte, int) {
	raw := make([]byte, 0, len(text))
	fallbacks := 0

	for i := 0; i < len(text); {
		if text[i] != '<' {
			raw = append(raw, text[i])
			i++
			continue
		}

		// Find the token span: up to and including '>', or broken by
		// '<', space, or end of input.
		span := tokenSpan(text[i:])
		token := text[i : i+span]

		if sym, ok := reduce(token); ok {
			raw = append(raw, sym)
		} else {
			// No known key label, use the characters literally.
			raw = append(raw, token...)
			fallbacks++
		}
		i += span
	}
	return raw, fallbacks
}

// tokenSpan returns the length of the bracketed token starting at s[0]
// (which must be '<'). The span includes the closing '>' when present;
// a token broken by '<', space, or end of input excludes the breaking
// character.
func tokenSpan(s string) int {
	n := 1
	for n < len(s) {
		if s[n] == '<' || s[n] == ' ' {
			break
		}
		if s[n] == '>' {
			return n + 1
		}
		n++
	}
	return n
}

// reduce maps a complete bracketed token to its raw symbol.
func reduce(token string) (byte, bool) {
	if !strings.HasSuffix(token, ">") {
		return 0, false
	}

	// Control-modified letter: exactly "<C-x>".
	if len(token) == 5 && token[1] == 'C' && token[2] == '-' {
		switch c := token[3]; {
		case c >= 0x41 && c <= 0x5d: // A-]
			return c - 0x40, true
		case c >= 0x61 && c <= 0x7a: // a-z
			return c - 0x60, true
		}
	}

	sym, ok := namedKeys[token]
	return sym, ok
}

// Unparse renders a raw symbol sequence back into key notation. Named
// control symbols use their bracketed label, other control symbols the
// "<C-x>" form, and printable bytes pass through unchanged.
func Unparse(raw []byte) string {
	var sb strings.Builder
	for _, sym := range raw {
		sb.WriteString(unparseSymbol(sym))
	}
	return sb.String()
}

func unparseSymbol(sym byte) string {
	switch sym {
	case '\n':
		return "<CR>"
	case '\t':
		return "<Tab>"
	case 0x1b:
		return "<Esc>"
	case 0x08:
		return "<BS>"
	}
	if sym < 0x20 {
		return "<C-" + string(rune(sym+0x60)) + ">"
	}
	// Emit the raw byte: string(rune(sym)) would UTF-8 encode symbols
	// >= 0x80 into two bytes and break the byte-level round trip.
	return string([]byte{sym})
}
