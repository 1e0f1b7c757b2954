package schema

// StemMinimalEnglish applies a conservative English plural stemmer to a
// single lowercased token. It only removes plural endings: "tables"
// becomes "table", "bodies" becomes "body". Words ending in "ss", "us"
// and short words are left untouched, so it never conflates unrelated
// terms the way aggressive stemmers can.
func StemMinimalEnglish(word string) string {
	r := []rune(word)
	n := len(r)
	if n < 3 || r[n-1] != 's' {
		return word
	}

	switch r[n-2] {
	case 'u', 's':
		return word
	case 'e':
		if n > 3 && r[n-3] == 'i' && r[n-4] != 'a' && r[n-4] != 'e' {
			return string(r[:n-3]) + "y"
		}
		if r[n-3] == 'i' || r[n-3] == 'a' || r[n-3] == 'o' || r[n-3] == 'e' {
			return word
		}
		return string(r[:n-1])
	default:
		return string(r[:n-1])
	}
}
