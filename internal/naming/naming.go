// Package naming derives Go identifiers for generated declarations.
package naming

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

var initialisms = map[string]struct{}{
	"API": {}, "ASCII": {}, "CPU": {}, "CSS": {}, "DNS": {}, "EOF": {}, "HTML": {},
	"HTTP": {}, "HTTPS": {}, "ID": {}, "IP": {}, "JSON": {}, "SQL": {}, "TCP": {},
	"TLS": {}, "TTL": {}, "UDP": {}, "UI": {}, "URI": {}, "URL": {}, "UUID": {},
	"XML": {},
}

// Exported upper-cases the first rune of an identifier: name -> Name.
func Exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// Unexported lower-cases the leading upper-case run of an identifier so that
// initialisms read naturally (ID -> id, URLPath -> urlPath, Name -> name).
// Keywords get a "Value" suffix.
func Unexported(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return name
	}
	upper := 0
	for upper < len(runes) && unicode.IsUpper(runes[upper]) {
		upper++
	}
	switch {
	case upper == 0:
	case upper == 1 || upper == len(runes):
		for i := 0; i < upper; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	default:
		// URLPath: keep the P of "Path" upper.
		for i := 0; i < upper-1; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
		if !unicode.IsLetter(runes[upper]) {
			runes[upper-1] = unicode.ToLower(runes[upper-1])
		}
	}
	out := string(runes)
	if token.IsKeyword(out) {
		out += "Value"
	}
	return out
}

// Camel converts snake, kebab, or space separated words into an exported Go
// identifier, upper-casing known initialisms: first_name -> FirstName,
// user-id -> UserID, photo_urls -> PhotoURLs.
func Camel(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, word := range words {
		upper := strings.ToUpper(word)
		if _, ok := initialisms[upper]; ok {
			b.WriteString(upper)
			continue
		}
		// ids -> IDs, urls -> URLs
		if stem, ok := strings.CutSuffix(upper, "S"); ok {
			if _, ok := initialisms[stem]; ok {
				b.WriteString(stem + "s")
				continue
			}
		}
		b.WriteString(Exported(word))
	}
	out := b.String()
	if out == "" {
		return ""
	}
	if r, _ := utf8.DecodeRuneInString(out); unicode.IsDigit(r) {
		out = "X" + out
	}
	return out
}

// IsExported reports whether name starts with an upper-case letter.
func IsExported(name string) bool {
	return token.IsExported(name)
}

// Constructor names the builder constructor, keeping the visibility of the
// record: User -> NewUserBuilder, user -> newUserBuilder.
func Constructor(prefix, builder string) string {
	if IsExported(builder) {
		return Exported(prefix) + Exported(builder)
	}
	return Unexported(prefix) + Exported(builder)
}
