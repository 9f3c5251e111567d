package plate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const plateLetters = "[ABCEHKMOPTXY]"

var patterns = []struct {
	re *regexp.Regexp
	t  Type
}{
	{regexp.MustCompile(`^(` + plateLetters + `)(\d{3})(` + plateLetters + `{2})(\d{2,3})$`), TypeCar},
	{regexp.MustCompile(`^(` + plateLetters + `{2})(\d{3})(\d{2,3})$`), TypePublic},
	{regexp.MustCompile(`^(\d{4})(` + plateLetters + `{2})(\d{2,3})$`), TypeMilitary},
	{regexp.MustCompile(`^(\d{3})(D)(\d{3})(\d{2,3})$`), TypeDiplomatic},
	{regexp.MustCompile(`^(` + plateLetters + `)(\d{4})(\d{2,3})$`), TypePolice},
}

// Cyrillic capitals that share a glyph with the Latin plate alphabet.
var lookalikes = map[rune]rune{
	'А': 'A', 'В': 'B', 'С': 'C', 'Е': 'E', 'Н': 'H', 'К': 'K',
	'М': 'M', 'О': 'O', 'Р': 'P', 'Т': 'T', 'Х': 'X', 'У': 'Y',
}

// Normalize canonicalises a raw plate string: width and compatibility forms
// are folded, letters upper-cased, Cyrillic look-alikes mapped to Latin, and
// whitespace and dashes dropped.
func Normalize(raw string) string {
	t := transform.Chain(
		norm.NFKC,
		cases.Upper(language.Und),
		runes.Map(func(r rune) rune {
			if latin, ok := lookalikes[r]; ok {
				return latin
			}
			return r
		}),
		runes.Remove(runes.Predicate(func(r rune) bool {
			return unicode.IsSpace(r) || r == '-'
		})),
	)
	out, _, err := transform.String(t, strings.TrimSpace(raw))
	if err != nil {
		return strings.ToUpper(strings.TrimSpace(raw))
	}
	return out
}

// Parse recognises a plate and splits it into typed parts. The first matching
// pattern wins.
func Parse(raw string) (Type, []string, error) {
	plate := Normalize(raw)
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(plate); m != nil {
			return p.t, m[1:], nil
		}
	}
	return "", nil, fmt.Errorf("%w: %q", ErrUnrecognizedPlate, raw)
}

// FormatValue encodes a plate as a widget value, "type:part:part...".
func FormatValue(t Type, parts []string) string {
	return strings.Join(append([]string{string(t)}, parts...), ":")
}

// ValueOf parses raw and returns its widget value, or "" when unrecognised.
func ValueOf(raw string) string {
	t, parts, err := Parse(raw)
	if err != nil {
		return ""
	}
	return FormatValue(t, parts)
}

// ParseValue splits a widget value into its type tag and parts. The type is
// not validated here; Fill rejects unknown types.
func ParseValue(value string) (Type, []string, error) {
	if strings.TrimSpace(value) == "" {
		return "", nil, ErrEmptyValue
	}
	fields := strings.Split(value, ":")
	if fields[0] == "" {
		return "", nil, ErrEmptyValue
	}
	return Type(fields[0]), fields[1:], nil
}
