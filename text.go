package strs

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Capitalize upper-cases the first rune of str and leaves the rest unchanged.
func Capitalize(str string) string {
	return capitalize(str, language.Und, false)
}

// CapitalizeFirstOnly upper-cases the first rune of str and lower-cases the
// rest.
func CapitalizeFirstOnly(str string) string {
	return capitalize(str, language.Und, true)
}

// Capitalize is the package-level Capitalize using the configured language.
func (s *Strings) Capitalize(str string) string {
	return capitalize(str, s.cfg.language, false)
}

// CapitalizeFirstOnly is the package-level CapitalizeFirstOnly using the
// configured language.
func (s *Strings) CapitalizeFirstOnly(str string) string {
	return capitalize(str, s.cfg.language, true)
}

func capitalize(str string, tag language.Tag, lowerRest bool) string {
	if str == "" {
		return str
	}
	_, size := utf8.DecodeRuneInString(str)
	head := cases.Upper(tag).String(str[:size])
	rest := str[size:]
	if lowerRest {
		rest = cases.Lower(tag).String(rest)
	}
	return head + rest
}
