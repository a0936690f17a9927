package glyphs

import (
	"fmt"
	"strings"
)

// Category is a coarse grouping of characters, derived from a code point.
type Category string

// The closed set of categories. CategoryAll is not a category of a
// character, but the filter value which lets every record pass.
const (
	CategoryAll           Category = "all"
	CategoryBasicLatin    Category = "basic-latin"
	CategoryUppercase     Category = "uppercase"
	CategoryLowercase     Category = "lowercase"
	CategoryNumbers       Category = "numbers"
	CategoryPunctuation   Category = "punctuation"
	CategoryLatin1        Category = "latin-1"
	CategoryLatinExtended Category = "latin-extended"
	CategoryCurrency      Category = "currency"
	CategoryArrows        Category = "arrows"
	CategoryMathematical  Category = "mathematical"
	CategoryGeometric     Category = "geometric"
	CategoryMiscellaneous Category = "miscellaneous"
	CategoryDingbats      Category = "dingbats"
	CategoryOther         Category = "other"
)

// Ranges are checked in order, first match wins. Ranges do overlap:
// digits are basic latin as well, but have to end up as numbers.
var categoryRanges = [...]struct {
	from, to rune
	cat      Category
}{
	{'0', '9', CategoryNumbers},
	{'A', 'Z', CategoryUppercase},
	{'a', 'z', CategoryLowercase},
	{160, 255, CategoryLatin1},
	{256, 591, CategoryLatinExtended},
	{0x20a0, 0x20cf, CategoryCurrency},
	{0x2190, 0x21ff, CategoryArrows},
	{0x2200, 0x22ff, CategoryMathematical},
	{0x25a0, 0x25ff, CategoryGeometric},
	{0x2600, 0x26ff, CategoryMiscellaneous},
	{0x2700, 0x27bf, CategoryDingbats},
	{0x2000, 0x206f, CategoryPunctuation},
	{32, 126, CategoryBasicLatin},
}

// CategoryOf returns the category of code point cp. Every code point maps
// to exactly one category; code points outside of all known ranges are
// categorized as CategoryOther.
func CategoryOf(cp rune) Category {
	for _, r := range categoryRanges {
		if cp >= r.from && cp <= r.to {
			return r.cat
		}
	}
	return CategoryOther
}

var characterNames = map[rune]string{
	32:   "SPACE",
	33:   "EXCLAMATION MARK",
	34:   "QUOTATION MARK",
	35:   "NUMBER SIGN",
	36:   "DOLLAR SIGN",
	37:   "PERCENT SIGN",
	38:   "AMPERSAND",
	39:   "APOSTROPHE",
	40:   "LEFT PARENTHESIS",
	41:   "RIGHT PARENTHESIS",
	42:   "ASTERISK",
	43:   "PLUS SIGN",
	44:   "COMMA",
	45:   "HYPHEN-MINUS",
	46:   "FULL STOP",
	47:   "SOLIDUS",
	58:   "COLON",
	59:   "SEMICOLON",
	60:   "LESS-THAN SIGN",
	61:   "EQUALS SIGN",
	62:   "GREATER-THAN SIGN",
	63:   "QUESTION MARK",
	64:   "COMMERCIAL AT",
	91:   "LEFT SQUARE BRACKET",
	92:   "REVERSE SOLIDUS",
	93:   "RIGHT SQUARE BRACKET",
	94:   "CIRCUMFLEX ACCENT",
	95:   "LOW LINE",
	96:   "GRAVE ACCENT",
	123:  "LEFT CURLY BRACKET",
	124:  "VERTICAL LINE",
	125:  "RIGHT CURLY BRACKET",
	126:  "TILDE",
	160:  "NO-BREAK SPACE",
	161:  "INVERTED EXCLAMATION MARK",
	162:  "CENT SIGN",
	163:  "POUND SIGN",
	164:  "CURRENCY SIGN",
	165:  "YEN SIGN",
	169:  "COPYRIGHT SIGN",
	174:  "REGISTERED SIGN",
	8364: "EURO SIGN",
	8482: "TRADE MARK SIGN",
}

// NameOf returns a human readable name for code point cp.
//
// Digits and ASCII letters get their Unicode names, a small table covers
// ASCII punctuation and a few Latin-1 and currency signs. Everything else
// is named "CHARACTER XXXX", with XXXX being the uppercase hex value of cp.
func NameOf(cp rune) string {
	switch {
	case cp >= '0' && cp <= '9':
		return "DIGIT " + string(cp)
	case cp >= 'A' && cp <= 'Z':
		return "LATIN CAPITAL LETTER " + string(cp)
	case cp >= 'a' && cp <= 'z':
		return "LATIN SMALL LETTER " + strings.ToUpper(string(cp))
	}
	if name, ok := characterNames[cp]; ok {
		return name
	}
	return fmt.Sprintf("CHARACTER %04X", cp)
}

// Classify returns name and category of code point cp.
func Classify(cp rune) (string, Category) {
	return NameOf(cp), CategoryOf(cp)
}

// UnicodeLabel formats cp as "U+XXXX", with at least 4 uppercase hex digits.
func UnicodeLabel(cp rune) string {
	return fmt.Sprintf("U+%04X", cp)
}
