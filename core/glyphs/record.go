package glyphs

// Record describes a character which has been found to be supported by
// a font. Records are immutable values.
type Record struct {
	Character string   // the character itself
	CodePoint rune     // numeric code point
	Unicode   string   // label of the form "U+XXXX"
	Name      string   // human readable name, see NameOf
	Category  Category // see CategoryOf
}

// NewRecord creates a classified record for code point cp.
func NewRecord(cp rune) Record {
	name, cat := Classify(cp)
	return Record{
		Character: string(cp),
		CodePoint: cp,
		Unicode:   UnicodeLabel(cp),
		Name:      name,
		Category:  cat,
	}
}

// CategoryOption is an entry for a category selection list.
type CategoryOption struct {
	Value Category
	Label string
}

// categoryOptions is the fixed display order of categories.
var categoryOptions = [...]CategoryOption{
	{CategoryAll, "All"},
	{CategoryBasicLatin, "Basic Latin"},
	{CategoryUppercase, "Uppercase"},
	{CategoryLowercase, "Lowercase"},
	{CategoryNumbers, "Numbers"},
	{CategoryPunctuation, "Punctuation"},
	{CategoryLatin1, "Latin-1"},
	{CategoryLatinExtended, "Latin Extended"},
	{CategoryCurrency, "Currency"},
	{CategoryArrows, "Arrows"},
	{CategoryMathematical, "Mathematical"},
	{CategoryGeometric, "Geometric"},
	{CategoryMiscellaneous, "Misc Symbols"},
	{CategoryDingbats, "Dingbats"},
	{CategoryOther, "Other"},
}

// AllCategories returns every category option in display order,
// including CategoryAll.
func AllCategories() []CategoryOption {
	opts := make([]CategoryOption, len(categoryOptions))
	copy(opts, categoryOptions[:])
	return opts
}

// Label returns the display label of a category, or the category value
// itself for unknown categories.
func (c Category) Label() string {
	for _, opt := range categoryOptions {
		if opt.Value == c {
			return opt.Label
		}
	}
	return string(c)
}

// AvailableCategories returns the categories which occur in records, in
// display order. If there is at least one record, CategoryAll is included
// as the first option. For an empty collection the result is empty.
func AvailableCategories(records []Record) []CategoryOption {
	if len(records) == 0 {
		return []CategoryOption{}
	}
	present := make(map[Category]bool, len(categoryOptions))
	present[CategoryAll] = true
	for _, rec := range records {
		present[rec.Category] = true
	}
	opts := make([]CategoryOption, 0, len(present))
	for _, opt := range categoryOptions {
		if present[opt.Value] {
			opts = append(opts, opt)
		}
	}
	return opts
}

// HasCategory is a predicate: is category c contained in opts?
func HasCategory(opts []CategoryOption, c Category) bool {
	for _, opt := range opts {
		if opt.Value == c {
			return true
		}
	}
	return false
}
