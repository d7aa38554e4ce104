package loader

import "sort"

const (
	// BooksFile is the plain book dataset.
	BooksFile = "data.csv"
	// ColorsFile is the book dataset with an additional color field per row.
	ColorsFile = "data-colors.csv"
)

// Variants maps a variant name to the resource file it loads.
type Variants map[string]string

// DefaultVariants returns the two datasets shipped with the front end.
func DefaultVariants() Variants {
	return Variants{
		"books":  BooksFile,
		"colors": ColorsFile,
	}
}

// File returns the resource file of the named variant.
func (v Variants) File(name string) (string, bool) {
	f, ok := v[name]
	return f, ok
}

// Names returns the variant names in sorted order.
func (v Variants) Names() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
