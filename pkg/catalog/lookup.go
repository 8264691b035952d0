package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// SummaryNotFound is returned to the model when no title matches. The model
// still receives a usable tool result instead of an error.
const SummaryNotFound = "Sorry, I couldn't find that title in the dataset. Please check the catalog."

// Catalog wraps the loaded books with normalized-title lookups.
type Catalog struct {
	books []Book
}

func New(books []Book) *Catalog {
	return &Catalog{books: books}
}

func (c *Catalog) Books() []Book {
	return c.books
}

func (c *Catalog) Len() int {
	return len(c.books)
}

// normalizeTitle makes title comparison case- and normalization-insensitive
// (NFKC plus Unicode case folding, so diacritic composition differences and
// casing do not break exact matches).
func normalizeTitle(s string) string {
	folded := cases.Fold().String(norm.NFKC.String(s))
	return strings.TrimSpace(folded)
}

// SummaryByTitle resolves a title to its full summary. Exact normalized match
// wins; a substring match is the fallback so near-miss titles from the model
// still land on a real book. A fixed not-found string closes the gap.
//
// The substring fallback can pick an unrelated book when the model invents a
// title that happens to be contained in a real one. Kept as-is.
func (c *Catalog) SummaryByTitle(title string) string {
	t := normalizeTitle(title)
	if t == "" {
		return SummaryNotFound
	}

	for _, b := range c.books {
		if normalizeTitle(b.Title) == t {
			return summaryOf(b)
		}
	}

	for _, b := range c.books {
		if strings.Contains(normalizeTitle(b.Title), t) {
			return summaryOf(b)
		}
	}

	return SummaryNotFound
}

func summaryOf(b Book) string {
	if b.Full != "" {
		return b.Full
	}
	if b.Short != "" {
		return b.Short
	}
	return "I couldn't find a full summary for this title in the dataset."
}

// MetaByTitle returns (short, tags) for an exact normalized title, or zero
// values when the title is unknown.
func (c *Catalog) MetaByTitle(title string) (string, []string) {
	t := normalizeTitle(title)
	for _, b := range c.books {
		if normalizeTitle(b.Title) == t {
			return b.Short, b.Tags
		}
	}
	return "", nil
}
