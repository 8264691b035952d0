package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MinBooks is the smallest dataset the assistant will accept.
const MinBooks = 10

// Book is one catalog record. The title is the unique key; the full summary
// is what the lookup tool hands back to the model.
type Book struct {
	Title string   `json:"title"`
	Short string   `json:"short"`
	Full  string   `json:"full"`
	Tags  []string `json:"tags"`
}

// Load reads the catalog from a JSON array file.
func Load(path string) ([]Book, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset not found: %s: %w", path, err)
	}

	var books []Book
	if err := json.Unmarshal(raw, &books); err != nil {
		return nil, fmt.Errorf("dataset must be a JSON array: %w", err)
	}
	return books, nil
}

// Validate checks dataset size and required fields. In strict mode the first
// problem is returned as an error; otherwise all problems are collected as
// warnings.
func Validate(books []Book, strict bool) ([]string, error) {
	var warnings []string

	if len(books) < MinBooks {
		msg := fmt.Sprintf("dataset has %d entries; at least %d are required", len(books), MinBooks)
		if strict {
			return nil, fmt.Errorf("%s", msg)
		}
		warnings = append(warnings, msg)
	}

	for i, b := range books {
		var missing []string
		if strings.TrimSpace(b.Title) == "" {
			missing = append(missing, "title")
		}
		if strings.TrimSpace(b.Short) == "" {
			missing = append(missing, "short")
		}
		if strings.TrimSpace(b.Full) == "" {
			missing = append(missing, "full")
		}
		if len(missing) == 0 {
			continue
		}

		msg := fmt.Sprintf("book #%d (%s) missing %s", i, titleOrPlaceholder(b.Title), strings.Join(missing, ", "))
		if strict {
			return nil, fmt.Errorf("%s", msg)
		}
		warnings = append(warnings, msg)
	}

	return warnings, nil
}

func titleOrPlaceholder(title string) string {
	if strings.TrimSpace(title) == "" {
		return "(no title)"
	}
	return title
}

// Document builds the text that gets embedded and indexed for a book.
func Document(b Book) string {
	return fmt.Sprintf("Title: %s\nShort: %s\nTags: %s", b.Title, b.Short, strings.Join(b.Tags, ", "))
}
