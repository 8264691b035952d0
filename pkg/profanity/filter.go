// Package profanity gates user queries before they reach retrieval or the
// model. A flagged query is answered with a fixed refusal and never leaves
// the process.
package profanity

import (
	"os"
	"path/filepath"
	"strings"

	goaway "github.com/TwiN/go-away"
)

// ExtensionFiles are optional local wordlists (one word per line) merged into
// the built-in dictionary when present in the data directory.
var ExtensionFiles = []string{"profanity_en.txt", "profanity_ro.txt"}

type Filter struct {
	detector *goaway.ProfanityDetector
}

// NewFilter builds a filter from the go-away default dictionary plus any
// extension lists found under dataDir. A missing file is not an error.
func NewFilter(dataDir string) *Filter {
	profanities := append([]string{}, goaway.DefaultProfanities...)

	for _, name := range ExtensionFiles {
		words, err := loadWordlist(filepath.Join(dataDir, name))
		if err != nil {
			continue
		}
		profanities = append(profanities, words...)
	}

	detector := goaway.NewProfanityDetector().WithCustomDictionary(
		profanities,
		goaway.DefaultFalsePositives,
		goaway.DefaultFalseNegatives,
	)

	return &Filter{detector: detector}
}

func loadWordlist(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, line := range strings.Split(string(raw), "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			words = append(words, word)
		}
	}
	return words, nil
}

// IsProfane reports whether text contains a flagged term.
func (f *Filter) IsProfane(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return f.detector.IsProfane(text)
}
