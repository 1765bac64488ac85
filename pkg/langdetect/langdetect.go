// Package langdetect guesses which of the site's languages a page is written in.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector restricts lingua to the site's language markers.
type Detector struct {
	detector lingua.LanguageDetector
	codes    map[lingua.Language]string
}

// New builds a detector for the given ISO 639-1 codes. Codes lingua does not
// know are ignored. Fewer than two known languages leave nothing to choose
// from, and Detect always reports false.
func New(codes []string) *Detector {
	d := &Detector{codes: make(map[lingua.Language]string)}

	var langs []lingua.Language
	for _, code := range codes {
		lang, ok := languageOf(code)
		if !ok {
			continue
		}
		if _, dup := d.codes[lang]; dup {
			continue
		}
		d.codes[lang] = code
		langs = append(langs, lang)
	}

	if len(langs) >= 2 {
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(langs...).
			Build()
	}
	return d
}

// Detect returns the code of the most likely language of text and its confidence.
func (d *Detector) Detect(text string) (string, float64, bool) {
	if d.detector == nil || strings.TrimSpace(text) == "" {
		return "", 0, false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", 0, false
	}
	return d.codes[lang], d.detector.ComputeLanguageConfidence(text, lang), true
}

func languageOf(code string) (lingua.Language, bool) {
	for _, lang := range lingua.AllLanguages() {
		if strings.EqualFold(lang.IsoCode639_1().String(), code) {
			return lang, true
		}
	}
	return lingua.Unknown, false
}
