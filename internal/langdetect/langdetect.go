// Package langdetect tags question text with the language it is written in.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Languages the detector chooses between. Exam material handled by the
// importer is written in one of these.
var supported = []lingua.Language{
	lingua.Japanese,
	lingua.English,
	lingua.Chinese,
	lingua.Korean,
}

// Detector is safe for concurrent use.
type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector. Language models load lazily on first use.
func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(supported...).
			Build(),
	}
}

// Detect returns the lower-case ISO 639-1 code of text's language, or ""
// when the text has nothing to decide on.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
