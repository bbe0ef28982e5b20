package domain

// Difficulty is the difficulty label attached to a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is used whenever a source gives no usable label.
const DefaultDifficulty = DifficultyMedium

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ExtractionMethod records which path produced a question.
type ExtractionMethod string

const (
	ExtractionMethodLLM      ExtractionMethod = "llm"
	ExtractionMethodFallback ExtractionMethod = "fallback"
)

func (m ExtractionMethod) String() string { return string(m) }

func (m ExtractionMethod) IsValid() bool {
	switch m {
	case ExtractionMethodLLM, ExtractionMethodFallback:
		return true
	}
	return false
}

// SourceFormat is the format of raw text handed to the importer.
type SourceFormat string

const (
	SourceFormatText SourceFormat = "text"
	SourceFormatHTML SourceFormat = "html"
)

func (f SourceFormat) String() string { return string(f) }

func (f SourceFormat) IsValid() bool {
	switch f {
	case SourceFormatText, SourceFormatHTML:
		return true
	}
	return false
}
