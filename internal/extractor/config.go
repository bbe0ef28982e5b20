package extractor

const (
	// DefaultInputBudget is the number of runes of raw text sent to the
	// generator. Longer text is cut, which may drop trailing explanation text.
	DefaultInputBudget = 3000

	// DefaultTitleMaxRunes bounds titles derived from the question body.
	DefaultTitleMaxRunes = 30

	DefaultMaxOutputTokens = 1024
	DefaultTemperature     = 0.1

	// NoExplanation is stored when a source carries no explanation text.
	NoExplanation = "解説なし"

	titleEllipsis = "..."
)

// Config controls prompt size and sampling. Zero or negative fields take
// their defaults.
type Config struct {
	InputBudget     int
	TitleMaxRunes   int
	Model           string
	MaxOutputTokens int
	Temperature     float64
}

func (c Config) withDefaults() Config {
	if c.InputBudget <= 0 {
		c.InputBudget = DefaultInputBudget
	}
	if c.TitleMaxRunes <= 0 {
		c.TitleMaxRunes = DefaultTitleMaxRunes
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.Temperature <= 0 {
		c.Temperature = DefaultTemperature
	}
	return c
}

func (c Config) generateOptions() GenerateOptions {
	return GenerateOptions{
		Model:           c.Model,
		MaxOutputTokens: c.MaxOutputTokens,
		Temperature:     c.Temperature,
	}
}
