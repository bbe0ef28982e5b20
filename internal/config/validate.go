package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Extractor.validate(); err != nil {
		return fmt.Errorf("extractor: %w", err)
	}
	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	switch d.Driver {
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("dsn is required for driver %q", d.Driver)
		}
	case DriverSQLite:
		if d.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for driver %q", d.Driver)
		}
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", d.Driver, DriverPostgres, DriverSQLite)
	}
	return nil
}

func (l *LLMConfig) validate() error {
	switch l.Provider {
	case ProviderAnthropic, ProviderGemini:
	default:
		return fmt.Errorf("unknown provider %q (want %s or %s)", l.Provider, ProviderAnthropic, ProviderGemini)
	}
	if l.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if l.MaxOutputTokens <= 0 {
		return fmt.Errorf("max_output_tokens must be > 0 (got %d)", l.MaxOutputTokens)
	}
	if l.Temperature < 0 || l.Temperature > 1 {
		return fmt.Errorf("temperature must be within [0, 1] (got %v)", l.Temperature)
	}
	if l.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests_per_minute must be > 0 (got %d)", l.RequestsPerMinute)
	}
	return nil
}

func (e *ExtractorConfig) validate() error {
	if e.InputBudget <= 0 {
		return fmt.Errorf("input_budget must be > 0 (got %d)", e.InputBudget)
	}
	if e.TitleMaxRunes <= 0 {
		return fmt.Errorf("title_max_runes must be > 0 (got %d)", e.TitleMaxRunes)
	}
	return nil
}

func (i *ImportConfig) validate() error {
	if i.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", i.MaxRetries)
	}
	if i.MaxBlocks <= 0 {
		return fmt.Errorf("max_blocks must be > 0 (got %d)", i.MaxBlocks)
	}
	if i.MaxTextBytes <= 0 {
		return fmt.Errorf("max_text_bytes must be > 0 (got %d)", i.MaxTextBytes)
	}
	return nil
}
