package config

import "os"

// AIConfig holds settings for the hosted text-generation service used
// for content moderation and quiz generation.
type AIConfig struct {
	APIKey    string `json:"-"` // Never serialize
	BaseURL   string `json:"baseUrl"`
	Model     string `json:"model"`
	TimeoutMS int    `json:"timeoutMs"`

	// Disabled is the administrative kill switch. With the AI
	// integration off, moderation passes everything through and quiz
	// generation refuses to run; both defaults are deliberate.
	Disabled bool `json:"disabled"`
}

// DefaultAIConfig returns the AI configuration from the environment.
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:    os.Getenv("GEMINI_API_KEY"),
		BaseURL:   getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Model:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		TimeoutMS: 15000,
		Disabled:  os.Getenv("AI_ENABLED") == "false",
	}
}

// IsEnabled returns true if the AI integration is configured and not
// administratively disabled.
func (c *AIConfig) IsEnabled() bool {
	return !c.Disabled && c.APIKey != ""
}

// ModelEndpoint returns the full generateContent endpoint for the configured model.
func (c *AIConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}
