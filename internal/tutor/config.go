package tutor

// Config controls the gateway's request parameters.
type Config struct {
	// MaxTokens is the token budget per oracle response.
	MaxTokens int

	// Temperature controls oracle output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
