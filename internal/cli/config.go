package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	APIKey     string
	APIKeyFile string
	Output     string
	Verbose    bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:  getEnvOrDefault("RACESCHED_SERVER", "http://localhost:8080"),
		APIKey:     os.Getenv("RACESCHED_API_KEY"),
		APIKeyFile: getEnvOrDefault("RACESCHED_API_KEY_FILE", defaultAPIKeyFile()),
		Output:     "text",
		Verbose:    false,
	}
}

// LoadAPIKey loads the API key from file if not already set
func (c *Config) LoadAPIKey() error {
	if c.APIKey != "" {
		return nil
	}

	data, err := os.ReadFile(c.APIKeyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No key file is fine for read-only use
		}
		return err
	}

	c.APIKey = strings.TrimSpace(string(data))
	return nil
}

// SaveAPIKey saves the API key to the key file
func (c *Config) SaveAPIKey(key string) error {
	c.APIKey = key

	dir := filepath.Dir(c.APIKeyFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.APIKeyFile, []byte(key), 0600)
}

func defaultAPIKeyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".racesched/api_key"
	}
	return filepath.Join(home, ".racesched", "api_key")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
