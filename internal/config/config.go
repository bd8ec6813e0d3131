// Package config loads .env files and holds the flags that select where the
// usage page comes from.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/olliecrow/datapass_monitor/internal/usage"
)

const appDir = "datapass-monitor"

// Source selects the page source. Embedded into every command that reads the
// usage page.
type Source struct {
	URL           string        `short:"u" xor:"source" env:"DATAPASS_URL" placeholder:"URL" help:"Usage page URL (default ${default_url})."`
	File          string        `short:"F" xor:"source" env:"DATAPASS_FILE" type:"path" placeholder:"PATH" help:"Read the page from a saved HTML file instead of the network."`
	Cookie        string        `env:"DATAPASS_COOKIE" placeholder:"COOKIE" help:"Cookie header sent with the request."`
	Timeout       time.Duration `env:"DATAPASS_TIMEOUT" help:"Fetch timeout (default 30s, 10s per poll in watch)."`
	NoFingerprint bool          `help:"Use the plain Go TLS handshake instead of a browser fingerprint."`
}

// Open returns the file source when File is set and the HTTP source
// otherwise. defaultTimeout applies when Timeout is unset.
func (s Source) Open(defaultTimeout time.Duration) usage.Source {
	if s.File != "" {
		return usage.NewFileSource(s.File)
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return usage.NewHTTPSource(usage.HTTPOptions{
		URL:           s.URL,
		Cookie:        s.Cookie,
		Timeout:       timeout,
		NoFingerprint: s.NoFingerprint,
	})
}

func (s Source) Validate() error {
	if s.Timeout < 0 {
		return fmt.Errorf("--timeout must be positive")
	}
	return nil
}

// LoadDotEnv loads the first .env file found in EnvPaths. Variables already
// set in the environment win. It returns the loaded path or "".
func LoadDotEnv() (string, error) {
	return loadFirst(EnvPaths())
}

// EnvPaths lists the candidate .env locations in lookup order.
func EnvPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDir, ".env"))
	}
	return paths
}

func loadFirst(paths []string) (string, error) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("load %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}
