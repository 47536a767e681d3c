package nd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const defaultRequestTimeout = 100 * time.Second

// Config is the type used to store the configuration of the client.
type Config struct {
	Host        string `json:"host,omitempty" doc:"URL of the Nexus Dashboard controller, including scheme."`
	Username    string `json:"username,omitempty" doc:"User name."`
	Password    string `json:"password,omitempty" doc:"User password."`
	LoginDomain string `json:"login_domain,omitempty" doc:"Login domain, defaults to 'DefaultAuth'."`
	Insecure    bool   `json:"insecure,omitempty" doc:"Disables verification of TLS certificates and host names."`
	TimeoutSecs int    `json:"timeout,omitempty" doc:"Request timeout in seconds."`
}

// Load loads the configuration from the configuration file and overlays it with
// the ND_* environment variables. If the configuration file doesn't exist the
// file step is skipped and only the environment is consulted.
func Load() (*Config, error) {
	cfg := &Config{}

	file, err := Location()
	if err != nil {
		return nil, err
	}
	_, err = os.Stat(file)
	if err == nil {
		// #nosec G304
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("can't read config file '%s': %w", file, err)
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("can't parse config file '%s': %w", file, err)
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("can't check if config file '%s' exists: %w", file, err)
	}

	cfg.overlayEnv()

	return cfg, nil
}

// Location returns the location of the configuration file. If a configuration file
// already exists in the HOME directory, it uses that, otherwise it prefers to
// use the XDG config directory.
func Location() (string, error) {
	if ndconfig := os.Getenv("ND_CONFIG_FILE"); ndconfig != "" {
		return ndconfig, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	path := filepath.Join(home, ".nd.json")

	_, err = os.Stat(path)
	if os.IsNotExist(err) {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return path, err
		}

		path = filepath.Join(configDir, "ndictl", "nd.json")
	}

	return path, nil
}

// Validate checks the fields required to open a session are present
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("controller host is not set, use the config file or the ND_HOST environment variable")
	}
	if c.Username == "" || c.Password == "" {
		return fmt.Errorf("credentials are not set, use the config file or the ND_USERNAME and ND_PASSWORD environment variables")
	}
	return nil
}

// Timeout returns the configured request timeout, or the default
func (c *Config) Timeout() time.Duration {
	if c.TimeoutSecs > 0 {
		return time.Duration(c.TimeoutSecs) * time.Second
	}
	return defaultRequestTimeout
}

func (c *Config) overlayEnv() {
	if host, exists := os.LookupEnv("ND_HOST"); exists {
		c.Host = host
	}
	if username, exists := os.LookupEnv("ND_USERNAME"); exists {
		c.Username = username
	}
	if password, exists := os.LookupEnv("ND_PASSWORD"); exists {
		c.Password = password
	}
	if domain, exists := os.LookupEnv("ND_LOGIN_DOMAIN"); exists {
		c.LoginDomain = domain
	}
	if _, exists := os.LookupEnv("ND_INSECURE"); exists {
		c.Insecure = true
	}
	if c.LoginDomain == "" {
		c.LoginDomain = "DefaultAuth"
	}
}
