package cmd

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Config holds configuration values for commands.
type Config struct {
	Port                    string
	UpstreamURL             *url.URL
	AskPath                 string
	StaticRoot              string
	FallbackDocument        string
	ProxyProtocol           bool
	UpstreamDialTimeout     time.Duration
	UpstreamResponseTimeout time.Duration
	CheckTimeout            time.Duration
	ShutdownTimeout         time.Duration
	GatewayURL              *url.URL
	ChatLogFile             string

	// err holds the problems found while reading the environment.
	err error
}

// GetConfigFromEnvironment creates Config object based on the shell
// environment. Variables defined in a .env file in the working directory are
// loaded first, without overriding those already set.
func GetConfigFromEnvironment() *Config {
	_ = godotenv.Load()

	e := &environment{}

	return &Config{
		Port:                    env("PORT", "3000"),
		UpstreamURL:             e.url("UPSTREAM_URL", "http://localhost:5000"),
		AskPath:                 env("ASK_PATH", "/ask"),
		StaticRoot:              env("STATIC_ROOT", ""),
		FallbackDocument:        env("FALLBACK_DOCUMENT", "index.html"),
		ProxyProtocol:           e.bool("PROXY_PROTOCOL", false),
		UpstreamDialTimeout:     e.duration("UPSTREAM_DIAL_TIMEOUT", 0),
		UpstreamResponseTimeout: e.duration("UPSTREAM_RESPONSE_TIMEOUT", 0),
		CheckTimeout:            e.duration("CHECK_TIMEOUT", 500*time.Millisecond),
		ShutdownTimeout:         e.duration("SHUTDOWN_TIMEOUT", 30*time.Second),
		GatewayURL:              e.url("GATEWAY_URL", "http://localhost:3000"),
		ChatLogFile:             env("CHAT_LOG_FILE", ""),
		err:                     e.err,
	}
}

// Validate returns an error describing every invalid configuration value, or
// nil if the configuration is usable.
func (config *Config) Validate() error {
	err := config.err

	if port, e := strconv.ParseUint(config.Port, 10, 16); e != nil || port == 0 {
		err = multierr.Append(err, fmt.Errorf("PORT: '%s' is not a valid port number", config.Port))
	}

	if u := config.UpstreamURL; u != nil {
		switch u.Scheme {
		case "http", "https", "h2c":
		default:
			err = multierr.Append(err, fmt.Errorf("UPSTREAM_URL: unsupported scheme '%s'", u.Scheme))
		}
		if u.Host == "" {
			err = multierr.Append(err, fmt.Errorf("UPSTREAM_URL: '%s' does not contain a host", u))
		}
	}

	if !strings.HasPrefix(config.AskPath, "/") || strings.Trim(config.AskPath, "/") == "" {
		err = multierr.Append(err, fmt.Errorf("ASK_PATH: '%s' must be an absolute path below the root", config.AskPath))
	}

	for _, d := range []struct {
		name  string
		value time.Duration
	}{
		{"UPSTREAM_DIAL_TIMEOUT", config.UpstreamDialTimeout},
		{"UPSTREAM_RESPONSE_TIMEOUT", config.UpstreamResponseTimeout},
		{"CHECK_TIMEOUT", config.CheckTimeout},
		{"SHUTDOWN_TIMEOUT", config.ShutdownTimeout},
	} {
		if d.value < 0 {
			err = multierr.Append(err, fmt.Errorf("%s: duration must not be negative", d.name))
		}
	}

	return err
}

func env(key string, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return def
}

// environment reads typed values from the environment, collecting any that
// can not be parsed.
type environment struct {
	err error
}

func (e *environment) bool(key string, def bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err != nil {
			e.fail(key, value, "boolean")
			return def
		}
		return b
	}

	return def
}

func (e *environment) duration(key string, def time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			e.fail(key, value, "duration")
			return def
		}
		return d
	}

	return def
}

func (e *environment) url(key string, def string) *url.URL {
	value := env(key, def)
	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() {
		e.fail(key, value, "absolute URL")
		return nil
	}

	return u
}

func (e *environment) fail(key, value, kind string) {
	e.err = multierr.Append(
		e.err,
		fmt.Errorf("%s: '%s' is not a valid %s", key, value, kind),
	)
}
