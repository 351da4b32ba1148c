package config

import "time"

// TOCStyle selects how the table of contents is shown.
type TOCStyle string

const (
	TOCPermanent TOCStyle = "permanent"
	TOCHamburger TOCStyle = "hamburger"
)

// TOCList selects the list element of the table of contents.
type TOCList string

const (
	ListOrdered   TOCList = "ol"
	ListUnordered TOCList = "ul"
	ListNone      TOCList = "none"
)

// LogFormat selects the zap encoder.
type LogFormat string

const (
	LogConsole LogFormat = "console"
	LogJSON    LogFormat = "json"
)

// Duration is a time.Duration that reads and writes as "30s" in YAML.
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (any, error) { return time.Duration(d).String(), nil }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config is the presenter configuration, corresponding to minitut.yml.
type Config struct {
	Document       string    `yaml:"document" koanf:"document"`
	Port           string    `yaml:"port" koanf:"port"`
	ControlKey     string    `yaml:"control_key,omitempty" koanf:"control_key"`
	TOCStyle       TOCStyle  `yaml:"toc_style" koanf:"toc_style"`
	TOCList        TOCList   `yaml:"toc_list" koanf:"toc_list"`
	SectionTitle   string    `yaml:"section_title,omitempty" koanf:"section_title"`
	NoKeyboardNav  bool      `yaml:"no_keyboard_nav" koanf:"no_keyboard_nav"`
	NoTouchNav     bool      `yaml:"no_touch_nav" koanf:"no_touch_nav"`
	Download       []string  `yaml:"download,omitempty" koanf:"download"`
	FetchTimeout   Duration  `yaml:"fetch_timeout" koanf:"fetch_timeout"`
	FetchRetries   int       `yaml:"fetch_retries" koanf:"fetch_retries"`
	MaxConcurrent  int       `yaml:"max_concurrent_fetch" koanf:"max_concurrent_fetch"`
	AllowedOrigins []string  `yaml:"allowed_origins" koanf:"allowed_origins"`
	LogLevel       string    `yaml:"log_level" koanf:"log_level"`
	LogFormat      LogFormat `yaml:"log_format" koanf:"log_format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:           "8090",
		TOCStyle:       TOCPermanent,
		TOCList:        ListOrdered,
		FetchTimeout:   Duration(30 * time.Second),
		FetchRetries:   3,
		MaxConcurrent:  4,
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		LogLevel:       "info",
		LogFormat:      LogConsole,
	}
}
