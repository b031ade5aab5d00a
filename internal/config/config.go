// Package config loads runtime configuration for NanoRemote.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. NANOREMOTE_LISTEN_ADDR.
const EnvPrefix = "NANOREMOTE"

const (
	defaultListenAddr      = "0.0.0.0:3000"
	defaultDataDir         = "./data"
	defaultFrameIntervalMs = 66
	defaultMaxFrameWidth   = 1280
	defaultJPEGQuality     = 60
	defaultMonitorIdx      = 1
	defaultWindowTitle     = "NanoVNA"
	defaultMoveRateLimit   = 0
	defaultWebRTCEnabled   = true
	defaultMJPEGEnabled    = true
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr      string   `mapstructure:"listen_addr" yaml:"listen_addr"`
	DataDir         string   `mapstructure:"data_dir" yaml:"data_dir"`
	StaticDir       string   `mapstructure:"static_dir" yaml:"static_dir"`
	FrameIntervalMs int      `mapstructure:"frame_interval_ms" yaml:"frame_interval_ms"`
	MaxFrameWidth   int      `mapstructure:"max_frame_width" yaml:"max_frame_width"`
	JPEGQuality     int      `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`
	MonitorIndex    int      `mapstructure:"monitor_index" yaml:"monitor_index"`
	WindowTitle     string   `mapstructure:"window_title" yaml:"window_title"`
	MoveRateLimit   int      `mapstructure:"move_rate_limit" yaml:"move_rate_limit"`
	WebRTCEnabled   bool     `mapstructure:"webrtc_enabled" yaml:"webrtc_enabled"`
	ICEServers      []string `mapstructure:"ice_servers" yaml:"ice_servers"`
	MJPEGEnabled    bool     `mapstructure:"mjpeg_enabled" yaml:"mjpeg_enabled"`
	LogLevel        string   `mapstructure:"log_level" yaml:"log_level"`
	LogFormat       string   `mapstructure:"log_format" yaml:"log_format"`

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string `mapstructure:"-" yaml:"-"`
}

// FrameInterval returns the streaming period as a duration.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// EnvFile returns the path of the .env file inside the data dir.
func (c Config) EnvFile() string {
	return filepath.Join(c.DataDir, ".env")
}

// Load reads defaults, ./data/.env, an optional YAML file and NANOREMOTE_*
// environment variables, in increasing order of precedence.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := loadEnvFile(filepath.Join(v.GetString("data_dir"), ".env")); err != nil {
		return Config{}, err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("nanoremote")
		v.SetConfigType("yaml")
		v.AddConfigPath(v.GetString("data_dir"))
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.WindowTitle = strings.TrimSpace(cfg.WindowTitle)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:      defaultListenAddr,
		DataDir:         defaultDataDir,
		FrameIntervalMs: defaultFrameIntervalMs,
		MaxFrameWidth:   defaultMaxFrameWidth,
		JPEGQuality:     defaultJPEGQuality,
		MonitorIndex:    defaultMonitorIdx,
		WindowTitle:     defaultWindowTitle,
		MoveRateLimit:   defaultMoveRateLimit,
		WebRTCEnabled:   defaultWebRTCEnabled,
		MJPEGEnabled:    defaultMJPEGEnabled,
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("listen_addr is required")
	}
	if c.FrameIntervalMs <= 0 {
		return fmt.Errorf("frame_interval_ms must be > 0")
	}
	if c.MaxFrameWidth <= 0 {
		return fmt.Errorf("max_frame_width must be > 0")
	}
	if c.JPEGQuality <= 0 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be 1-100")
	}
	if c.MonitorIndex <= 0 {
		return fmt.Errorf("monitor_index must be >= 1")
	}
	if c.MoveRateLimit < 0 {
		return fmt.Errorf("move_rate_limit must be >= 0")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format must be text or json")
	}
	return nil
}

// YAML renders the effective configuration.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("static_dir", d.StaticDir)
	v.SetDefault("frame_interval_ms", d.FrameIntervalMs)
	v.SetDefault("max_frame_width", d.MaxFrameWidth)
	v.SetDefault("jpeg_quality", d.JPEGQuality)
	v.SetDefault("monitor_index", d.MonitorIndex)
	v.SetDefault("window_title", d.WindowTitle)
	v.SetDefault("move_rate_limit", d.MoveRateLimit)
	v.SetDefault("webrtc_enabled", d.WebRTCEnabled)
	v.SetDefault("ice_servers", []string{})
	v.SetDefault("mjpeg_enabled", d.MJPEGEnabled)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
}

// loadEnvFile loads KEY=VALUE pairs from a .env file. Variables already
// present in the environment win.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
