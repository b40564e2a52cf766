package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/assetdesk/internal/cache"
	"github.com/mesh-intelligence/assetdesk/internal/paths"
	"github.com/mesh-intelligence/assetdesk/internal/session"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend       = "backend"
	cfgKeyDataDir       = "data_dir"
	cfgKeyPageSize      = "page_size"
	cfgKeyLogLevel      = "log.level"
	cfgKeyLogFormat     = "log.format"
	cfgKeySessionMeURL  = "session.me_url"
	cfgKeySessionLogin  = "session.login_url"
	cfgKeySessionTime   = "session.timeout"
	cfgKeyRedisAddr     = "cache.redis_addr"
	cfgKeyRedisPassword = "cache.password"
	cfgKeyRedisDB       = "cache.db"
	cfgKeyCachePrefix   = "cache.prefix"
	cfgKeyCacheTTL      = "cache.ttl"

	defaultPageSize  = 10
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
)

// settings is the resolved configuration of one invocation.
type settings struct {
	Backend   string
	DataDir   string
	PageSize  int
	LogLevel  string
	LogFormat string
	Session   session.Config
	// SessionEnabled is set when session.me_url is configured. Listings
	// then require a signed-in user.
	SessionEnabled bool
	Cache          cache.Config
}

func (s settings) catalogConfig() types.Config {
	return types.Config{Backend: s.Backend, DataDir: s.DataDir, PageSize: s.PageSize}
}

// envKeys can be overridden from the environment: ASSETDESK_PAGE_SIZE
// overrides page_size, ASSETDESK_CACHE_REDIS_ADDR overrides
// cache.redis_addr, and so on. data_dir is absent because
// ASSETDESK_DATA_DIR ranks below config.yaml and is handled by paths.
var envKeys = []string{
	cfgKeyBackend,
	cfgKeyPageSize,
	cfgKeyLogLevel,
	cfgKeyLogFormat,
	cfgKeySessionMeURL,
	cfgKeySessionLogin,
	cfgKeySessionTime,
	cfgKeyRedisAddr,
	cfgKeyRedisPassword,
	cfgKeyRedisDB,
	cfgKeyCachePrefix,
	cfgKeyCacheTTL,
}

// newViper returns a viper instance with defaults and environment bindings.
func newViper(configDir string) *viper.Viper {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyDataDir, "")
	v.SetDefault(cfgKeyPageSize, defaultPageSize)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyLogFormat, defaultLogFormat)
	v.SetDefault(cfgKeySessionMeURL, "")
	v.SetDefault(cfgKeySessionLogin, session.DefaultLoginURL)
	v.SetDefault(cfgKeySessionTime, session.DefaultTimeout)
	v.SetDefault(cfgKeyRedisAddr, "")
	v.SetDefault(cfgKeyRedisPassword, "")
	v.SetDefault(cfgKeyRedisDB, 0)
	v.SetDefault(cfgKeyCachePrefix, cache.DefaultPrefix)
	v.SetDefault(cfgKeyCacheTTL, cache.DefaultTTL)

	v.SetEnvPrefix(paths.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	return v
}

// loadSettings reads config.yaml from configDir. A missing file is not an
// error; defaults and environment overrides still apply.
func loadSettings(configDir string) (settings, error) {
	v := newViper(configDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	meURL := v.GetString(cfgKeySessionMeURL)
	return settings{
		Backend:   v.GetString(cfgKeyBackend),
		DataDir:   v.GetString(cfgKeyDataDir),
		PageSize:  v.GetInt(cfgKeyPageSize),
		LogLevel:  v.GetString(cfgKeyLogLevel),
		LogFormat: v.GetString(cfgKeyLogFormat),
		Session: session.Config{
			MeURL:    meURL,
			LoginURL: v.GetString(cfgKeySessionLogin),
			Timeout:  v.GetDuration(cfgKeySessionTime),
		},
		SessionEnabled: meURL != "",
		Cache: cache.Config{
			Address:  v.GetString(cfgKeyRedisAddr),
			Password: v.GetString(cfgKeyRedisPassword),
			DB:       v.GetInt(cfgKeyRedisDB),
			Prefix:   v.GetString(cfgKeyCachePrefix),
			TTL:      v.GetDuration(cfgKeyCacheTTL),
		},
	}, nil
}

// configFile is the layout of config.yaml written by init.
type configFile struct {
	Backend  string        `yaml:"backend"`
	DataDir  string        `yaml:"data_dir,omitempty"`
	PageSize int           `yaml:"page_size"`
	Log      logSection    `yaml:"log"`
	Session  sessionConfig `yaml:"session"`
	Cache    cacheSection  `yaml:"cache"`
}

type logSection struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type sessionConfig struct {
	MeURL    string `yaml:"me_url"`
	LoginURL string `yaml:"login_url"`
	Timeout  string `yaml:"timeout"`
}

type cacheSection struct {
	RedisAddr string `yaml:"redis_addr"`
	DB        int    `yaml:"db"`
	Prefix    string `yaml:"prefix"`
	TTL       string `yaml:"ttl"`
}

func defaultConfigFile() configFile {
	return configFile{
		Backend:  types.BackendSQLite,
		PageSize: defaultPageSize,
		Log:      logSection{Level: defaultLogLevel, Format: defaultLogFormat},
		Session: sessionConfig{
			LoginURL: session.DefaultLoginURL,
			Timeout:  session.DefaultTimeout.String(),
		},
		Cache: cacheSection{
			Prefix: cache.DefaultPrefix,
			TTL:    cache.DefaultTTL.String(),
		},
	}
}

// writeConfigIfMissing creates configDir and a default config.yaml in it.
// An existing file is left untouched. It reports whether a file was written.
func writeConfigIfMissing(configDir string) (bool, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	path := paths.ConfigFile(configDir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	data, err := yaml.Marshal(defaultConfigFile())
	if err != nil {
		return false, fmt.Errorf("encode config: %w", err)
	}
	header := []byte("# assetdesk configuration\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return false, fmt.Errorf("write config: %w", err)
	}
	return true, nil
}
