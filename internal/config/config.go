package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	EnvAccessToken   = "ACCESS_TOKEN"
	EnvGitHubToken   = "GITHUB_TOKEN"
	EnvActor         = "GITHUB_ACTOR"
	EnvExcluded      = "EXCLUDED"
	EnvExcludedLangs = "EXCLUDED_LANGS"
	EnvExcludeForked = "EXCLUDE_FORKED_REPOS"
	EnvCacheDir      = "STATSNUSERN_CACHE_DIR"
	EnvCacheTTL      = "STATSNUSERN_CACHE_TTL"
	EnvParallelism   = "STATSNUSERN_PARALL"
	EnvOutputDir     = "STATSNUSERN_OUTPUT"
	EnvMaxLanguages  = "STATSNUSERN_MAX_LANGUAGES"
	EnvDebug         = "STATSNUSERN_DEBUG"
	EnvConfigFile    = "STATSNUSERN_CONFIG"
)

const (
	DefaultCacheDir      = ".github_stats_cache"
	DefaultCacheTTLHours = 6
	DefaultMaxConcurrent = 10
	DefaultOutputDir     = "generated"
	DefaultMaxLanguages  = 10
)

type Config struct {
	Token         string   `toml:"token"`
	Username      string   `toml:"username"`
	ExcludedRepos []string `toml:"excluded_repos"`
	ExcludedLangs []string `toml:"excluded_langs"`
	ExcludeForked bool     `toml:"exclude_forked"`
	CacheDir      string   `toml:"cache_dir"`
	CacheTTLHours int      `toml:"cache_ttl_hours"`
	MaxConcurrent int      `toml:"max_concurrent"` // maks antall samtidige kall mot GitHub
	OutputDir     string   `toml:"output_dir"`
	MaxLanguages  int      `toml:"max_languages"`
	Debug         bool     `toml:"debug"`
}

func Defaults() Config {
	return Config{
		CacheDir:      DefaultCacheDir,
		CacheTTLHours: DefaultCacheTTLHours,
		MaxConcurrent: DefaultMaxConcurrent,
		OutputDir:     DefaultOutputDir,
		MaxLanguages:  DefaultMaxLanguages,
	}
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLHours) * time.Hour
}

// LoadConfigWithEnv leser standardverdier, så eventuell TOML-fil, så
// miljøvariabler, uten å validere. Tom path betyr at STATSNUSERN_CONFIG brukes.
func LoadConfigWithEnv(path string, getenv func(string) string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		path = getenv(EnvConfigFile)
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	ApplyEnv(&cfg, getenv)
	return cfg, nil
}

// LoadFile leser en TOML-fil over verdiene som allerede finnes i cfg.
func LoadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("kunne ikke lese konfigurasjonsfil %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overstyrer cfg med miljøvariabler som er satt. Tall som ikke kan
// tolkes settes til 0, slik at ValidateConfig sier fra.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvAccessToken); v != "" {
		cfg.Token = v
	} else if v := getenv(EnvGitHubToken); v != "" {
		cfg.Token = v
	}
	if v := getenv(EnvActor); v != "" {
		cfg.Username = v
	}
	if v := getenv(EnvExcluded); v != "" {
		cfg.ExcludedRepos = splitList(v)
	}
	if v := getenv(EnvExcludedLangs); v != "" {
		cfg.ExcludedLangs = splitList(v)
	}
	if v := getenv(EnvExcludeForked); v != "" {
		cfg.ExcludeForked = strings.ToLower(strings.TrimSpace(v)) != "false"
	}
	if v := getenv(EnvCacheDir); v != "" {
		cfg.CacheDir = v
	}
	if v := getenv(EnvCacheTTL); v != "" {
		cfg.CacheTTLHours = parsePositive(v)
	}
	if v := getenv(EnvParallelism); v != "" {
		cfg.MaxConcurrent = parsePositive(v)
	}
	if v := getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv(EnvMaxLanguages); v != "" {
		cfg.MaxLanguages = parsePositive(v)
	}
	if v := getenv(EnvDebug); v != "" {
		cfg.Debug = v == "true"
	}
}

func ValidateConfig(cfg Config) error {
	if cfg.Token == "" {
		return errors.New("ACCESS_TOKEN eller GITHUB_TOKEN må være satt")
	}
	if cfg.Username == "" {
		return errors.New("GITHUB_ACTOR må være satt")
	}
	if cfg.CacheDir == "" {
		return errors.New("STATSNUSERN_CACHE_DIR kan ikke være tom")
	}
	if cfg.CacheTTLHours <= 0 {
		return errors.New("STATSNUSERN_CACHE_TTL må være et positivt heltall")
	}
	if cfg.MaxConcurrent <= 0 {
		return errors.New("STATSNUSERN_PARALL må være et positivt heltall")
	}
	if cfg.OutputDir == "" {
		return errors.New("STATSNUSERN_OUTPUT kan ikke være tom")
	}
	if cfg.MaxLanguages <= 0 {
		return errors.New("STATSNUSERN_MAX_LANGUAGES må være et positivt heltall")
	}
	return nil
}

// Load er LoadConfigWithEnv etterfulgt av ValidateConfig.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg, err := LoadConfigWithEnv(path, getenv)
	if err != nil {
		return Config{}, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadAndValidateConfig(path string) (Config, error) {
	return Load(path, os.Getenv)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePositive(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
