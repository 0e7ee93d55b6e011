package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the ambient settings for the prefix-search demo: which
// environment's logging handler to use, the default splitter settings,
// the default result cap, and where the demo catalog file lives.
type Config struct {
	Env            string         `yaml:"env" env-default:"local"`
	CatalogPath    string         `yaml:"catalog_path" env-default:"./data/catalog.xml.gz"`
	Splitter       SplitterConfig `yaml:"splitter"`
	DefaultMaxSize int            `yaml:"default_max_size" env-default:"50"`
}

// SplitterConfig mirrors the default WordSplitter's configuration
// options, per the spec's external-interfaces section.
type SplitterConfig struct {
	SubwordPattern   string `yaml:"subword_pattern" env-default:"[a-z0-9]+"`
	NormalizeUnicode bool   `yaml:"normalize_unicode" env-default:"true"`
}

// MustLoad resolves the config file path (flag > env > default), reads
// it, and applies any flag overrides. It panics on a missing file or
// malformed config, matching the fail-fast startup discipline used
// throughout this command-line tool.
func MustLoad() *Config {
	configPathFlag := flag.String("config", "", "Path to the config file")
	catalogPathFlag := flag.String("catalog-path", "", "Path to the catalog file")
	patternFlag := flag.String("subword-pattern", "", "Subword regular expression")
	flag.Parse()

	configPath := *configPathFlag
	if configPath == "" {
		configPath = fetchConfigPath()
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("error loading config file: " + err.Error())
	}

	if *catalogPathFlag != "" {
		cfg.CatalogPath = *catalogPathFlag
	}
	if *patternFlag != "" {
		cfg.Splitter.SubwordPattern = *patternFlag
	}

	return &cfg
}

// fetchConfigPath resolves the config path from the environment, falling
// back to a local default. Priority: flag > env > default.
func fetchConfigPath() string {
	res := os.Getenv("CONFIG_PATH")
	if res == "" {
		cwd, _ := os.Getwd()
		fmt.Println("Current working directory:", cwd)
	}
	if res == "" {
		res = "./config/config_local.yaml"
	}
	fmt.Println("Config path:", res)
	return res
}
