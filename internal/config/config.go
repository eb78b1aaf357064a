package config

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr          string `yaml:"addr"`
	EdgeFile      string `yaml:"edge_file"`
	MySQLDSN      string `yaml:"mysql_dsn"`
	Watch         bool   `yaml:"watch"`
	CacheCapacity int    `yaml:"cache_capacity"`
}

func defaults() ServerConfig {
	return ServerConfig{
		Addr:          ":8080",
		CacheCapacity: 1024,
	}
}

// Load reads a YAML server config and applies defaults.
func Load(path string) (ServerConfig, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = 1024
	}
	return cfg, nil
}

// FromFlagsServer builds the server config from flags, optionally
// seeded from a YAML file. Flags override the file; the DSN falls back
// to the DB_DSN environment variable.
func FromFlagsServer() (ServerConfig, error) {
	var cfgPath, addr, edges, dsn string
	var watch bool
	flag.StringVar(&cfgPath, "config", "", "Path to YAML server config")
	flag.StringVar(&addr, "addr", "", "HTTP bind address")
	flag.StringVar(&edges, "edges", "", "Path to edge-list file")
	flag.StringVar(&dsn, "dsn", "", "MySQL DSN (falls back to DB_DSN)")
	flag.BoolVar(&watch, "watch", false, "Rebuild the graph when the edge file changes")
	flag.Parse()

	cfg := defaults()
	if cfgPath != "" {
		loaded, err := Load(cfgPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if edges != "" {
		cfg.EdgeFile = edges
	}
	if dsn != "" {
		cfg.MySQLDSN = dsn
	}
	if cfg.MySQLDSN == "" {
		cfg.MySQLDSN = os.Getenv("DB_DSN")
	}
	if watch {
		cfg.Watch = true
	}
	if cfg.EdgeFile == "" && cfg.MySQLDSN == "" {
		return cfg, fmt.Errorf("no graph source: set edge_file or mysql_dsn")
	}
	return cfg, nil
}
