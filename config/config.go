// Package config 读取 prisma 的 YAML 配置
package config

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/Hebilicious/prisma/internal/errs"
)

const (
	// EnvConfig 直接包含配置内容的环境变量
	EnvConfig = "PRISMA_CONFIG"
	// EnvConfigPath 配置文件路径的环境变量
	EnvConfigPath = "PRISMA_CONFIG_PATH"

	DefaultPort            = 4466
	DefaultConnectionLimit = 10
	DefaultDatabase        = "default"

	ConnectorSQLite     = "sqlite-native"
	ConnectorPostgreSQL = "postgres-native"
	ConnectorMySQL      = "mysql-native"
)

type Config struct {
	Port      int                  `yaml:"port"`
	Databases map[string]*Database `yaml:"databases"`
}

// Database 可以用 uri 配置, 也可以逐项配置
type Database struct {
	Connector       string `yaml:"connector"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Database        string `yaml:"database"`
	Schema          string `yaml:"schema"`
	URI             string `yaml:"uri"`
	DatabaseFile    string `yaml:"databaseFile"`
	ConnectionLimit int    `yaml:"connectionLimit"`
	SSL             bool   `yaml:"ssl"`
}

// Limit 没有配置时使用 DefaultConnectionLimit
func (d *Database) Limit() int {
	if d.ConnectionLimit > 0 {
		return d.ConnectionLimit
	}
	return DefaultConnectionLimit
}

// DBName 数据库名, 没有配置时使用 schema
func (d *Database) DBName() string {
	if d.Database != "" {
		return d.Database
	}
	return d.Schema
}

// Default 返回名为 default 的数据库
func (c *Config) Default() (*Database, error) {
	db, ok := c.Databases[DefaultDatabase]
	if !ok || db == nil {
		return nil, errs.ErrNoDefaultDatabase
	}
	return db, nil
}

// Parse 解析 YAML, ${VAR} 会被替换为环境变量的值
func Parse(data []byte) (*Config, error) {
	expanded := os.Expand(string(data), func(key string) string {
		return os.Getenv(key)
	})
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.Wrap(err, "config: 无法解析配置")
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	for name, db := range cfg.Databases {
		if db == nil {
			return nil, errors.Newf("config: 数据库 %s 的配置为空", name)
		}
		db.Connector = strings.TrimSpace(db.Connector)
		if db.Connector == "" {
			return nil, errors.Newf("config: 数据库 %s 没有指定 connector", name)
		}
	}
	return cfg, nil
}

// Load 读取顺序: path 参数, PRISMA_CONFIG, PRISMA_CONFIG_PATH
func Load(path string) (*Config, error) {
	if path == "" {
		if inline := os.Getenv(EnvConfig); inline != "" {
			return Parse([]byte(inline))
		}
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		return nil, errors.Newf("config: 没有找到配置, 请设置 %s 或者 %s", EnvConfig, EnvConfigPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "config: 无法读取 %s", path)
	}
	return Parse(data)
}
