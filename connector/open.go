package connector

import (
	"context"
	"crypto/tls"
	"database/sql"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Hebilicious/prisma/config"
	"github.com/Hebilicious/prisma/internal/errs"
)

// FromConfig 根据 connector 字段选择后端
func FromConfig(ctx context.Context, cfg *config.Database, opts ...DBOption) (*DB, error) {
	switch cfg.Connector {
	case config.ConnectorSQLite:
		return OpenSQLite(ctx, cfg.DatabaseFile, cfg.Limit(), opts...)
	case config.ConnectorPostgreSQL:
		return OpenPostgreSQL(ctx, cfg, opts...)
	case config.ConnectorMySQL:
		return OpenMySQL(ctx, cfg, opts...)
	default:
		return nil, errs.NewErrUnsupportedConnector(cfg.Connector)
	}
}

// OpenSQLite path 可以是文件路径, 也可以是 file: 开头的 DSN
// 外键约束总是打开的
func OpenSQLite(ctx context.Context, path string, limit int, opts ...DBOption) (*DB, error) {
	if path == "" {
		return nil, errs.NewErrConnectorCreation(errEmptyDatabaseFile)
	}
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on"
	} else {
		dsn += "?_foreign_keys=on"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errs.NewErrConnectorCreation(err)
	}
	return open(ctx, db, DialectSQLite, limit, opts...)
}

// OpenPostgreSQL 总是优先尝试 TLS, 并且接受无法校验的证书
func OpenPostgreSQL(ctx context.Context, cfg *config.Database, opts ...DBOption) (*DB, error) {
	dsn, err := postgresDSN(cfg)
	if err != nil {
		return nil, errs.NewErrConnectorCreation(err)
	}
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, errs.NewErrConnectorCreation(err)
	}
	acceptInvalidCerts(connCfg.TLSConfig)
	for _, fb := range connCfg.Fallbacks {
		acceptInvalidCerts(fb.TLSConfig)
	}
	if cfg.Schema != "" {
		connCfg.RuntimeParams["search_path"] = cfg.Schema
	}
	return open(ctx, stdlib.OpenDB(*connCfg), DialectPostgreSQL, cfg.Limit(), opts...)
}

func postgresDSN(cfg *config.Database) (string, error) {
	if cfg.URI != "" {
		u, err := url.Parse(cfg.URI)
		if err != nil {
			return "", err
		}
		q := u.Query()
		q.Set("sslmode", "prefer")
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		Path:     "/" + cfg.DBName(),
		RawQuery: "sslmode=prefer",
	}
	if cfg.Password != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	} else {
		u.User = url.User(cfg.User)
	}
	return u.String(), nil
}

func acceptInvalidCerts(c *tls.Config) {
	if c != nil {
		c.InsecureSkipVerify = true
	}
}

// OpenMySQL 时间戳按 UTC 读写
func OpenMySQL(ctx context.Context, cfg *config.Database, opts ...DBOption) (*DB, error) {
	mc, err := mysqlConfig(cfg)
	if err != nil {
		return nil, errs.NewErrConnectorCreation(err)
	}
	mc.ParseTime = true
	mc.Loc = time.UTC
	if cfg.SSL {
		mc.TLSConfig = "skip-verify"
	}
	c, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, errs.NewErrConnectorCreation(err)
	}
	return open(ctx, sql.OpenDB(c), DialectMySQL, cfg.Limit(), opts...)
}

// mysqlConfig uri 支持 mysql:// 的 URL 形式和驱动自己的 DSN 形式
func mysqlConfig(cfg *config.Database) (*mysql.Config, error) {
	if cfg.URI == "" {
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
		mc.DBName = cfg.DBName()
		return mc, nil
	}
	if !strings.HasPrefix(cfg.URI, "mysql://") {
		return mysql.ParseDSN(cfg.URI)
	}
	u, err := url.Parse(cfg.URI)
	if err != nil {
		return nil, err
	}
	mc := mysql.NewConfig()
	mc.User = u.User.Username()
	mc.Passwd, _ = u.User.Password()
	mc.Net = "tcp"
	mc.Addr = u.Host
	if u.Port() == "" {
		mc.Addr = net.JoinHostPort(u.Hostname(), "3306")
	}
	mc.DBName = strings.TrimPrefix(u.Path, "/")
	return mc, nil
}

func open(ctx context.Context, db *sql.DB, dialect Dialect, limit int, opts ...DBOption) (*DB, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errs.NewErrConnectorCreation(err)
	}
	opts = append([]DBOption{DBWithConnectionLimit(limit)}, opts...)
	return OpenDB(db, dialect, opts...)
}
