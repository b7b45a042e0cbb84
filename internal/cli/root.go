// Package cli 实现 query-engine 命令行
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Hebilicious/prisma/config"
	"github.com/Hebilicious/prisma/connector"
	"github.com/Hebilicious/prisma/connector/middleware/nodelete"
	"github.com/Hebilicious/prisma/connector/middleware/opentelemetry"
	"github.com/Hebilicious/prisma/connector/middleware/querylog"
	"github.com/Hebilicious/prisma/connector/middleware/slowquery"
)

// RootOptions 所有命令共享的参数
type RootOptions struct {
	ConfigPath string
	Database   string
	Verbose    bool
	LogArgs    bool
	Slow       time.Duration

	logger *zap.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "query-engine",
		Short: "prisma query engine",
		Long:  "Run statements against the SQLite, PostgreSQL or MySQL database described by the prisma config.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.Verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "",
		"config file, defaults to $"+config.EnvConfig+" or $"+config.EnvConfigPath)
	cmd.PersistentFlags().StringVarP(&opts.Database, "database", "d", config.DefaultDatabase, "database name in the config")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "development logging at debug level")
	cmd.PersistentFlags().BoolVar(&opts.LogArgs, "log-args", false, "log statement arguments")
	cmd.PersistentFlags().DurationVar(&opts.Slow, "slow", 200*time.Millisecond, "warn about statements slower than this")

	cmd.AddCommand(NewPingCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewExecCommand(opts))
	cmd.AddCommand(NewTruncateCommand(opts))
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// connect 按配置打开数据库, guard 为 true 时拒绝没有 WHERE 的 UPDATE 和 DELETE
func (o *RootOptions) connect(ctx context.Context, guard bool) (*connector.DB, *config.Database, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	var db *config.Database
	if o.Database == config.DefaultDatabase {
		db, err = cfg.Default()
		if err != nil {
			return nil, nil, err
		}
	} else {
		var ok bool
		db, ok = cfg.Databases[o.Database]
		if !ok {
			return nil, nil, newErrUnknownDatabase(o.Database)
		}
	}

	ql := querylog.NewMiddlewareBuilder(o.logger)
	if o.LogArgs {
		ql = ql.LogArgs()
	}
	mdls := []connector.Middleware{
		opentelemetry.MiddlewareBuilder{}.Build(),
		ql.Build(),
		slowquery.NewMiddlewareBuilder(o.Slow, o.logger).Build(),
	}
	if guard {
		mdls = append(mdls, nodelete.NewMiddlewareBuilder().Build())
	}
	conn, err := connector.FromConfig(ctx, db,
		connector.DBWithLogger(o.logger),
		connector.DBWithMiddlewares(mdls...))
	if err != nil {
		return nil, nil, err
	}
	return conn, db, nil
}
