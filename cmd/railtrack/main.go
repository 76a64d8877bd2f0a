package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/railtrack/internal/config"
	"github.com/smallbiznis/railtrack/internal/migration"
	"github.com/smallbiznis/railtrack/internal/observability"
	"github.com/smallbiznis/railtrack/internal/server"
	"github.com/smallbiznis/railtrack/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
