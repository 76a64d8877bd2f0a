package manufacturer

import (
	"github.com/smallbiznis/railtrack/internal/manufacturer/repository"
	"github.com/smallbiznis/railtrack/internal/manufacturer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("manufacturer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
