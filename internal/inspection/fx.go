package inspection

import (
	"github.com/smallbiznis/railtrack/internal/inspection/repository"
	"github.com/smallbiznis/railtrack/internal/inspection/service"
	"go.uber.org/fx"
)

var Module = fx.Module("inspection.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
