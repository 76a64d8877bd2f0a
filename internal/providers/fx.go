package providers

import (
	"github.com/smallbiznis/railtrack/internal/providers/imagestore"
	"github.com/smallbiznis/railtrack/internal/providers/recommend"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	recommend.Module,
	imagestore.Module,
)
