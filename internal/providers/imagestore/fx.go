package imagestore

import (
	"github.com/smallbiznis/railtrack/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.imagestore",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	if cfg.ImageUploadURL == "" {
		return &NoOpProvider{}
	}
	return NewHTTP(Config{
		UploadURL:    cfg.ImageUploadURL,
		UploadPreset: cfg.ImageUploadPreset,
		Timeout:      cfg.ImageUploadTimeout,
	})
}
