package recommend

import (
	"github.com/smallbiznis/railtrack/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("providers.recommend",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config) Provider {
	if cfg.RecommendationURL == "" && cfg.PredictionURL == "" {
		return &NoOpProvider{}
	}
	return NewHTTP(Config{
		RecommendationURL: cfg.RecommendationURL,
		PredictionURL:     cfg.PredictionURL,
		Timeout:           cfg.CollaboratorTimeout,
	})
}
