package dashboard

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hallward-systems/secure-access/internal/auth"
)

// NewModule returns the dashboard module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(log *zap.Logger, repo auth.Repository) *Service {
					return NewService(log, repo)
				},
			),
			fx.Annotate(
				func(svc *Service, guard *auth.Guard, log *zap.Logger) *Handler {
					return NewHandler(svc, guard, log)
				},
			),
		),
	)
}
