package auth

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hallward-systems/secure-access/internal/config"
	"github.com/hallward-systems/secure-access/internal/database"
)

// NewModule returns the auth module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(manager *database.Manager) Repository {
					return NewRepository(manager.DB())
				},
			),
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, repo Repository) *Service {
					return NewService(&config.Auth, log, repo)
				},
			),
			fx.Annotate(
				func(svc *Service) *Guard {
					return NewGuard(svc)
				},
			),
			fx.Annotate(
				func(config *config.AppConfig, log *zap.Logger, repo Repository) *Provisioner {
					return NewProvisioner(&config.Auth, log, repo)
				},
			),
			fx.Annotate(
				func(svc *Service, guard *Guard, prov *Provisioner, log *zap.Logger) *Handler {
					return NewHandler(svc, guard, prov, log)
				},
			),
			fx.Annotate(
				func() *Middleware {
					return NewMiddleware()
				},
			),
		),
	)
}
