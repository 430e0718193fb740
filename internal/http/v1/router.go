package v1

import (
	"github.com/go-chi/chi/v5"
	"log/slog"
	"team-analytics/internal/http/v1/middleware"
	"team-analytics/internal/http/v1/router"
	"team-analytics/internal/service"
)

type Router interface {
	SetupRoutes(r chi.Router)
}

type RouterDependencies struct {
	UserService          *service.UserService
	RecordService        *service.RecordService
	VisualizationService *service.VisualizationService
}

func SetupRoutes(r chi.Router, deps *RouterDependencies, log *slog.Logger) {
	r.Group(func(r chi.Router) {
		router.NewUserRouter(deps.UserService, log).SetupRoutes(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(deps.UserService, log))

		routers := []Router{
			router.NewRecordRouter(deps.RecordService, log),
			router.NewVisualizationRouter(deps.VisualizationService, log),
		}

		for _, serviceRouter := range routers {
			serviceRouter.SetupRoutes(r)
		}
	})
}
