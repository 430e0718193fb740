package router

import (
	"github.com/go-chi/chi/v5"
	"log/slog"
	"team-analytics/internal/http/v1/handler"
	"team-analytics/internal/service"
)

type UserRouter struct {
	handler *handler.UserHandler
}

func NewUserRouter(userService *service.UserService, log *slog.Logger) *UserRouter {
	return &UserRouter{
		handler: handler.NewUserHandler(userService, log),
	}
}

func (ur *UserRouter) SetupRoutes(r chi.Router) {

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", ur.handler.Register)
	})

}
