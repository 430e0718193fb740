package router

import (
	"github.com/go-chi/chi/v5"
	"log/slog"
	"team-analytics/internal/http/v1/handler"
	"team-analytics/internal/service"
)

type VisualizationRouter struct {
	handler *handler.VisualizationHandler
}

func NewVisualizationRouter(vizService *service.VisualizationService, log *slog.Logger) *VisualizationRouter {
	return &VisualizationRouter{
		handler: handler.NewVisualizationHandler(vizService, log),
	}
}

func (vr *VisualizationRouter) SetupRoutes(r chi.Router) {

	r.Route("/visualizations", func(r chi.Router) {
		r.Post("/generate", vr.handler.GenerateCharts)

		r.Get("/", vr.handler.ListVisualizations)

		r.Post("/share", vr.handler.Share)

		r.Get("/share", vr.handler.ListShared)

		r.Get("/{id}", vr.handler.GetVisualization)
	})

}
