package router

import (
	"github.com/go-chi/chi/v5"
	"log/slog"
	"team-analytics/internal/http/v1/handler"
	"team-analytics/internal/service"
)

type RecordRouter struct {
	handler *handler.RecordHandler
}

func NewRecordRouter(recordService *service.RecordService, log *slog.Logger) *RecordRouter {
	return &RecordRouter{
		handler: handler.NewRecordHandler(recordService, log),
	}
}

func (rr *RecordRouter) SetupRoutes(r chi.Router) {

	r.Route("/data", func(r chi.Router) {
		r.Post("/upload", rr.handler.UploadData)

		r.Get("/", rr.handler.ListRecords)

		r.Get("/statistics", rr.handler.GetStatistics)

		r.Get("/{id}", rr.handler.GetRecord)
	})

}
