package routers

import (
	"telehealth-service/internal/app/delivery/http/controllers"
	"telehealth-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachHealthSessionRoutes(router chi.Router, middlewares *middlewares.Middlewares, ctrl *controllers.HealthSessionController) {
	router.With(middlewares.Authenticate).Post("/", ctrl.BookSession)
	router.With(middlewares.Authenticate).Patch("/{reference}/cancel", ctrl.CancelSession)
}
