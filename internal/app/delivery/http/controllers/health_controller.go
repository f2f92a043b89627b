package controllers

import (
	"net/http"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/utils"
)

type HealthController struct {
	Version string
}

func NewHealthController(internalConfig *config.InternalConfig) *HealthController {
	return &HealthController{Version: internalConfig.App.Version}
}

func (ctrl *HealthController) Liveness(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccessHealthy, responses.HealthCheckResponse{
		Status:  "UP",
		Version: ctrl.Version,
	})
}
