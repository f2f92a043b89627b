package controllers

import (
	"context"
	"net/http"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/dto/requests"
	"telehealth-service/internal/pkg/dto/responses"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

type HealthSessionController struct {
	Log                  *zap.Logger
	BookingUsecase       contracts.BookingUsecase
	HealthSessionUsecase contracts.HealthSessionUsecase
	Timeout              time.Duration
}

func NewHealthSessionController(
	logger *zap.Logger,
	bookingUsecase contracts.BookingUsecase,
	healthSessionUsecase contracts.HealthSessionUsecase,
	internalConfig *config.InternalConfig,
) *HealthSessionController {
	timeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &HealthSessionController{
		Log:                  logger,
		BookingUsecase:       bookingUsecase,
		HealthSessionUsecase: healthSessionUsecase,
		Timeout:              timeout,
	}
}

func (ctrl *HealthSessionController) BookSession(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())

	request := new(requests.BookSessionRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("HealthSessionController.BookSession error parsing request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	transaction, err := ctrl.BookingUsecase.BookSession(ctx, request, utils.GetMemberID(r.Context()))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ResponseSuccessSessionBooked, responses.BookSessionResponse{
		SessionReference:     transaction.SessionReference,
		TransactionReference: transaction.Reference,
		GroupReference:       transaction.GroupReference,
		Gateway:              string(transaction.Gateway),
		Amount:               transaction.Amount,
		Currency:             transaction.Currency,
		Status:               string(transaction.Status),
	})
}

func (ctrl *HealthSessionController) CancelSession(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, constvars.URLParamReference)

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.Timeout)
	defer cancel()

	session, err := ctrl.HealthSessionUsecase.CancelSession(ctx, reference, utils.GetMemberID(r.Context()))
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ResponseSuccessSessionCanceled, responses.CancelSessionResponse{
		Reference: session.Reference,
		Status:    string(session.Status),
	})
}
