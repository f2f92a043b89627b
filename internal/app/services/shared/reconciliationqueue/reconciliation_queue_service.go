package reconciliationqueue

import (
	"context"
	"errors"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const (
	defaultQueueName  = "reconciliation"
	defaultRetryDelay = 30 * time.Second
	defaultMaxRetry   = 10
)

// taskEnqueuer is the part of *asynq.Client the queue needs.
type taskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type reconciliationQueueService struct {
	Client     taskEnqueuer
	Log        *zap.Logger
	QueueName  string
	RetryDelay time.Duration
	MaxRetry   int
	UniqueTTL  time.Duration
}

func NewReconciliationQueueService(client taskEnqueuer, logger *zap.Logger, internalConfig *config.InternalConfig) contracts.ReconciliationRetryQueue {
	cfg := internalConfig.Reconciliation
	service := &reconciliationQueueService{
		Client:     client,
		Log:        logger,
		QueueName:  cfg.QueueName,
		RetryDelay: time.Duration(cfg.RetryDelayInSeconds) * time.Second,
		MaxRetry:   cfg.MaxRetry,
	}
	if service.QueueName == "" {
		service.QueueName = defaultQueueName
	}
	if service.RetryDelay <= 0 {
		service.RetryDelay = defaultRetryDelay
	}
	if service.MaxRetry <= 0 {
		service.MaxRetry = defaultMaxRetry
	}
	// redeliveries collapse onto the pending retry while its retries can still run
	service.UniqueTTL = service.RetryDelay * time.Duration(service.MaxRetry+1)
	return service
}

func (s *reconciliationQueueService) ScheduleChargeRetry(ctx context.Context, validation *models.PaymentValidation) error {
	task, err := NewReconcileChargeTask(validation)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.enqueue(ctx, task, validation.TransactionReference)
}

func (s *reconciliationQueueService) ScheduleTransferRetry(ctx context.Context, validation *models.TransferValidation) error {
	task, err := NewReconcileTransferTask(validation)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.enqueue(ctx, task, validation.TransferReference)
}

func (s *reconciliationQueueService) enqueue(ctx context.Context, task *asynq.Task, reference string) error {
	info, err := s.Client.EnqueueContext(ctx, task,
		asynq.Queue(s.QueueName),
		asynq.ProcessIn(s.RetryDelay),
		asynq.MaxRetry(s.MaxRetry),
		asynq.Unique(s.UniqueTTL),
	)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		s.Log.Info("reconciliationQueueService.enqueue retry already pending",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingTaskTypeKey, task.Type()),
			zap.String(constvars.LoggingReferenceKey, reference),
		)
		return nil
	}
	if err != nil {
		s.Log.Error("reconciliationQueueService.enqueue error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingTaskTypeKey, task.Type()),
			zap.String(constvars.LoggingReferenceKey, reference),
			zap.Error(err),
		)
		return exceptions.ErrEnqueueTask(err, task.Type())
	}

	s.Log.Info("reconciliationQueueService.enqueue task scheduled",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingTaskTypeKey, task.Type()),
		zap.String(constvars.LoggingReferenceKey, reference),
		zap.String(constvars.LoggingQueueNameKey, info.Queue),
	)
	return nil
}
