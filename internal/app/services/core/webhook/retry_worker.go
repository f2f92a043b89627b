package webhook

import (
	"context"
	"fmt"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/services/shared/reconciliationqueue"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const defaultRetryConcurrency = 5

// RetryWorker replays reconciliations that were left inconclusive. asynq
// owns the backoff; a handler error means "try again", SkipRetry means the
// outcome is final.
type RetryWorker struct {
	log                   *zap.Logger
	server                *asynq.Server
	transactionReconciler contracts.TransactionReconciler
	withdrawalReconciler  contracts.WithdrawalReconciler
}

func NewRetryWorker(
	log *zap.Logger,
	cfg *config.InternalConfig,
	redisOpt asynq.RedisConnOpt,
	transactionReconciler contracts.TransactionReconciler,
	withdrawalReconciler contracts.WithdrawalReconciler,
) *RetryWorker {
	concurrency := cfg.Reconciliation.Concurrency
	if concurrency <= 0 {
		concurrency = defaultRetryConcurrency
	}
	queueName := cfg.Reconciliation.QueueName
	if queueName == "" {
		queueName = "reconciliation"
	}

	w := &RetryWorker{
		log:                   log,
		transactionReconciler: transactionReconciler,
		withdrawalReconciler:  withdrawalReconciler,
	}
	w.server = asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:  concurrency,
		Queues:       map[string]int{queueName: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(w.handleError),
	})
	return w
}

func (w *RetryWorker) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(constvars.TaskTypeReconcileCharge, w.HandleReconcileCharge)
	mux.HandleFunc(constvars.TaskTypeReconcileTransfer, w.HandleReconcileTransfer)
	return mux
}

// Start runs the asynq server in the background. It returns a stop function
// that waits for in-flight tasks.
func (w *RetryWorker) Start() (stop func(), err error) {
	if err := w.server.Start(w.Mux()); err != nil {
		return nil, err
	}
	w.log.Info("reconciliation retry worker started")
	return w.server.Shutdown, nil
}

func (w *RetryWorker) HandleReconcileCharge(ctx context.Context, task *asynq.Task) error {
	ctx = withTaskRequestID(ctx)
	validation, err := reconciliationqueue.ParseReconcileChargeTask(task)
	if err != nil {
		w.log.Error("RetryWorker.HandleReconcileCharge invalid payload",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	w.log.Info("RetryWorker.HandleReconcileCharge called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingGroupRefKey, validation.TransactionReference),
	)
	return retryOutcome(w.transactionReconciler.ReconcileCharge(ctx, validation))
}

func (w *RetryWorker) HandleReconcileTransfer(ctx context.Context, task *asynq.Task) error {
	ctx = withTaskRequestID(ctx)
	validation, err := reconciliationqueue.ParseReconcileTransferTask(task)
	if err != nil {
		w.log.Error("RetryWorker.HandleReconcileTransfer invalid payload",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	w.log.Info("RetryWorker.HandleReconcileTransfer called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingWithdrawalRefKey, validation.TransferReference),
	)
	return retryOutcome(w.withdrawalReconciler.ReconcileTransfer(ctx, validation))
}

func (w *RetryWorker) handleError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	fields := []zap.Field{
		zap.String(constvars.LoggingTaskTypeKey, task.Type()),
		zap.Int(constvars.LoggingFailedCountKey, retried),
		zap.Error(err),
	}
	if retried >= maxRetry {
		w.log.Error("reconciliation task exhausted its retries", fields...)
		return
	}
	w.log.Warn("reconciliation task failed, will retry", fields...)
}

func retryOutcome(err error) error {
	if err == nil {
		return nil
	}
	if exceptions.IsRetryable(err) {
		return err
	}
	return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
}

func withTaskRequestID(ctx context.Context) context.Context {
	requestID := utils.GenerateRequestID()
	if taskID, ok := asynq.GetTaskID(ctx); ok {
		requestID = constvars.REQUEST_ID_PREFIX + taskID
	}
	return context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)
}
