package meetings

import (
	"context"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultWorkerInterval  = 30 * time.Second
	defaultCalendarTimeout = 20 * time.Second
	defaultThrottleRetry   = 5
)

// Worker periodically drains the meeting queue with at-least-once semantics.
// Only one instance across the deployment drains per tick.
type Worker struct {
	log             *zap.Logger
	locker          contracts.LockerService
	queue           contracts.MeetingQueueService
	provisioner     contracts.MeetingProvisioner
	recovery        contracts.MeetingRecovery
	interval        time.Duration
	lockTTL         time.Duration
	calendarTimeout time.Duration
	batchSize       int
	throttleRetry   int
	stop            chan struct{}
}

// NewWorker builds the meeting worker. recovery may be nil, in which case the
// worker only drains the queue.
func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, queue contracts.MeetingQueueService, provisioner contracts.MeetingProvisioner, recovery contracts.MeetingRecovery) *Worker {
	queueCfg := cfg.MeetingQueue

	interval := time.Duration(queueCfg.WorkerIntervalInSeconds) * time.Second
	if interval <= 0 {
		interval = defaultWorkerInterval
	}
	lockTTL := time.Duration(queueCfg.LockTTLInSeconds) * time.Second
	if lockTTL <= 0 {
		lockTTL = interval
	}
	calendarTimeout := time.Duration(queueCfg.CalendarTimeoutInSeconds) * time.Second
	if calendarTimeout <= 0 {
		calendarTimeout = defaultCalendarTimeout
	}
	batchSize := queueCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1
	}
	throttleRetry := queueCfg.ThrottleRetry
	if throttleRetry <= 0 {
		throttleRetry = defaultThrottleRetry
	}

	return &Worker{
		log:             log,
		locker:          lockerSvc,
		queue:           queue,
		provisioner:     provisioner,
		recovery:        recovery,
		interval:        interval,
		lockTTL:         lockTTL,
		calendarTimeout: calendarTimeout,
		batchSize:       batchSize,
		throttleRetry:   throttleRetry,
		stop:            make(chan struct{}),
	}
}

// Start begins the ticker loop. It returns a stop function to halt execution.
func (w *Worker) Start(ctx context.Context) (stop func()) {
	ticker := time.NewTicker(w.interval)

	w.log.Info("meeting worker started", zap.Duration(constvars.LoggingDurationKey, w.interval))

	go func() {
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-w.stop:
				ticker.Stop()
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()

	return func() {
		close(w.stop)
	}
}

// RunOnce re-publishes lost create intents and then drains up to one batch,
// all while holding the worker lock.
func (w *Worker) RunOnce(ctx context.Context) {
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, utils.GenerateRequestID())
	requestID := utils.GetRequestID(ctx)

	acquired, lockValue, err := w.locker.TryLock(ctx, constvars.RedisMeetingWorkerLockKey, w.lockTTL)
	if err != nil {
		w.log.Warn("meeting worker lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Debug("meeting worker lock not acquired; another instance is running",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer func() {
		if err := w.locker.Unlock(ctx, constvars.RedisMeetingWorkerLockKey, lockValue); err != nil {
			w.log.Error("meeting worker unlock failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}()

	if w.recovery != nil {
		if _, err := w.recovery.RecoverMissingMeetings(ctx); err != nil {
			w.log.Warn("meeting worker recovery sweep failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}

	items, err := w.queue.FetchN(ctx, w.batchSize)
	if err != nil {
		w.log.Error("meeting worker fetch failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}

	for _, item := range items {
		w.processItem(ctx, item)
		if err := w.locker.Refresh(ctx, constvars.RedisMeetingWorkerLockKey, lockValue, w.lockTTL); err != nil {
			w.log.Warn("meeting worker lock refresh failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
		}
	}
}

func (w *Worker) processItem(ctx context.Context, item models.QueuedMeetingIntent) {
	requestID := utils.GetRequestID(ctx)
	intent := item.Intent

	provisionCtx, cancel := context.WithTimeout(ctx, w.calendarTimeout)
	err := w.provisioner.Provision(provisionCtx, &intent)
	cancel()

	if err == nil {
		if ackErr := w.queue.AckMessage(ctx, item.DeliveryTag); ackErr != nil {
			w.log.Error("meeting worker ack failed after success",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(ackErr),
			)
		}
		return
	}

	intent.FailedCount++
	if !exceptions.IsRetryable(err) || intent.FailedCount >= w.throttleRetry {
		if dlqErr := w.queue.EnqueueToDeadQueue(ctx, &intent); dlqErr != nil {
			w.log.Error("meeting worker enqueue to DLQ failed",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(dlqErr),
			)
			return
		}
		_ = w.queue.AckMessage(ctx, item.DeliveryTag)
		w.log.Error("meeting intent moved to DLQ",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationKey, string(intent.Kind)),
			zap.Int(constvars.LoggingFailedCountKey, intent.FailedCount),
			zap.Error(err),
		)
		return
	}

	if reErr := w.queue.Reenqueue(ctx, &intent); reErr != nil {
		w.log.Error("meeting worker reenqueue failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(reErr),
		)
		return
	}
	_ = w.queue.AckMessage(ctx, item.DeliveryTag)
	w.log.Warn("meeting intent failed; incremented failed count and requeued",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationKey, string(intent.Kind)),
		zap.Int(constvars.LoggingFailedCountKey, intent.FailedCount),
		zap.Error(err),
	)
}
