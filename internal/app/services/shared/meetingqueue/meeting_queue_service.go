package meetingqueue

import (
	"context"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	DefaultQueueName     = "session_meeting_queue"
	DefaultDeadQueueName = "session_meeting_dlq"
)

// publishConfirmation is satisfied by *amqp.DeferredConfirmation.
type publishConfirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// amqpChannel is the subset of a confirm-mode channel the queue uses.
type amqpChannel interface {
	PublishConfirmed(ctx context.Context, queue string, msg amqp.Publishing) (publishConfirmation, error)
	Get(queue string, autoAck bool) (amqp.Delivery, bool, error)
	Ack(tag uint64, multiple bool) error
}

// confirmChannel hands every publish its own deferred confirmation, so a
// confirm abandoned on timeout can never be read by a later publish.
type confirmChannel struct {
	*amqp.Channel
}

func (c confirmChannel) PublishConfirmed(ctx context.Context, queue string, msg amqp.Publishing) (publishConfirmation, error) {
	confirmation, err := c.PublishWithDeferredConfirmWithContext(ctx, "", queue, false, false, msg)
	if err != nil {
		return nil, err
	}
	return confirmation, nil
}

type meetingQueueService struct {
	ch            amqpChannel
	log           *zap.Logger
	queueName     string
	deadQueueName string
}

// NewMeetingQueueService declares the durable meeting queue and its dead
// letter queue, and switches the channel to confirm mode.
func NewMeetingQueueService(conn *amqp.Connection, log *zap.Logger, internalConfig *config.InternalConfig) (contracts.MeetingQueueService, error) {
	cfg := internalConfig.MeetingQueue
	queueName := cfg.QueueName
	if queueName == "" {
		queueName = DefaultQueueName
	}
	deadQueueName := cfg.DeadQueueName
	if deadQueueName == "" {
		deadQueueName = DefaultDeadQueueName
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	for _, name := range []string{queueName, deadQueueName} {
		if _, err := ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		); err != nil {
			return nil, exceptions.ErrRabbitMQDeclareQueue(err, name)
		}
	}

	prefetch := cfg.BatchSize
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}
	if err := ch.Confirm(false); err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	return newMeetingQueueService(confirmChannel{Channel: ch}, log, queueName, deadQueueName), nil
}

func newMeetingQueueService(ch amqpChannel, log *zap.Logger, queueName, deadQueueName string) *meetingQueueService {
	return &meetingQueueService{
		ch:            ch,
		log:           log,
		queueName:     queueName,
		deadQueueName: deadQueueName,
	}
}

func (s *meetingQueueService) Enqueue(ctx context.Context, intent *models.MeetingIntent) error {
	s.log.Info("meetingQueueService.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingOperationKey, string(intent.Kind)),
	)
	return s.publishIntent(ctx, s.queueName, intent)
}

// Reenqueue puts a (possibly modified) intent back at the tail of the queue.
func (s *meetingQueueService) Reenqueue(ctx context.Context, intent *models.MeetingIntent) error {
	s.log.Info("meetingQueueService.Reenqueue called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingFailedCountKey, intent.FailedCount),
	)
	return s.publishIntent(ctx, s.queueName, intent)
}

func (s *meetingQueueService) EnqueueToDeadQueue(ctx context.Context, intent *models.MeetingIntent) error {
	s.log.Info("meetingQueueService.EnqueueToDeadQueue called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingFailedCountKey, intent.FailedCount),
	)
	return s.publishIntent(ctx, s.deadQueueName, intent)
}

// FetchN pulls up to max deliveries without auto-ack. Undecodable bodies are
// moved to the dead letter queue so they cannot loop.
func (s *meetingQueueService) FetchN(ctx context.Context, max int) ([]models.QueuedMeetingIntent, error) {
	if max <= 0 {
		max = 1
	}
	items := make([]models.QueuedMeetingIntent, 0, max)

	for i := 0; i < max; i++ {
		delivery, ok, err := s.ch.Get(s.queueName, false)
		if err != nil {
			return nil, exceptions.ErrRabbitMQConsumeMessage(err, s.queueName)
		}
		if !ok {
			break
		}

		var intent models.MeetingIntent
		if err := json.Unmarshal(delivery.Body, &intent); err != nil {
			s.log.Warn("meetingQueueService.FetchN poison message moved to dead queue",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.String(constvars.LoggingQueueNameKey, s.deadQueueName),
				zap.Error(err),
			)
			if err := s.publish(ctx, s.deadQueueName, delivery.Body); err != nil {
				return nil, err
			}
			if err := s.ch.Ack(delivery.DeliveryTag, false); err != nil {
				return nil, exceptions.ErrRabbitMQAckMessage(err)
			}
			continue
		}
		items = append(items, models.QueuedMeetingIntent{DeliveryTag: delivery.DeliveryTag, Intent: intent})
	}

	s.log.Info("meetingQueueService.FetchN fetched",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.Int(constvars.LoggingCountKey, len(items)),
	)
	return items, nil
}

func (s *meetingQueueService) AckMessage(ctx context.Context, deliveryTag uint64) error {
	if err := s.ch.Ack(deliveryTag, false); err != nil {
		s.log.Error("meetingQueueService.AckMessage error",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQAckMessage(err)
	}
	return nil
}

func (s *meetingQueueService) publishIntent(ctx context.Context, queue string, intent *models.MeetingIntent) error {
	body, err := json.Marshal(intent)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	return s.publish(ctx, queue, body)
}

// publish sends a persistent message and waits for the broker to confirm
// that message.
func (s *meetingQueueService) publish(ctx context.Context, queue string, body []byte) error {
	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	confirmation, err := s.ch.PublishConfirmed(ctx, queue, msg)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, queue)
	}
	if !acked {
		return exceptions.ErrRabbitMQPublishNotAcked(queue)
	}
	return nil
}
