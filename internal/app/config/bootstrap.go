package config

import (
	"context"
	"log"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
	"github.com/minio/minio-go/v7"
	"github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Bootstrap struct {
	Router         *chi.Mux
	Postgres       *sqlx.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	RabbitMQ       *amqp091.Connection
	Minio          *minio.Client
	InternalConfig *InternalConfig
	DriverConfig   *DriverConfig
	// MeetingWorkerStop stops the meeting queue worker during Shutdown
	MeetingWorkerStop func()
	// RetryWorkerStop stops the reconciliation retry server during Shutdown
	RetryWorkerStop func()
}

func (b *Bootstrap) Shutdown(ctx context.Context) error {
	if b.MeetingWorkerStop != nil {
		b.MeetingWorkerStop()
		log.Println("Successfully stopped meeting worker")
	}

	if b.RetryWorkerStop != nil {
		b.RetryWorkerStop()
		log.Println("Successfully stopped reconciliation retry worker")
	}

	err := b.Postgres.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Postgres")

	err = b.Redis.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing Redis")

	err = b.RabbitMQ.Close()
	if err != nil {
		return err
	}
	log.Println("Successfully closing RabbitMQ")

	// zap returns an error syncing stdout on some platforms
	_ = b.Logger.Sync()
	log.Println("Successfully closing Logger")

	return nil
}
