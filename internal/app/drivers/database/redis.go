package database

import (
	"context"
	"fmt"
	"log"

	"telehealth-service/internal/app/config"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     RedisAddress(driverConfig),
		Password: driverConfig.Redis.Password,
		DB:       driverConfig.Redis.DB,
	})

	_, err := rdb.Ping(context.Background()).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}

	log.Println("Successfully connected to redis")
	return rdb
}

func RedisAddress(driverConfig *config.DriverConfig) string {
	return fmt.Sprintf("%s:%s", driverConfig.Redis.Host, driverConfig.Redis.Port)
}
