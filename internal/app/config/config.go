package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func init() {
	godotenv.Load()
}

// newEnvViper binds every default key to an environment variable of the same
// path, e.g. "app.port" is read from APP_PORT.
func newEnvViper(defaults map[string]interface{}) *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return v
}

func NewDriverConfig() *DriverConfig {
	v := newEnvViper(map[string]interface{}{
		"postgres.host":                         "localhost",
		"postgres.port":                         "5432",
		"postgres.username":                     "postgres",
		"postgres.password":                     "postgres",
		"postgres.db_name":                      "telehealth",
		"postgres.ssl_mode":                     "disable",
		"postgres.max_open_connections":         25,
		"postgres.max_idle_connections":         5,
		"postgres.conn_max_lifetime_in_minutes": 30,
		"redis.host":                            "localhost",
		"redis.port":                            "6379",
		"redis.password":                        "",
		"redis.db":                              0,
		"rabbitmq.host":                         "localhost",
		"rabbitmq.port":                         "5672",
		"rabbitmq.username":                     "guest",
		"rabbitmq.password":                     "guest",
		"minio.host":                            "localhost",
		"minio.port":                            "9000",
		"minio.username":                        "minioadmin",
		"minio.password":                        "minioadmin",
		"minio.use_ssl":                         false,
		"logger.level":                          "debug",
		"logger.output_file_name":               "logger.log",
		"logger.output_error_file_name":         "logger_error.log",
	})

	var driverConfig DriverConfig
	if err := v.Unmarshal(&driverConfig); err != nil {
		log.Fatalf("Failed to load driver config: %s", err.Error())
	}
	return &driverConfig
}

func NewInternalConfig() *InternalConfig {
	v := newEnvViper(map[string]interface{}{
		"app.env":                                    "development",
		"app.port":                                   ":8080",
		"app.version":                                "v1",
		"app.timezone":                               "Africa/Lagos",
		"app.endpoint_prefix":                        "api",
		"app.shutdown_timeout_in_seconds":            10,
		"app.request_timeout_in_seconds":             10,
		"app.max_requests":                           100,
		"app.max_time_requests_per_seconds":          60,
		"app.meeting_duration_in_minutes":            60,
		"app.reference_generation_attempts":          5,
		"app.slot_hold_in_minutes":                   30,
		"jwt.secret":                                 "anyjwt",
		"jwt.issuer":                                 "telehealth-service",
		"payment_gateway.paystack_base_url":          "https://api.paystack.co",
		"payment_gateway.paystack_secret_key":        "",
		"payment_gateway.flutterwave_base_url":       "https://api.flutterwave.com/v3",
		"payment_gateway.flutterwave_secret_key":     "",
		"payment_gateway.request_timeout_in_seconds": 5,
		"payment_gateway.requests_per_second":        10,
		"payment_gateway.burst":                      5,
		"meeting_queue.queue_name":                   "session_meeting_queue",
		"meeting_queue.dead_queue_name":              "session_meeting_dead_queue",
		"meeting_queue.worker_interval_in_seconds":   5,
		"meeting_queue.batch_size":                   20,
		"meeting_queue.throttle_retry":               5,
		"meeting_queue.lock_ttl_in_seconds":          60,
		"meeting_queue.calendar_timeout_in_seconds":  15,
		"meeting_queue.recovery_after_in_minutes":    15,
		"reconciliation.queue_name":                  "reconciliation",
		"reconciliation.retry_delay_in_seconds":      60,
		"reconciliation.max_retry":                   10,
		"reconciliation.concurrency":                 5,
		"reconciliation.redis_db":                    1,
		"calendar.credentials_file":                  "credentials.json",
		"calendar.calendar_id":                       "primary",
		"banking.cache_ttl_in_hours":                 12,
		"webhook_archive.enabled":                    true,
		"webhook_archive.bucket_name":                "webhook-archive",
	})

	var internalConfig InternalConfig
	if err := v.Unmarshal(&internalConfig); err != nil {
		log.Fatalf("Failed to load internal config: %s", err.Error())
	}
	return &internalConfig
}
