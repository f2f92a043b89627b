package config

type InternalConfig struct {
	App            App            `mapstructure:"app"`
	JWT            JWT            `mapstructure:"jwt"`
	PaymentGateway PaymentGateway `mapstructure:"payment_gateway"`
	MeetingQueue   MeetingQueue   `mapstructure:"meeting_queue"`
	Reconciliation Reconciliation `mapstructure:"reconciliation"`
	Calendar       Calendar       `mapstructure:"calendar"`
	Banking        Banking        `mapstructure:"banking"`
	WebhookArchive WebhookArchive `mapstructure:"webhook_archive"`
}

type App struct {
	Env                         string `mapstructure:"env"`
	Port                        string `mapstructure:"port"`
	Version                     string `mapstructure:"version"`
	Timezone                    string `mapstructure:"timezone"`
	EndpointPrefix              string `mapstructure:"endpoint_prefix"`
	ShutdownTimeoutInSeconds    int    `mapstructure:"shutdown_timeout_in_seconds"`
	RequestTimeoutInSeconds     int    `mapstructure:"request_timeout_in_seconds"`
	MaxRequests                 int    `mapstructure:"max_requests"`
	MaxTimeRequestsPerSeconds   int    `mapstructure:"max_time_requests_per_seconds"`
	MeetingDurationInMinutes    int    `mapstructure:"meeting_duration_in_minutes"`
	ReferenceGenerationAttempts int    `mapstructure:"reference_generation_attempts"`
	SlotHoldInMinutes           int    `mapstructure:"slot_hold_in_minutes"`
}

type JWT struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

type PaymentGateway struct {
	PaystackBaseUrl         string  `mapstructure:"paystack_base_url"`
	PaystackSecretKey       string  `mapstructure:"paystack_secret_key"`
	FlutterwaveBaseUrl      string  `mapstructure:"flutterwave_base_url"`
	FlutterwaveSecretKey    string  `mapstructure:"flutterwave_secret_key"`
	RequestTimeoutInSeconds int     `mapstructure:"request_timeout_in_seconds"`
	RequestsPerSecond       float64 `mapstructure:"requests_per_second"`
	Burst                   int     `mapstructure:"burst"`
}

type MeetingQueue struct {
	QueueName                string `mapstructure:"queue_name"`
	DeadQueueName            string `mapstructure:"dead_queue_name"`
	WorkerIntervalInSeconds  int    `mapstructure:"worker_interval_in_seconds"`
	BatchSize                int    `mapstructure:"batch_size"`
	ThrottleRetry            int    `mapstructure:"throttle_retry"`
	LockTTLInSeconds         int    `mapstructure:"lock_ttl_in_seconds"`
	CalendarTimeoutInSeconds int    `mapstructure:"calendar_timeout_in_seconds"`
	RecoveryAfterInMinutes   int    `mapstructure:"recovery_after_in_minutes"`
}

type Reconciliation struct {
	QueueName           string `mapstructure:"queue_name"`
	RetryDelayInSeconds int    `mapstructure:"retry_delay_in_seconds"`
	MaxRetry            int    `mapstructure:"max_retry"`
	Concurrency         int    `mapstructure:"concurrency"`
	RedisDB             int    `mapstructure:"redis_db"`
}

type Calendar struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	CalendarID      string `mapstructure:"calendar_id"`
}

type Banking struct {
	CacheTTLInHours int `mapstructure:"cache_ttl_in_hours"`
}

type WebhookArchive struct {
	Enabled    bool   `mapstructure:"enabled"`
	BucketName string `mapstructure:"bucket_name"`
}

type DriverConfig struct {
	Postgres Postgres `mapstructure:"postgres"`
	Redis    Redis    `mapstructure:"redis"`
	RabbitMQ RabbitMQ `mapstructure:"rabbitmq"`
	Minio    Minio    `mapstructure:"minio"`
	Logger   Logger   `mapstructure:"logger"`
}

type Postgres struct {
	Host                     string `mapstructure:"host"`
	Port                     string `mapstructure:"port"`
	Username                 string `mapstructure:"username"`
	Password                 string `mapstructure:"password"`
	DbName                   string `mapstructure:"db_name"`
	SslMode                  string `mapstructure:"ssl_mode"`
	MaxOpenConnections       int    `mapstructure:"max_open_connections"`
	MaxIdleConnections       int    `mapstructure:"max_idle_connections"`
	ConnMaxLifetimeInMinutes int    `mapstructure:"conn_max_lifetime_in_minutes"`
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RabbitMQ struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Minio struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	UseSSL   bool   `mapstructure:"use_ssl"`
}

type Logger struct {
	Level               string `mapstructure:"level"`
	OutputFileName      string `mapstructure:"output_file_name"`
	OutputErrorFileName string `mapstructure:"output_error_file_name"`
}
