package payment_gateway

import (
	"context"
	"io"
	"net/http"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"
	"telehealth-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultRequestTimeout    = 10 * time.Second
	defaultRequestsPerSecond = 10
	defaultBurst             = 5
	maxErrorBodyBytes        = 2048
)

// gatewayHTTPClient performs authenticated, throttled JSON calls against a
// gateway API.
type gatewayHTTPClient struct {
	BaseUrl   string
	SecretKey string
	Client    *http.Client
	Limiter   *rate.Limiter
	Log       *zap.Logger
}

func newGatewayHTTPClient(baseUrl, secretKey string, cfg config.PaymentGateway, logger *zap.Logger) *gatewayHTTPClient {
	timeout := time.Duration(cfg.RequestTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	requestsPerSecond := cfg.RequestsPerSecond
	if requestsPerSecond <= 0 {
		requestsPerSecond = defaultRequestsPerSecond
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	return &gatewayHTTPClient{
		BaseUrl:   baseUrl,
		SecretKey: secretKey,
		Client:    &http.Client{Timeout: timeout},
		Limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		Log:       logger,
	}
}

func (c *gatewayHTTPClient) getJSON(ctx context.Context, operation, url string, out interface{}) error {
	requestID := utils.GetRequestID(ctx)

	if err := c.Limiter.Wait(ctx); err != nil {
		c.Log.Warn(operation+" rate limiter wait aborted",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, url, nil)
	if err != nil {
		c.Log.Error(operation+" error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAuthorization, "Bearer "+c.SecretKey)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	startTime := time.Now()
	resp, err := c.Client.Do(req)
	if err != nil {
		c.Log.Error(operation+" error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	c.Log.Info(operation+" response received",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
		zap.Duration(constvars.LoggingDurationKey, time.Since(startTime)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.Log.Error(operation+" unexpected status code",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.String(constvars.LoggingErrorMessageKey, string(body)),
		)
		return exceptions.ErrUnexpectedHTTPStatus(resp.StatusCode, req.URL.Host)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.Log.Error(operation+" error decoding response",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return exceptions.AsRetryable(exceptions.ErrCannotParseJSON(err))
	}
	return nil
}
