package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"telehealth-service/internal/app/config"
	"telehealth-service/internal/app/contracts"
	"telehealth-service/internal/app/models"
	"telehealth-service/internal/pkg/constvars"
	"telehealth-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// objectPutter is the part of *minio.Client the archive writes through.
type objectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type minioWebhookArchive struct {
	MinioClient objectPutter
	BucketName  string
	now         func() time.Time
}

func NewMinioWebhookArchive(minioClient *minio.Client, internalConfig *config.InternalConfig) contracts.WebhookArchive {
	return newMinioWebhookArchive(minioClient, internalConfig.WebhookArchive.BucketName)
}

func newMinioWebhookArchive(client objectPutter, bucketName string) *minioWebhookArchive {
	return &minioWebhookArchive{
		MinioClient: client,
		BucketName:  bucketName,
		now:         time.Now,
	}
}

// Archive stores the body under webhooks/<gateway>/<yyyy/mm/dd>/<uuid>.json
// and returns the object name.
func (a *minioWebhookArchive) Archive(ctx context.Context, gateway models.PaymentGateway, rawBody []byte) (string, error) {
	directory := strings.ToLower(string(gateway))
	if directory == "" {
		directory = constvars.WebhookArchiveUnknownDir
	}
	objectName := fmt.Sprintf(constvars.WebhookArchiveObjectFormat, directory, a.now().UTC().Format("2006/01/02"), uuid.NewString())

	_, err := a.MinioClient.PutObject(ctx, a.BucketName, objectName, bytes.NewReader(rawBody), int64(len(rawBody)), minio.PutObjectOptions{
		ContentType: constvars.MIMEApplicationJSON,
	})
	if err != nil {
		return "", exceptions.ErrMinioCreateObject(err, a.BucketName)
	}
	return objectName, nil
}
