package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"telehealth-service/internal/app/models"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPutter struct {
	bucket      string
	object      string
	body        []byte
	contentType string
	err         error
}

func (p *recordingPutter) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	if p.err != nil {
		return minio.UploadInfo{}, p.err
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	p.bucket = bucketName
	p.object = objectName
	p.body = body
	p.contentType = opts.ContentType
	return minio.UploadInfo{Bucket: bucketName, Key: objectName, Size: objectSize}, nil
}

func TestMinioWebhookArchive_Archive(t *testing.T) {
	ctx := context.Background()
	fixedNow := func() time.Time { return time.Date(2026, 2, 3, 23, 30, 0, 0, time.UTC) }

	t.Run("Stores body under gateway and date", func(t *testing.T) {
		putter := &recordingPutter{}
		archive := newMinioWebhookArchive(putter, "webhook-archive")
		archive.now = fixedNow

		objectName, err := archive.Archive(ctx, models.GatewayPaystack, []byte(`{"event":"charge.success"}`))

		require.NoError(t, err)
		assert.Equal(t, objectName, putter.object)
		assert.Regexp(t, `^webhooks/paystack/2026/02/03/[0-9a-f-]{36}\.json$`, objectName)
		assert.Equal(t, "webhook-archive", putter.bucket)
		assert.Equal(t, `{"event":"charge.success"}`, string(putter.body))
		assert.Equal(t, "application/json", putter.contentType)
	})

	t.Run("Unrouted body goes to the unknown folder", func(t *testing.T) {
		putter := &recordingPutter{}
		archive := newMinioWebhookArchive(putter, "webhook-archive")
		archive.now = fixedNow

		objectName, err := archive.Archive(ctx, "", []byte(`garbage`))

		require.NoError(t, err)
		assert.Regexp(t, `^webhooks/unknown/2026/02/03/`, objectName)
	})

	t.Run("Upload failure is reported", func(t *testing.T) {
		archive := newMinioWebhookArchive(&recordingPutter{err: errors.New("access denied")}, "webhook-archive")

		objectName, err := archive.Archive(ctx, models.GatewayFlutterwave, []byte(`{}`))

		assert.Error(t, err)
		assert.Empty(t, objectName)
	})
}
