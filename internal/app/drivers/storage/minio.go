package storage

import (
	"context"
	"fmt"
	"log"

	"telehealth-service/internal/app/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

func NewMinio(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *minio.Client {
	endPoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endPoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio Client: %s", err.Error())
	}

	if internalConfig.WebhookArchive.Enabled {
		ctx := context.Background()
		bucket := internalConfig.WebhookArchive.BucketName
		exists, err := minioClient.BucketExists(ctx, bucket)
		if err != nil {
			log.Fatalf("Failed to check minio bucket %s: %s", bucket, err.Error())
		}
		if !exists {
			if err := minioClient.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				log.Fatalf("Failed to create minio bucket %s: %s", bucket, err.Error())
			}
		}
	}

	log.Println("Successfully connected to minio")
	return minioClient
}
