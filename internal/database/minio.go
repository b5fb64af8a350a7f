package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// MinIO stocke chaque clé dans un objet JSON du bucket
type MinIO struct {
	client *minio.Client
	bucket string
	prefix string
}

func (c MinIOConfig) validate() error {
	if c.Endpoint == "" {
		return errors.New("MINIO_ENDPOINT non configuré")
	}
	if c.Bucket == "" {
		return errors.New("MINIO_BUCKET non configuré")
	}
	return nil
}

func OpenMinIO(ctx context.Context, cfg MinIOConfig) (*MinIO, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connexion MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("vérification bucket MinIO: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("création bucket MinIO: %w", err)
		}
		log.Println("🪣 Bucket créé :", cfg.Bucket)
	}

	log.Println("✅ Connecté à MinIO :", cfg.Endpoint)
	return &MinIO{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func (m *MinIO) objectName(key string) string {
	return m.prefix + key + ".json"
}

func (m *MinIO) Get(ctx context.Context, key string) (string, bool, error) {
	obj, err := m.client.GetObject(ctx, m.bucket, m.objectName(key), minio.GetObjectOptions{})
	if err != nil {
		return "", false, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

func (m *MinIO) Set(ctx context.Context, key, value string) error {
	_, err := m.client.PutObject(ctx, m.bucket, m.objectName(key), strings.NewReader(value), int64(len(value)),
		minio.PutObjectOptions{ContentType: "application/json"})
	return err
}

func (m *MinIO) Close() error { return nil }
