package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options — параметры подключения к S3-совместимому хранилищу.
type Options struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL — базовый адрес, по которому объекты доступны снаружи (CDN или прокси).
	PublicURL string
}

// Service хранит фотографии в MinIO/S3.
type Service struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// New создаёт новый сервис хранения. Без endpoint используется in-memory хранилище.
func New(opts Options) (Storage, error) {
	if opts.Endpoint == "" {
		return NewMemory(), nil
	}
	cli, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	public := strings.TrimRight(opts.PublicURL, "/")
	if public == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		public = scheme + "://" + opts.Endpoint + "/" + opts.Bucket
	}
	return &Service{client: cli, bucket: opts.Bucket, publicURL: public}, nil
}

// EnsureBucket создаёт бакет, если его ещё нет.
func (s *Service) EnsureBucket(ctx context.Context) error {
	ok, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Upload загружает объект в хранилище.
func (s *Service) Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

// GetURL генерирует временный URL для объекта.
func (s *Service) GetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// PublicURL возвращает постоянный адрес объекта.
func (s *Service) PublicURL(objectName string) string {
	return joinURL(s.publicURL, objectName)
}

// Storage описывает интерфейс сервиса хранения.
type Storage interface {
	Upload(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	GetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	PublicURL(objectName string) string
}

func joinURL(base, objectName string) string {
	parts := strings.Split(objectName, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return base + "/" + strings.Join(parts, "/")
}

var _ Storage = (*Service)(nil)
