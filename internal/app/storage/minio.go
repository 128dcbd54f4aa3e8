package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// Время жизни временной ссылки на изображение
const presignTTL = time.Hour

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ContentTypeFor определяет content type изображения по расширению файла
func ContentTypeFor(filename string) string {
	if ct, ok := imageContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// MinIOClient хранит изображения оборудования в бакете MinIO
type MinIOClient struct {
	client     *minio.Client
	bucketName string
}

// NewMinIOClient создает клиент для MinIO
func NewMinIOClient(endpoint, accessKey, secretKey, bucketName string, useSSL bool) (*MinIOClient, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Создаем bucket если не существует
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", bucketName)
	}

	return &MinIOClient{
		client:     client,
		bucketName: bucketName,
	}, nil
}

// objectName генерирует уникальное имя объекта на латинице,
// сохраняя расширение исходного файла
func objectName(originalFilename string) string {
	return fmt.Sprintf("product_%s_%d%s",
		uuid.New().String()[:8],
		time.Now().Unix(),
		filepath.Ext(originalFilename))
}

// UploadFile загружает изображение и возвращает имя объекта в бакете
func (m *MinIOClient) UploadFile(fileData []byte, originalFilename string) (string, error) {
	name := objectName(originalFilename)

	_, err := m.client.PutObject(context.Background(), m.bucketName, name,
		bytes.NewReader(fileData), int64(len(fileData)), minio.PutObjectOptions{
			ContentType: ContentTypeFor(originalFilename),
		})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	logrus.Infof("File %s uploaded successfully", name)
	return name, nil
}

// DeleteFile удаляет изображение из бакета
func (m *MinIOClient) DeleteFile(filename string) error {
	err := m.client.RemoveObject(context.Background(), m.bucketName, filename, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logrus.Infof("File %s deleted successfully", filename)
	return nil
}

// GetFileURL возвращает временную ссылку на изображение
func (m *MinIOClient) GetFileURL(filename string) (string, error) {
	url, err := m.client.PresignedGetObject(context.Background(), m.bucketName, filename, presignTTL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}

// DownloadFile читает изображение из бакета целиком
func (m *MinIOClient) DownloadFile(filename string) ([]byte, error) {
	object, err := m.client.GetObject(context.Background(), m.bucketName, filename, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}
	return data, nil
}

// FileExists проверяет наличие объекта в бакете
func (m *MinIOClient) FileExists(filename string) (bool, error) {
	_, err := m.client.StatObject(context.Background(), m.bucketName, filename, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file: %w", err)
	}
	return true, nil
}
