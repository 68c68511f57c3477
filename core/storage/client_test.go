package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"relation-manager/core/storage"
	"relation-manager/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestReadObject(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		body := io.NopCloser(bytes.NewReader([]byte(`[{"id":"article-1"}]`)))
		client.On("GetObject", mock.Anything, "payloads", "homepage/content.json", mock.Anything).Return(body, nil)

		data, err := storage.ReadObject(context.Background(), client, "payloads", "homepage/content.json")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"article-1"}]`, string(data))
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "payloads", "missing.json", mock.Anything).Return(nil, errors.New("no such key"))

		_, err := storage.ReadObject(context.Background(), client, "payloads", "missing.json")
		assert.ErrorContains(t, err, "no such key")
	})
}

func TestWriteObject(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "payloads", "export.json", mock.Anything, int64(2),
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" }),
	).Return(minio.UploadInfo{}, nil)

	err := storage.WriteObject(context.Background(), client, "payloads", "export.json", []byte("[]"), "application/json")
	require.NoError(t, err)
	client.AssertExpectations(t)
}
