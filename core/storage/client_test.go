package storage_test

import (
	"context"
	"errors"
	"testing"

	"mods-merger/core/storage"
	"mods-merger/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "mods",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
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

func TestEnsureBucket(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "mods").Return(true, nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), client, "mods", ""))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "mods").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "mods", minio.MakeBucketOptions{Region: "eu"}).Return(nil)

		assert.NoError(t, storage.EnsureBucket(context.Background(), client, "mods", "eu"))
		client.AssertExpectations(t)
	})

	t.Run("CheckFails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "mods").Return(false, errors.New("denied"))

		err := storage.EnsureBucket(context.Background(), client, "mods", "")
		assert.ErrorContains(t, err, "denied")
	})
}

func TestUpload(t *testing.T) {
	client := new(mocks.Client)
	client.On("PutObject", mock.Anything, "mods", "merged/a.mtd", mock.Anything, int64(3), mock.Anything).
		Return(minio.UploadInfo{Key: "merged/a.mtd"}, nil)

	assert.NoError(t, storage.Upload(context.Background(), client, "mods", "merged/a.mtd", []byte("abc")))
	client.AssertExpectations(t)
}

func TestListKeys(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 2)
		ch <- minio.ObjectInfo{Key: "merged/a.mtd"}
		ch <- minio.ObjectInfo{Key: "merged/b.mtd"}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "mods", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		keys, err := storage.ListKeys(context.Background(), client, "mods", "merged/")
		assert.NoError(t, err)
		assert.Equal(t, []string{"merged/a.mtd", "merged/b.mtd"}, keys)
	})

	t.Run("Error", func(t *testing.T) {
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Err: errors.New("denied")}
		close(ch)

		client := new(mocks.Client)
		client.On("ListObjects", mock.Anything, "mods", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		_, err := storage.ListKeys(context.Background(), client, "mods", "merged/")
		assert.ErrorContains(t, err, "denied")
	})
}
