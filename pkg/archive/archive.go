// Package archive uploads rendered report artifacts to Azure Blob Storage.
package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// System stores report artifacts in a blob container.
type System interface {
	// Upload streams an artifact to a blob at the given key with the
	// specified content type, creating the container on first use.
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

type azure struct {
	client    *azblob.Client
	container string
	logger    *slog.Logger

	ensureOnce sync.Once
	ensureErr  error
}

// New creates an archive system from the given configuration.
// It validates the connection string and creates the Azure client but does
// not touch the container until the first upload.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create archive client: %w", err)
	}

	return &azure{
		client:    client,
		container: cfg.ContainerName,
		logger:    logger.With("system", "archive"),
	}, nil
}

func (a *azure) Upload(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := a.ensureContainer(ctx); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	_, err := a.client.UploadStream(ctx, a.container, key, reader, opts)
	if err != nil {
		return fmt.Errorf("upload artifact %s: %w", key, err)
	}

	a.logger.Info("artifact archived", "container", a.container, "key", key)
	return nil
}

func (a *azure) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	blobClient := a.client.
		ServiceClient().
		NewContainerClient(a.container).
		NewBlobClient(key)

	_, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check artifact existence %s: %w", key, err)
	}

	return true, nil
}

func (a *azure) ensureContainer(ctx context.Context) error {
	a.ensureOnce.Do(func() {
		_, err := a.client.CreateContainer(ctx, a.container, nil)
		if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			a.ensureErr = fmt.Errorf("create archive container %s: %w", a.container, err)
			return
		}
		a.logger.Info("archive container ready", "container", a.container)
	})
	return a.ensureErr
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
