package usecase

import (
	"context"
	"time"

	"github.com/casafinder/listing-service/internal/platform/logger"
)

// PhotoStorage archives photo originals in the service-owned bucket.
type PhotoStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

// SignatureIssuer signs upload parameters the same way the media provider
// does, so clients can upload directly against the provider.
type SignatureIssuer interface {
	Signature(publicID string, version int64) string
}

// PhotoUsecase issues signed upload parameters and archives originals.
type PhotoUsecase struct {
	storage PhotoStorage
	issuer  SignatureIssuer
	logger  *logger.Logger
}

func NewPhotoUsecase(storage PhotoStorage, issuer SignatureIssuer, log *logger.Logger) *PhotoUsecase {
	return &PhotoUsecase{storage: storage, issuer: issuer, logger: log}
}

// SignUpload returns the signature and version a client needs to perform
// a direct signed upload. Version is the issuing timestamp.
func (uc *PhotoUsecase) SignUpload(publicID string) (string, int64) {
	version := time.Now().Unix()
	return uc.issuer.Signature(publicID, version), version
}

// Archive stores a copy of the uploaded photo and returns its URL.
func (uc *PhotoUsecase) Archive(ctx context.Context, fileName string, data []byte) (string, error) {
	url, err := uc.storage.Upload(ctx, fileName, data)
	if err != nil {
		uc.logger.Error("Archive: upload failed", "file_name", fileName, "error", err.Error())
		return "", err
	}
	return url, nil
}
