package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"lost-and-found/internal/imaging"
	"lost-and-found/internal/model"
	"lost-and-found/internal/storage"
	"lost-and-found/internal/util"
	"lost-and-found/pkg/apierror"
)

const (
	FolderItems  = "items"
	FolderClaims = "claims"
)

// UploadService turns client photos into bounded JPEGs in the image store.
type UploadService struct {
	store   storage.ImageStore
	maxSize int64
	maxDim  int
	newID   func() string
}

func NewUploadService(store storage.ImageStore, maxSize int64, maxDim int) *UploadService {
	return &UploadService{
		store:   store,
		maxSize: maxSize,
		maxDim:  maxDim,
		newID:   uuid.NewString,
	}
}

func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// Upload checks the declared type and size before reading the body, then
// sniffs and re-encodes the bytes. size may be -1 when unknown.
func (s *UploadService) Upload(ctx context.Context, folder string, filename string, declaredType string, size int64, r io.Reader) (model.UploadData, error) {
	if folder == "" {
		folder = FolderItems
	}
	if folder != FolderItems && folder != FolderClaims {
		return model.UploadData{}, apierror.New("INVALID_FOLDER", "folder must be items or claims", folder, http.StatusBadRequest)
	}

	if !util.DeclaredImage(declaredType, filename) {
		return model.UploadData{}, apierror.New("UNSUPPORTED_TYPE", "only image uploads are allowed", declaredType, http.StatusUnsupportedMediaType)
	}

	if size > s.maxSize {
		return model.UploadData{}, tooLarge(s.maxSize)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return model.UploadData{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return model.UploadData{}, tooLarge(s.maxSize)
	}

	sniffed := http.DetectContentType(data)
	result, err := imaging.Process(data, s.maxDim)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			return model.UploadData{}, apierror.New("UNSUPPORTED_TYPE", "file content is not a supported image", sniffed, http.StatusUnsupportedMediaType)
		}
		return model.UploadData{}, apierror.Wrap(err, "INVALID_IMAGE", "image could not be decoded", http.StatusUnprocessableEntity)
	}

	key := fmt.Sprintf("%s/%s-%s.jpg", folder, util.SlugStem(filename), s.newID())
	url, err := s.store.Put(ctx, key, result.Data, result.MIME)
	if err != nil {
		return model.UploadData{}, fmt.Errorf("store image %s: %w", key, err)
	}

	uploadBytes.Observe(float64(len(result.Data)))
	slog.Info("image uploaded",
		"key", key,
		"source_format", result.SourceFormat,
		"original_bytes", len(data),
		"stored_bytes", len(result.Data),
		"width", result.Width,
		"height", result.Height,
	)

	return model.UploadData{
		URL:         url,
		Key:         key,
		ContentType: result.MIME,
		Size:        len(result.Data),
	}, nil
}

func tooLarge(limit int64) *apierror.APIError {
	return apierror.New("FILE_TOO_LARGE", "image exceeds the upload size limit", fmt.Sprintf("max %d bytes", limit), http.StatusRequestEntityTooLarge)
}
