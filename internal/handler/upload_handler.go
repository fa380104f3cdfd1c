package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lost-and-found/internal/service"
	"lost-and-found/pkg/apierror"
)

// Room for multipart boundaries and part headers on top of the image itself.
const multipartOverhead = 64 << 10

type UploadHandler struct {
	service *service.UploadService
}

func NewUploadHandler(service *service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Upload stores the multipart "file" part as a resized JPEG and returns its public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.service.MaxSize()+multipartOverhead)
	defer r.Body.Close()

	reader, err := r.MultipartReader()
	if err != nil {
		badRequest(w, "invalid multipart body", "")
		return
	}

	folder := strings.TrimSpace(r.URL.Query().Get("folder"))

	for {
		part, nextErr := reader.NextPart()
		if nextErr == io.EOF {
			break
		}
		if nextErr != nil {
			if isPayloadTooLarge(nextErr) {
				writeError(w, payloadTooLarge(h.service.MaxSize()))
				return
			}
			badRequest(w, "invalid multipart stream", nextErr.Error())
			return
		}

		if part.FormName() != "file" || strings.TrimSpace(part.FileName()) == "" {
			_ = part.Close()
			continue
		}

		uploaded, uploadErr := h.service.Upload(r.Context(), folder, part.FileName(), part.Header.Get("Content-Type"), -1, part)
		_ = part.Close()
		if uploadErr != nil {
			if isPayloadTooLarge(uploadErr) {
				uploadErr = payloadTooLarge(h.service.MaxSize())
			}
			writeError(w, uploadErr)
			return
		}

		writeMessage(w, http.StatusCreated, "Image uploaded", uploaded)
		return
	}

	badRequest(w, "form field 'file' is required", "file")
}

func isPayloadTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "request body too large")
}

func payloadTooLarge(limit int64) error {
	return apierror.New("FILE_TOO_LARGE", "image exceeds the upload size limit", fmt.Sprintf("max %d bytes", limit), http.StatusRequestEntityTooLarge)
}
