package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lost-and-found/internal/model"
	"lost-and-found/pkg/apierror"
)

func writeSuccess(w http.ResponseWriter, status int, data any, meta *model.Meta) {
	writeEnvelope(w, status, model.APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// writeMessage is used by mutating endpoints; the message is the toast text shown to the user.
func writeMessage(w http.ResponseWriter, status int, message string, data any) {
	writeEnvelope(w, status, model.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, body model.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Checked in order; the first match wins. Aggregate failures wrap their cause, so they
// must stay ahead of the per-entity sentinels.
var errorMappings = []errorMapping{
	{model.ErrPartialFailure, http.StatusInternalServerError, "PARTIAL_FAILURE", "Claim approved but the item could not be marked as claimed"},
	{model.ErrBulkFailed, http.StatusInternalServerError, "BULK_FAILED", "Failed to update items"},
	{model.ErrItemNotFound, http.StatusNotFound, "NOT_FOUND", "Item not found"},
	{model.ErrClaimNotFound, http.StatusNotFound, "NOT_FOUND", "Claim not found"},
	{model.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND", "User not found"},
	{model.ErrClaimNotPending, http.StatusConflict, "CLAIM_NOT_PENDING", "This claim has already been reviewed"},
	{model.ErrDuplicateClaim, http.StatusConflict, "DUPLICATE_CLAIM", "You already have a pending claim for this item"},
	{model.ErrItemAlreadyClaimed, http.StatusConflict, "ITEM_ALREADY_CLAIMED", "This item has already been claimed"},
	{model.ErrUserAlreadyExists, http.StatusConflict, "ALREADY_EXISTS", "User already exists"},
	{model.ErrTokenNotFound, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token"},
	{model.ErrTokenExpired, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token"},
	{model.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required"},
	{model.ErrForbidden, http.StatusForbidden, "FORBIDDEN", "Access denied"},
	{model.ErrConfirmationRequired, http.StatusPreconditionRequired, "CONFIRMATION_REQUIRED", "Please confirm this action"},
	{model.ErrInvalidInput, http.StatusBadRequest, "BAD_REQUEST", "Invalid input"},
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := &model.APIError{
		Code:    "INTERNAL_ERROR",
		Message: "Something went wrong. Please try again.",
	}

	if apiErr, ok := apierror.As(err); ok {
		status = apiErr.HTTPStatus
		body.Code = apiErr.Code
		body.Message = apiErr.Message
		body.Details = apiErr.Details
	} else if m, ok := matchError(err); ok {
		status = m.status
		body.Code = m.code
		body.Message = m.message
		if status == http.StatusBadRequest {
			body.Details = err.Error()
		}
	} else {
		// Log unclassified errors so they are visible in container logs.
		slog.Error("unhandled error in writeError", "error", err.Error())
	}

	if status >= http.StatusInternalServerError && body.Code != "INTERNAL_ERROR" {
		slog.Error("request failed", "code", body.Code, "error", err)
	}

	writeEnvelope(w, status, model.APIResponse{
		Success: false,
		Error:   body,
	})
}

func matchError(err error) (errorMapping, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m, true
		}
	}
	return errorMapping{}, false
}

func badRequest(w http.ResponseWriter, message string, details string) {
	writeError(w, apierror.BadRequest(message, details))
}
