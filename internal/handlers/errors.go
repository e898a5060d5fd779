package handlers

import (
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"seatwell/internal/status"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

// apiError maps a service error to the API error returned to the client.
// resource names the entity for 404 messages; action describes the request
// in the generic 500 message, and the cause is only logged.
func apiError(logger *slog.Logger, err error, resource, action string) error {
	switch {
	case errors.Is(err, status.ErrNotFound):
		return apis.NewNotFoundError(resource+" not found", nil)
	case errors.Is(err, status.ErrInvalidCredentials):
		return apis.NewUnauthorizedError("Invalid credentials", nil)
	case errors.Is(err, status.ErrTicketNotAvailable):
		return apis.NewBadRequestError("Ticket is not available", nil)
	case errors.Is(err, status.ErrTicketHeld):
		return apis.NewBadRequestError("Ticket is held by another buyer", nil)
	case errors.Is(err, status.ErrNotHolder):
		return apis.NewBadRequestError("Ticket is held by another buyer", nil)
	case errors.Is(err, status.ErrUnknownGame):
		return apis.NewBadRequestError("Game does not exist", nil)
	case errors.Is(err, status.ErrDuplicateUser):
		return apis.NewBadRequestError("Username or email already registered", nil)
	case errors.Is(err, status.ErrHoldsDisabled):
		return apis.NewApiError(http.StatusServiceUnavailable, "Ticket holds are not available", nil)
	}

	logger.Error(action, "error", err)
	return apis.NewInternalServerError(action, nil)
}

// pathID parses a positive integer path parameter.
func pathID(e *core.RequestEvent, name string) (int, bool) {
	id, err := strconv.Atoi(e.Request.PathValue(name))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

type validatable interface {
	Validate() error
}

// bindAndValidate decodes the JSON body into dst and validates it. A body
// sent as anything but JSON is a 415; msg is the 400 message for a body that
// does not decode or validate.
func bindAndValidate(e *core.RequestEvent, dst validatable, msg string) error {
	if e.Request.ContentLength != 0 && !isJSON(e.Request.Header.Get("Content-Type")) {
		return apis.NewApiError(http.StatusUnsupportedMediaType, "Content-Type must be application/json", nil)
	}
	if err := e.BindBody(dst); err != nil {
		return apis.NewBadRequestError("Malformed JSON body", err)
	}
	if err := dst.Validate(); err != nil {
		return apis.NewBadRequestError(msg, err)
	}
	return nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
