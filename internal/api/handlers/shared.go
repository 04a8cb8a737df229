package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ndewijer/portfolio-tracker/internal/api/middleware"
	"github.com/ndewijer/portfolio-tracker/internal/api/response"
	"github.com/ndewijer/portfolio-tracker/internal/apperrors"
)

const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T. Unknown fields are rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, fmt.Errorf("request body is empty")
		}
		return v, err
	}
	return v, nil
}

// requireUser returns the authenticated user id, or writes 401 and returns false.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.RespondError(w, http.StatusUnauthorized, apperrors.ErrUnauthorized.Error(), "no authenticated user")
		return "", false
	}
	return userID, true
}
