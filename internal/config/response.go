package config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brainboyai/tiny-tutor-api/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		WithContext(context.Background()).WithError(err).Error("Failed to encode response")
	}
}

// Error writes err as {"error": message} with the status of its kind and logs
// it. Client errors are logged at warn level, everything else at error level.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	log := WithContext(r.Context()).WithError(err).WithField("kind", kind.String())
	if kind.Status() >= http.StatusInternalServerError {
		log.Error("Request failed")
	} else {
		log.Warn("Request rejected")
	}
	JSON(w, kind.Status(), map[string]string{"error": apperr.PublicMessage(err)})
}

// DecodeJSON decodes the request body into dst, reporting malformed payloads
// as bad requests.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return ae
		}
		return apperr.New(apperr.KindBadRequest, "invalid request body", err)
	}
	return nil
}
