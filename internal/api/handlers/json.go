package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeAndValidate parses the request body into dst and runs struct
// validation. The returned field map feeds the problem response so clients
// see which fields failed and why.
func decodeAndValidate(r *http.Request, dst any) (map[string]interface{}, error) {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make(map[string]interface{}, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields[fieldErr.Field()] = fieldErr.Tag()
			}
			return fields, fmt.Errorf("validation failed")
		}
		return nil, err
	}
	return nil, nil
}

// outcome mirrors the success envelope mutation endpoints return.
type outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
