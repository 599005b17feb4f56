// Package handler contains the HTTP handlers for every collection the
// tracker exposes. Handlers bind and validate request bodies, call
// repositories or services, and translate sentinel errors into JSON
// error responses.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validator adapts go-playground/validator to Echo's Validator
// interface so handlers can call c.Validate on bound request structs.
type Validator struct {
	validate *validator.Validate
}

// NewValidator constructs the validator used by every handler.
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator. Struct tag violations come back
// as a 400-level HTTP error carrying the validator's message.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// parseID parses the :id path parameter into a numeric key.
func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

// missingParam builds the 400 response body used by every filter
// endpoint when its required query parameter is absent, e.g.
// {"error": "Team parameter is required"}.
func missingParam(name string) map[string]string {
	return map[string]string{"error": name + " parameter is required"}
}
