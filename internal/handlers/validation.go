package handlers

import (
	"log/slog"
	"sync"

	"github.com/ThibautWa/grigou-sub000/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom tags used by the request DTOs to gin's
// binding engine. Safe to call from every route registration.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			slog.Warn("gin binding engine is not go-playground/validator, custom tags unavailable")
			return
		}
		if err := v.RegisterValidation("isodate", isoDate); err != nil {
			slog.Error("Failed to register isodate validator", slog.String("error", err.Error()))
		}
		if err := v.RegisterValidation("recurrence", recurrenceType); err != nil {
			slog.Error("Failed to register recurrence validator", slog.String("error", err.Error()))
		}
	})
}

// isoDate accepts YYYY-MM-DD. The empty string passes so optional fields
// can be cleared.
func isoDate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := domain.ParseDate(s)
	return err == nil
}

func recurrenceType(fl validator.FieldLevel) bool {
	return domain.RecurrenceType(fl.Field().String()).IsValid()
}
