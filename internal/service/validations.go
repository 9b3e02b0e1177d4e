package service

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	errorvalues "github.com/Sofya-Khabibulina/HabitTracker/internal/error_values"
	"github.com/Sofya-Khabibulina/HabitTracker/pkg/entity"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

const (
	defaultHabitNameMinLen = 2
	defaultHabitNameMaxLen = 50
)

var (
	habitNameMinLen = defaultHabitNameMinLen
	habitNameMaxLen = defaultHabitNameMaxLen
)

// SetHabitNameBounds overrides the accepted habit-name length range
// (HABIT_NAME_MIN / HABIT_NAME_MAX). Ranges that make no sense are
// ignored. The validators read the bounds on every check, so this works
// before or after InitValidator.
func SetHabitNameBounds(min, max int) {
	if min < 1 || max < min {
		return
	}
	habitNameMinLen = min
	habitNameMaxLen = max
}

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		validate.RegisterValidation("habit_name", func(fl validator.FieldLevel) bool {
			name := strings.TrimSpace(fl.Field().String())
			length := len([]rune(name))
			return length >= habitNameMinLen && length <= habitNameMaxLen
		})
		validate.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
			return entity.Frequency(fl.Field().String()).Valid()
		})
	})
}

// ValidateHabitName applies the same length rule the store enforces on
// creation, for callers that validate step by step.
func ValidateHabitName(name string) error {
	length := len([]rune(strings.TrimSpace(name)))
	if length < habitNameMinLen || length > habitNameMaxLen {
		return errorvalues.ErrInvalidHabitName
	}
	return nil
}

type CreateHabitRequest struct {
	Name      string `validate:"required,habit_name"`
	Frequency string `validate:"required,frequency"`
}
