package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/excellence-hub/excellence/internal/models"
	"github.com/go-playground/validator/v10"
)

// validate is shared by all handlers.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("account_type", func(fl validator.FieldLevel) bool {
		_, err := models.ParseAccountType(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateRequest checks req against its validate tags. Missing values wrap
// models.ErrEmptyField, anything else wraps models.ErrInvalidInput.
func ValidateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	fe := ve[0]
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Errorf("%w: %s", models.ErrEmptyField, strings.ToLower(fe.Field()))
	default:
		return fmt.Errorf("%w: %s %s", models.ErrInvalidInput, strings.ToLower(fe.Field()), formatValidationError(fe))
	}
}

func formatValidationError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "account_type":
		return "must be one of: student, master, mhs"
	case "max":
		return fmt.Sprintf("must have a maximum of %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

// IdentityRequest is the account selection sent by clients.
type IdentityRequest struct {
	Name        string `json:"name" validate:"notblank,max=128"`
	AccountType string `json:"account_type" validate:"required,account_type"`
	Role        string `json:"role" validate:"omitempty,max=64"`
	SubRole     string `json:"sub_role" validate:"omitempty,max=64"`
}

// Identity converts a validated request into a models.Identity.
func (r IdentityRequest) Identity() models.Identity {
	t, _ := models.ParseAccountType(r.AccountType)
	return models.Identity{
		Name:    strings.TrimSpace(r.Name),
		Type:    t,
		Role:    strings.TrimSpace(r.Role),
		SubRole: strings.TrimSpace(r.SubRole),
	}
}
