// Package validation checks the shape of user requests before they reach the database.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/GoUserAdmin/GoUserAdmin/internal/dto"
)

var (
	once     sync.Once           //nolint:gochecknoglobals
	validate *validator.Validate //nolint:gochecknoglobals
	trans    ut.Translator       //nolint:gochecknoglobals
)

func engine() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// report json names, e.g. "displayName" instead of "DisplayName"
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0] //nolint:mnd
			if name == "-" {
				return ""
			}

			return name
		})

		enLocale := en.New()
		trans, _ = ut.New(enLocale, enLocale).GetTranslator("en")

		if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
			panic("validation: register translations: " + err.Error())
		}
	})

	return validate, trans
}

// Create validates a create request. The request is not modified; text fields are
// checked after trimming, the same way they are stored.
func Create(req dto.CreateUserRequest) []dto.FieldError {
	req.Email = strings.TrimSpace(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)

	return check(&req)
}

// Update validates an update request. Absent fields are not checked.
func Update(req dto.UpdateUserRequest) []dto.FieldError {
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		req.Email = &trimmed
	}

	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		req.DisplayName = &trimmed
	}

	return check(&req)
}

func check(s any) []dto.FieldError {
	v, t := engine()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []dto.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, dto.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(t),
		})
	}

	return out
}
