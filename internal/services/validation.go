package services

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/launchpad-drafts/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("draftchain", func(fl validator.FieldLevel) bool {
		return models.IsValidDraftBlockchain(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}
