package dto

import (
	"github.com/go-playground/validator/v10"

	"tennis-rally-api/internal/domain"
)

// RegisterValidators adds the domain enum tags used by binding rules
func RegisterValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"event_type": func(fl validator.FieldLevel) bool {
			return domain.EventType(fl.Field().String()).IsValid()
		},
		"recommended_level": func(fl validator.FieldLevel) bool {
			return domain.RecommendedLevel(fl.Field().String()).IsValid()
		},
		"skill_level": func(fl validator.FieldLevel) bool {
			return domain.SkillLevel(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
