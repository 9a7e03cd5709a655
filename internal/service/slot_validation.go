package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/podcastsite/backend/internal/domain"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,20}$`)

var validate = newSlotValidator()

func newSlotValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("videoid", func(fl validator.FieldLevel) bool {
		return videoIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateAssignments checks a bulk update before anything is written. Empty
// video ids are normalised to nil in place.
func validateAssignments(assignments []domain.SlotAssignment) error {
	if len(assignments) != domain.SlotCount {
		return domain.NewValidationError("slots",
			fmt.Sprintf("Invalid request: must provide exactly %d slots", domain.SlotCount))
	}

	seen := make(map[int]bool, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		if a.VideoID != nil && *a.VideoID == "" {
			a.VideoID = nil
		}

		if err := validate.Struct(a); err != nil {
			return toValidationError(a, err)
		}

		if seen[a.Position] {
			return domain.NewValidationError("position", fmt.Sprintf("Duplicate position: %d", a.Position))
		}
		seen[a.Position] = true
	}
	return nil
}

func toValidationError(a *domain.SlotAssignment, err error) error {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return domain.NewValidationError("slots", err.Error())
	}

	switch vErrs[0].Field() {
	case "Position":
		return domain.NewValidationError("position", fmt.Sprintf("Invalid position: %d", a.Position))
	default:
		return domain.NewValidationError("videoId", fmt.Sprintf("Invalid videoId for position %d", a.Position))
	}
}
