package app

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"checkin_syria/internal/domain"
)

// permissive local@domain.tld shape; a placeholder, not a security check
var emailShape = regexp.MustCompile(`\S+@\S+\.\S+`)

// draftInput is the draft flattened together with the room capacity so the
// capacity bound can be expressed as a cross-field rule.
type draftInput struct {
	FirstName string    `json:"firstName" validate:"notblank"`
	LastName  string    `json:"lastName" validate:"notblank"`
	Email     string    `json:"email" validate:"notblank,looseemail"`
	Phone     string    `json:"phone" validate:"notblank"`
	CheckIn   time.Time `json:"checkIn" validate:"required"`
	CheckOut  time.Time `json:"checkOut" validate:"required,gtfield=CheckIn"`
	Guests    int       `json:"guests" validate:"gt=0,ltefield=Capacity"`
	Capacity  int       `json:"-"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("looseemail", func(fl validator.FieldLevel) bool {
		return emailShape.MatchString(fl.Field().String())
	})
	return v
}

var requiredMessages = map[string]string{
	"firstName": "First name is required",
	"lastName":  "Last name is required",
	"email":     "Email is required",
	"phone":     "Phone number is required",
	"checkIn":   "Check-in date is required",
	"checkOut":  "Check-out date is required",
}

// ValidateDraft checks every field of d against room and reports all
// violations at once. It returns nil or domain.ValidationErrors.
func ValidateDraft(d domain.Draft, room domain.Room) error {
	in := draftInput{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		CheckIn:   d.CheckIn.Time,
		CheckOut:  d.CheckOut.Time,
		Guests:    d.Guests,
		Capacity:  room.Capacity,
	}
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	out := domain.ValidationErrors{}
	for _, fe := range ves {
		field := fe.Field()
		switch fe.Tag() {
		case "notblank", "required":
			out[field] = domain.FieldError{Kind: domain.RequiredField, Message: requiredMessages[field]}
		case "looseemail":
			out[field] = domain.FieldError{Kind: domain.InvalidFormat, Message: "Email is invalid"}
		case "gtfield":
			out[field] = domain.FieldError{Kind: domain.InvalidRange, Message: "Check-out date must be after check-in date"}
		case "gt":
			out[field] = domain.FieldError{Kind: domain.OutOfRange, Message: "Number of guests must be at least 1"}
		case "ltefield":
			out[field] = domain.FieldError{Kind: domain.OutOfRange, Message: fmt.Sprintf("Maximum capacity is %d guests", room.Capacity)}
		default:
			out[field] = domain.FieldError{Kind: domain.InvalidFormat, Message: fe.Error()}
		}
	}
	return out
}
