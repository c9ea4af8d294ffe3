package validation

import (
	"regexp"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Job types are free-form labels such as "full-time" or "remote"
var jobTypeRegex = regexp.MustCompile(`^[\p{L}0-9][\p{L}0-9 _-]{0,49}$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("future", Future)
	_ = v.RegisterValidation("job_type", JobType)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// Future validates that a time.Time field lies strictly after now
func Future(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return t.After(time.Now())
}

// JobType validates a job type label
func JobType(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return jobTypeRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// most emojis live in the supplementary planes
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}
