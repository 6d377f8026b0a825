package screening

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	DefaultAge = 35
	MinAge     = 1
	MaxAge     = 120
)

var (
	namePattern = regexp.MustCompile(`^[A-Za-z ]*$`)

	errInvalidGender = errors.New("invalid gender")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ValidName reports whether name holds only Latin letters and spaces. The empty
// string is valid.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// CaptureIdentity validates raw identity input. Invalid names are blanked with a
// warning rather than rejected; age is defaulted and clamped. Only an unknown gender
// is an error.
func CaptureIdentity(raw RawIdentity) (PatientIdentity, []Warning, error) {
	var warnings []Warning
	identity := PatientIdentity{
		FirstName: raw.FirstName,
		Surname:   raw.Surname,
		Age:       DefaultAge,
	}

	if !ValidName(identity.FirstName) {
		identity.FirstName = ""
		warnings = append(warnings, Warning{Field: "first_name", Code: WarningInvalidName, Message: "Name must contain only alphabets."})
	}
	if !ValidName(identity.Surname) {
		identity.Surname = ""
		warnings = append(warnings, Warning{Field: "surname", Code: WarningInvalidName, Message: "Surname must contain only alphabets."})
	}

	if raw.Age != nil {
		identity.Age = *raw.Age
		if identity.Age < MinAge || identity.Age > MaxAge {
			identity.Age = clampInt(identity.Age, MinAge, MaxAge)
			warnings = append(warnings, Warning{
				Field:   "age",
				Code:    WarningClamped,
				Message: fmt.Sprintf("Age must be between %d and %d; using %d.", MinAge, MaxAge, identity.Age),
			})
		}
	}

	gender, err := ParseGender(raw.Gender)
	if err != nil {
		return PatientIdentity{}, nil, err
	}
	identity.Gender = gender

	return identity, warnings, nil
}

// ParseGender accepts the two choices case-insensitively; empty selects Female, the
// first choice of the input control.
func ParseGender(value string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "female":
		return GenderFemale, nil
	case "male":
		return GenderMale, nil
	default:
		return "", ValidationError{reason: fmt.Errorf("gender %q must be Female or Male: %w", value, errInvalidGender)}
	}
}

type symptomRange struct {
	field string
	label string
	min   float64
	max   float64
}

var (
	rangeDuration  = symptomRange{field: "duration", label: "Duration", min: 0, max: 10}
	rangeFrequency = symptomRange{field: "frequency", label: "Frequency", min: 1, max: 10}
	rangeIntensity = symptomRange{field: "intensity", label: "Intensity", min: 0, max: 10}
)

func unitRange(field, label string) symptomRange {
	return symptomRange{field: field, label: label, min: 0, max: 1}
}

// CaptureSymptoms defaults missing sliders to their minimum and clamps values that
// fall outside a slider's range.
func CaptureSymptoms(raw RawSymptoms) (Symptoms, []Warning) {
	var warnings []Warning
	capture := func(value *float64, r symptomRange) float64 {
		if value == nil {
			return r.min
		}
		v := *value
		switch {
		case math.IsNaN(v):
			v = r.min
		case v < r.min:
			v = r.min
		case v > r.max:
			v = r.max
		default:
			return v
		}
		warnings = append(warnings, Warning{
			Field:   r.field,
			Code:    WarningClamped,
			Message: fmt.Sprintf("%s must be between %g and %g; using %g.", r.label, r.min, r.max, v),
		})
		return v
	}

	return Symptoms{
		Duration:    capture(raw.Duration, rangeDuration),
		Frequency:   capture(raw.Frequency, rangeFrequency),
		Intensity:   capture(raw.Intensity, rangeIntensity),
		Nausea:      capture(raw.Nausea, unitRange("nausea", "Nausea")),
		Vomiting:    capture(raw.Vomiting, unitRange("vomiting", "Vomiting")),
		Dizziness:   capture(raw.Dizziness, unitRange("dizziness", "Dizziness")),
		Headache:    capture(raw.Headache, unitRange("headache", "Headache")),
		Photophobia: capture(raw.Photophobia, unitRange("photophobia", "Photophobia")),
		Phonophobia: capture(raw.Phonophobia, unitRange("phonophobia", "Phonophobia")),
		Visual:      capture(raw.Visual, unitRange("visual", "Visual")),
		Sensory:     capture(raw.Sensory, unitRange("sensory", "Sensory")),
	}, warnings
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
