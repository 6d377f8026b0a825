package screening

type Gender string

const (
	GenderFemale Gender = "Female"
	GenderMale   Gender = "Male"
)

type Condition string

const (
	Vertigo  Condition = "Vertigo"
	Migraine Condition = "Migraine"
	PPPD     Condition = "PPPD"
)

// Conditions returns the fixed output order of the classifier.
func Conditions() []Condition {
	return []Condition{Vertigo, Migraine, PPPD}
}

// RawIdentity is identity input as captured, before validation.
type RawIdentity struct {
	FirstName string
	Surname   string
	Age       *int
	Gender    string
}

// PatientIdentity is validated identity for a single submission. It is never
// persisted, logged or published.
type PatientIdentity struct {
	FirstName string
	Surname   string
	Age       int
	Gender    Gender
}

// RawSymptoms holds slider values; nil means the slider was left at its minimum.
type RawSymptoms struct {
	Duration    *float64
	Frequency   *float64
	Intensity   *float64
	Nausea      *float64
	Vomiting    *float64
	Dizziness   *float64
	Headache    *float64
	Photophobia *float64
	Phonophobia *float64
	Visual      *float64
	Sensory     *float64
}

// Symptoms holds range-checked symptom values.
type Symptoms struct {
	Duration    float64
	Frequency   float64
	Intensity   float64
	Nausea      float64
	Vomiting    float64
	Dizziness   float64
	Headache    float64
	Photophobia float64
	Phonophobia float64
	Visual      float64
	Sensory     float64
}

// Submission is one form submission entering the pipeline.
type Submission struct {
	Identity RawIdentity
	Symptoms RawSymptoms
}

const (
	WarningInvalidName = "invalid_name"
	WarningClamped     = "clamped"
	WarningUnscaled    = "unscaled_features"
)

type Warning struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
