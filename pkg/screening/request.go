package screening

// RequestWrapper is the JSON body of a screening submission. Omitted symptom fields
// stay at their slider minimum.
type RequestWrapper struct {
	FirstName string          `json:"first_name"`
	Surname   string          `json:"surname"`
	Age       *int            `json:"age,omitempty"`
	Gender    string          `json:"gender"`
	Symptoms  SymptomsRequest `json:"symptoms"`
}

type SymptomsRequest struct {
	Duration    *float64 `json:"duration,omitempty"`
	Frequency   *float64 `json:"frequency,omitempty"`
	Intensity   *float64 `json:"intensity,omitempty"`
	Nausea      *float64 `json:"nausea,omitempty"`
	Vomiting    *float64 `json:"vomiting,omitempty"`
	Dizziness   *float64 `json:"dizziness,omitempty"`
	Headache    *float64 `json:"headache,omitempty"`
	Photophobia *float64 `json:"photophobia,omitempty"`
	Phonophobia *float64 `json:"phonophobia,omitempty"`
	Visual      *float64 `json:"visual,omitempty"`
	Sensory     *float64 `json:"sensory,omitempty"`
}

func (r RequestWrapper) ToSubmission() Submission {
	return Submission{
		Identity: RawIdentity{
			FirstName: r.FirstName,
			Surname:   r.Surname,
			Age:       r.Age,
			Gender:    r.Gender,
		},
		Symptoms: RawSymptoms{
			Duration:    r.Symptoms.Duration,
			Frequency:   r.Symptoms.Frequency,
			Intensity:   r.Symptoms.Intensity,
			Nausea:      r.Symptoms.Nausea,
			Vomiting:    r.Symptoms.Vomiting,
			Dizziness:   r.Symptoms.Dizziness,
			Headache:    r.Symptoms.Headache,
			Photophobia: r.Symptoms.Photophobia,
			Phonophobia: r.Symptoms.Phonophobia,
			Visual:      r.Symptoms.Visual,
			Sensory:     r.Symptoms.Sensory,
		},
	}
}
