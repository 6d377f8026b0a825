package screening

// FeatureVector is one patient's inputs in Schema order.
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// GenderValue encodes Female as 0 and Male as 1.
func GenderValue(g Gender) float64 {
	if g == GenderMale {
		return 1.0
	}
	return 0.0
}

// Assemble places identity and symptom values in canonical feature order. Gender is
// the only value that is transformed.
func Assemble(identity PatientIdentity, s Symptoms) FeatureVector {
	var v FeatureVector
	v[FeatureAge] = float64(identity.Age)
	v[FeatureGender] = GenderValue(identity.Gender)
	v[FeatureDuration] = s.Duration
	v[FeatureFrequency] = s.Frequency
	v[FeatureIntensity] = s.Intensity
	v[FeatureNausea] = s.Nausea
	v[FeatureVomiting] = s.Vomiting
	v[FeatureDizziness] = s.Dizziness
	v[FeatureHeadache] = s.Headache
	v[FeaturePhotophobia] = s.Photophobia
	v[FeaturePhonophobia] = s.Phonophobia
	v[FeatureVisual] = s.Visual
	v[FeatureSensory] = s.Sensory
	return v
}
