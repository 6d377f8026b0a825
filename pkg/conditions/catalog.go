package conditions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dizzycheck/platform/pkg/screening"
	"gopkg.in/yaml.v3"
)

// Disclaimer is the catalog default, shared with the screening report.
const Disclaimer = screening.Disclaimer

type Concept struct {
	Display     string `yaml:"display" json:"display"`
	Description string `yaml:"description" json:"description"`
	SNOMED      string `yaml:"snomed" json:"snomed,omitempty"`
	ICD10       string `yaml:"icd10" json:"icd10,omitempty"`
	ICD11       string `yaml:"icd11" json:"icd11,omitempty"`
	Advice      string `yaml:"advice" json:"advice"`
}

type Catalog struct {
	Disclaimer string             `yaml:"disclaimer" json:"disclaimer"`
	Concepts   map[string]Concept `yaml:"concepts" json:"concepts"`
}

// Entry is a catalog concept bound to its condition.
type Entry struct {
	Condition screening.Condition `json:"condition"`
	Concept
}

// Load reads a YAML catalog. An empty path returns DefaultCatalog. Every condition the
// classifier predicts must be present.
func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Catalog{}, err
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, err
	}
	if len(cat.Concepts) == 0 {
		return Catalog{}, fmt.Errorf("condition catalog empty")
	}
	for _, c := range screening.Conditions() {
		if _, ok := cat.Lookup(string(c)); !ok {
			return Catalog{}, fmt.Errorf("condition catalog missing %s", c)
		}
	}
	if cat.Disclaimer == "" {
		cat.Disclaimer = Disclaimer
	}
	return cat, nil
}

func (c Catalog) Lookup(key string) (Concept, bool) {
	if c.Concepts == nil {
		return Concept{}, false
	}
	concept, ok := c.Concepts[strings.ToLower(key)]
	if ok {
		return concept, true
	}
	for k, v := range c.Concepts {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return Concept{}, false
}

// Entries lists the predicted conditions in classifier order.
func (c Catalog) Entries() []Entry {
	conditions := screening.Conditions()
	out := make([]Entry, 0, len(conditions))
	for _, cond := range conditions {
		concept, ok := c.Lookup(string(cond))
		if !ok {
			concept = Concept{Display: string(cond)}
		}
		out = append(out, Entry{Condition: cond, Concept: concept})
	}
	return out
}

func DefaultCatalog() Catalog {
	return Catalog{
		Disclaimer: Disclaimer,
		Concepts: map[string]Concept{
			"vertigo": {
				Display:     "Vertigo",
				Description: "A false sense that you or your surroundings are spinning, often triggered by changes in head position.",
				SNOMED:      "399153001",
				ICD10:       "R42",
				ICD11:       "MB48.8",
				Advice:      "If likelihood is high, visit a clinician. Seek urgent care if vertigo comes with weakness, slurred speech or loss of vision.",
			},
			"migraine": {
				Display:     "Migraine",
				Description: "Recurrent headache attacks, frequently with nausea and sensitivity to light or sound.",
				SNOMED:      "37796009",
				ICD10:       "G43.9",
				ICD11:       "8A80",
				Advice:      "If likelihood is high, visit a clinician. Keeping a headache diary helps identify triggers.",
			},
			"pppd": {
				Display:     "Persistent Postural-Perceptual Dizziness",
				Description: "Chronic non-spinning dizziness or unsteadiness lasting three months or more, worse when upright or in busy visual environments.",
				ICD11:       "AB32.0",
				Advice:      "If likelihood is high, visit a clinician. Vestibular rehabilitation is commonly recommended.",
			},
		},
	}
}
