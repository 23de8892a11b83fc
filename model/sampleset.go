package model

// Sample is one observed assignment with its energy and how often it was
// observed.
type Sample struct {
	Assignment  map[string]int `json:"assignment"`
	Energy      float64        `json:"energy"`
	Occurrences int            `json:"occurrences"`
}

// SampleSet is an ordered multiset of samples plus free-form metadata,
// produced by running a problem on a sampler. Sample sets are never
// replaced in the store, only extended via [Concat].
type SampleSet struct {
	Samples  []Sample       `json:"samples"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewSampleSet creates an empty sample set with its own metadata map.
func NewSampleSet() *SampleSet {
	return &SampleSet{Metadata: make(map[string]any)}
}

// Append adds a sample record.
func (s *SampleSet) Append(assignment map[string]int, energy float64, occurrences int) {
	s.Samples = append(s.Samples, Sample{
		Assignment:  assignment,
		Energy:      energy,
		Occurrences: occurrences,
	})
}

// TotalOccurrences sums the occurrence counts over all samples.
func (s *SampleSet) TotalOccurrences() int {
	total := 0
	for _, smp := range s.Samples {
		total += smp.Occurrences
	}
	return total
}

// Len returns the number of distinct sample records.
func (s *SampleSet) Len() int { return len(s.Samples) }

// Concat concatenates sample sets in order, preserving per-sample
// occurrence counts and merging metadata by key (last writer wins).
// Inputs are not mutated.
func Concat(sets ...*SampleSet) *SampleSet {
	out := NewSampleSet()
	for _, set := range sets {
		if set == nil {
			continue
		}
		out.Samples = append(out.Samples, set.Samples...)
		for k, v := range set.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
