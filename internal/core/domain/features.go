package domain

import "fmt"

// FeatureVector is the fixed-schema numeric summary of one observation.
// Dimension names travel with the values so baseline comparisons stay
// self-describing if the schema ever evolves.
type FeatureVector struct {
	Names  []string  `json:"feature_names"`
	Values []float64 `json:"values"`
}

// Value returns the value of the named dimension, or 0 when the dimension is
// not part of the vector.
func (v FeatureVector) Value(name string) float64 {
	for i, n := range v.Names {
		if n == name {
			return v.Values[i]
		}
	}
	return 0
}

// BaselineHistory is the append-only collection of previously observed
// feature vectors plus the canonical dimension-name list. It is the durable
// model state that survives across pipeline cycles.
type BaselineHistory struct {
	Vectors      [][]float64 `json:"vectors"`
	FeatureNames []string    `json:"feature_names"`
}

// Len returns the number of stored vectors.
func (h BaselineHistory) Len() int { return len(h.Vectors) }

// Empty reports the cold-start state.
func (h BaselineHistory) Empty() bool { return len(h.Vectors) == 0 }

// Append records one vector and finalizes the dimension-name list to the
// vector's names. The name list, once non-empty, never changes within a
// deployment; a schema mismatch is rejected rather than silently stored.
func (h *BaselineHistory) Append(v FeatureVector) error {
	if len(h.FeatureNames) > 0 && len(v.Values) != len(h.FeatureNames) {
		return fmt.Errorf("feature vector has %d dimensions, baseline expects %d",
			len(v.Values), len(h.FeatureNames))
	}
	values := make([]float64, len(v.Values))
	copy(values, v.Values)
	h.Vectors = append(h.Vectors, values)
	h.FeatureNames = append([]string(nil), v.Names...)
	return nil
}

// Validate checks the stored-vector/name-list length invariant.
func (h BaselineHistory) Validate() error {
	for i, vec := range h.Vectors {
		if len(vec) != len(h.FeatureNames) {
			return fmt.Errorf("baseline vector %d has %d dimensions, expected %d",
				i, len(vec), len(h.FeatureNames))
		}
	}
	return nil
}

// Evaluation is the outcome of running an anomaly model against one feature
// vector and the baseline history.
type Evaluation struct {
	AnomalyFlag  bool
	RiskScore    float64
	Reason       string
	Deviation    float64
	BaselineMean []float64
}
