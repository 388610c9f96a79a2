package model

// IntegrityMetrics is the fixed-shape quality record computed over a unified
// table. It is created once per pipeline run and never mutated afterwards.
//
// Completeness and consistency are percentages in [0,100]; overall integrity
// is their fixed 60/40 weighting. All three are rounded to two decimals.
type IntegrityMetrics struct {
	Completeness     float64 `json:"completeness"`
	Consistency      float64 `json:"consistency"`
	OverallIntegrity float64 `json:"overall_integrity"`
	ValidRecords     int     `json:"valid_records"`
	InvalidRecords   int     `json:"invalid_records"`
}
