package leave

// EligibilityResult is the outcome of evaluating one employee against one
// leave type's predicate. It is a pure computed value, owned by the caller
// and never persisted.
type EligibilityResult struct {
	Eligible            bool     `json:"eligible"`
	Reason              string   `json:"reason,omitempty"`
	MissingRequirements []string `json:"missing_requirements,omitempty"`
}

// ValidationResult accumulates every violation found while validating a
// concrete leave request. Valid is true iff Errors is empty.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}
