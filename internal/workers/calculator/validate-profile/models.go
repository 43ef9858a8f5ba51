// internal/workers/calculator/validate-profile/models.go
package validateprofile

// Input carries one wizard step's raw field values. Country steers
// postal code validation and travels with every step.
type Input struct {
	Step        string                 `json:"step"`
	ProfileData map[string]interface{} `json:"profileData"`
	Country     string                 `json:"country,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Output reports acceptance per field. Rejected steps still complete
// the job: the workflow gateway on isValid blocks progression while
// previously accepted fields stay untouched.
type Output struct {
	IsValid          bool                   `json:"isValid"`
	ValidatedData    map[string]interface{} `json:"validatedData"`
	ValidationErrors []ValidationError      `json:"validationErrors"`
}
