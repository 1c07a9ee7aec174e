package models

// ValidateRequest presents a key on behalf of a user.
type ValidateRequest struct {
	Key  string `json:"key" binding:"required" example:"KEY-123"`
	User string `json:"user" binding:"required" example:"user-1"`
}

// ValidationResult is the answer to a validation. Refusals (quota reached,
// blocked key or user) are results, not errors.
type ValidationResult struct {
	Valid   bool   `json:"valid" example:"false"`
	Message string `json:"message,omitempty" example:"Key usage limit reached"`
}

type CreateKeyRequest struct {
	Key   string `json:"key" binding:"required" example:"KEY-123"`
	Limit *int   `json:"limit" binding:"required,min=0" example:"5"`
}

// StatusRequest sets a key's status by hand; Message is shown to callers
// while the key is blocked.
type StatusRequest struct {
	Status  string `json:"status" binding:"required,oneof=Active Blocked" example:"Blocked"`
	Message string `json:"message" example:"Contact support"`
}
