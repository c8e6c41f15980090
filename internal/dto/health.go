package dto

// HealthResponse is returned by the health/liveness/readiness probes
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}
