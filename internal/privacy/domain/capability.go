package domain

// ResourceUsage estimates the host resources a capability consumes, each as a
// fraction of the corresponding total in [0,1].
type ResourceUsage struct {
	CPU     float64 `json:"cpu"`
	Memory  float64 `json:"memory"`
	Storage float64 `json:"storage"`
}

// LocalProcessingCapability describes one on-device processing feature.
type LocalProcessingCapability struct {
	Feature          string        `json:"feature"`
	Available        bool          `json:"available"`
	Confidence       float64       `json:"confidence"`
	FallbackRequired bool          `json:"fallback_required"`
	ResourceUsage    ResourceUsage `json:"resource_usage"`
}

// Decision is the arbiter's local-vs-cloud verdict for one piece of data.
type Decision struct {
	ProcessedLocally bool    `json:"processed_locally"`
	Confidence       float64 `json:"confidence"`
	FallbackReason   string  `json:"fallback_reason,omitempty"`
}
