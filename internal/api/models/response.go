package models

import "time"

// VariantInfo describes one declared variant
type VariantInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	K           int         `json:"k"`
	Display     DisplayInfo `json:"display"`
}

// DisplayInfo carries plot hints for a variant
type DisplayInfo struct {
	YLabel     string  `json:"ylabel"`
	YMin       float64 `json:"ymin"`
	YMax       float64 `json:"ymax"`
	Normalised bool    `json:"normalised"`
}

// ClustersResponse is the clustering result of one variant
type ClustersResponse struct {
	RunID      string `json:"run_id"`
	Variant    string `json:"variant"`
	K          int    `json:"k"`
	Households int    `json:"households"`
	// Excluded counts households dropped during aggregation, by reason.
	Excluded   map[string]int `json:"excluded"`
	Inertia    float64        `json:"inertia"`
	Iterations int            `json:"iterations"`
	Converged  bool           `json:"converged"`
	Clusters   []ClusterInfo  `json:"clusters"`
	Axis       []string       `json:"axis,omitempty"`
	// Assignments maps household ID to cluster; only sent on request.
	Assignments map[string]int `json:"assignments,omitempty"`
	// Unmatched counts clustered households missing from the household file.
	Unmatched int `json:"unmatched"`
}

// ClusterInfo summarises one cluster
type ClusterInfo struct {
	Cluster int                `json:"cluster"`
	Size    int                `json:"size"`
	Mean    []float64          `json:"mean,omitempty"`
	Tariff  map[string]float64 `json:"tariff,omitempty"` // share of each tariff type
	Acorn   map[string]float64 `json:"acorn,omitempty"`  // share of each Acorn group
}

// InertiaResponse is the elbow curve of one variant
type InertiaResponse struct {
	RunID   string         `json:"run_id"`
	Variant string         `json:"variant"`
	Points  []InertiaPoint `json:"points"`
}

// InertiaPoint is the inertia for one cluster count
type InertiaPoint struct {
	K       int     `json:"k"`
	Inertia float64 `json:"inertia"`
}

// DatasetResponse describes the loaded meter data
type DatasetResponse struct {
	Source     string    `json:"source"`
	Households int       `json:"households"`
	Timestamps int       `json:"timestamps"`
	Readings   int       `json:"readings"`
	Coverage   float64   `json:"coverage"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Registered int       `json:"registered"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
