package models

// ClustersRequest holds the query parameters of GET /api/v1/variants/:name/clusters
type ClustersRequest struct {
	IncludeAssignments bool  `form:"include_assignments"`
	IncludeMeans       *bool `form:"include_means"` // default: true
}

// InertiaRequest holds the query parameters of GET /api/v1/variants/:name/inertia
type InertiaRequest struct {
	MaxK int `form:"max_k"` // 0 = server default
}
