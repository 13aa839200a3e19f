package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"smart-meter-exploration/internal/api/models"
	"smart-meter-exploration/internal/cluster"
	"smart-meter-exploration/internal/model"
	"smart-meter-exploration/internal/pipeline"
	"smart-meter-exploration/internal/report"
	"smart-meter-exploration/internal/variant"

	"github.com/gin-gonic/gin"
)

// VariantHandler serves clustering results for the declared variants
type VariantHandler struct {
	runner     *pipeline.Runner
	households map[string]model.Household
	maxK       int
}

// NewVariantHandler creates a handler over a runner. households may be nil,
// in which case no tariff or Acorn breakdown is returned.
func NewVariantHandler(runner *pipeline.Runner, households map[string]model.Household, defaultMaxK int) *VariantHandler {
	if defaultMaxK < 1 {
		defaultMaxK = 10
	}
	return &VariantHandler{runner: runner, households: households, maxK: defaultMaxK}
}

// ListVariants handles GET /api/v1/variants
func (h *VariantHandler) ListVariants(c *gin.Context) {
	all := h.runner.Registry().All()
	variants := make([]models.VariantInfo, len(all))
	for i, d := range all {
		variants[i] = models.VariantInfo{
			Name:        d.Name,
			Description: d.Spec.String(),
			K:           d.K,
			Display: models.DisplayInfo{
				YLabel:     d.Display.YLabel,
				YMin:       d.Display.YMin,
				YMax:       d.Display.YMax,
				Normalised: d.Display.Normalised,
			},
		}
	}
	c.JSON(http.StatusOK, gin.H{"variants": variants, "count": len(variants)})
}

// GetClusters handles GET /api/v1/variants/:name/clusters
func (h *VariantHandler) GetClusters(c *gin.Context) {
	var req models.ClustersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}

	o, err := h.runner.Run(c.Param("name"))
	if err != nil {
		writeRunError(c, c.Param("name"), err)
		return
	}

	resp := models.ClustersResponse{
		RunID:      o.RunID,
		Variant:    o.Variant.Name,
		K:          o.Result.K,
		Households: o.Table.Len(),
		Excluded:   map[string]int{},
		Inertia:    o.Result.Inertia,
		Iterations: o.Result.Iterations,
		Converged:  o.Result.Converged,
	}
	for _, e := range o.Table.Excluded {
		resp.Excluded[string(e.Reason)]++
	}

	includeMeans := req.IncludeMeans == nil || *req.IncludeMeans
	var means [][]float64
	if includeMeans {
		means = o.Result.ClusterMeans(o.Table)
		resp.Axis = o.Table.Axis
	}
	var dist *report.Distribution
	if h.households != nil {
		dist = report.NewDistribution(o.Result.Households, o.Result.Labels, o.Result.K, h.households)
		resp.Unmatched = len(dist.Unmatched)
	}
	for cl, size := range o.Result.Sizes() {
		info := models.ClusterInfo{Cluster: cl, Size: size}
		if includeMeans {
			info.Mean = means[cl]
		}
		if dist != nil {
			info.Tariff = shareMap(tariffNames(), dist.TariffShares(cl))
			info.Acorn = shareMap(groupNames(), dist.GroupShares(cl))
		}
		resp.Clusters = append(resp.Clusters, info)
	}
	if req.IncludeAssignments {
		resp.Assignments = o.Result.Labels
	}

	c.JSON(http.StatusOK, resp)
}

// GetInertia handles GET /api/v1/variants/:name/inertia
func (h *VariantHandler) GetInertia(c *gin.Context) {
	var req models.InertiaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "max_k must be an integer", nil)
		return
	}
	maxK := req.MaxK
	if c.Query("max_k") == "" {
		maxK = h.maxK
	}

	curve, err := h.runner.InertiaCurve(c.Param("name"), maxK)
	if err != nil {
		writeRunError(c, c.Param("name"), err)
		return
	}

	points := make([]models.InertiaPoint, len(curve.Points))
	for i, p := range curve.Points {
		points[i] = models.InertiaPoint{K: p.K, Inertia: p.Inertia}
	}
	c.JSON(http.StatusOK, models.InertiaResponse{RunID: curve.RunID, Variant: curve.Variant, Points: points})
}

// GetChart handles GET /api/v1/variants/:name/chart and returns an HTML page
func (h *VariantHandler) GetChart(c *gin.Context) {
	o, err := h.runner.Run(c.Param("name"))
	if err != nil {
		writeRunError(c, c.Param("name"), err)
		return
	}

	var dist *report.Distribution
	if h.households != nil {
		dist = report.NewDistribution(o.Result.Households, o.Result.Labels, o.Result.K, h.households)
	}
	var buf bytes.Buffer
	if err := report.RenderVariantPage(&buf, o, dist); err != nil {
		writeError(c, http.StatusInternalServerError, "RENDER_ERROR", fmt.Sprintf("render error: %v", err), nil)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// writeRunError maps pipeline errors to HTTP statuses
func writeRunError(c *gin.Context, name string, err error) {
	details := map[string]interface{}{"variant": name}
	switch {
	case errors.Is(err, variant.ErrNotFound):
		writeError(c, http.StatusNotFound, "VARIANT_NOT_FOUND", err.Error(), details)
	case errors.Is(err, cluster.ErrInvalidK):
		writeError(c, http.StatusBadRequest, "INVALID_K", err.Error(), details)
	case errors.Is(err, pipeline.ErrNoHouseholds):
		writeError(c, http.StatusUnprocessableEntity, "NO_HOUSEHOLDS", err.Error(), details)
	default:
		writeError(c, http.StatusInternalServerError, "CLUSTERING_ERROR", err.Error(), details)
	}
}

func writeError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{Code: code, Message: message, Details: details},
	})
}

func shareMap(names []string, shares []float64) map[string]float64 {
	out := make(map[string]float64, len(names))
	for i, n := range names {
		out[n] = shares[i]
	}
	return out
}

func tariffNames() []string {
	out := make([]string, len(model.Tariffs))
	for i, t := range model.Tariffs {
		out[i] = string(t)
	}
	return out
}

func groupNames() []string {
	out := make([]string, len(model.SocioGroups))
	for i, g := range model.SocioGroups {
		out[i] = string(g)
	}
	return out
}
