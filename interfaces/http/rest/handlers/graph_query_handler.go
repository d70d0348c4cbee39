package handlers

import (
	"net/http"
	"time"

	"lattice-backend/application/queries"
	querybus "lattice-backend/application/queries/bus"
	"lattice-backend/pkg/auth"
	"lattice-backend/pkg/common"
	"lattice-backend/pkg/utils"

	"go.uber.org/zap"
)

const maxRequestBytes = 1 << 20 // 1 MiB

// GraphQueryHandler exposes the graph query engine over HTTP. The
// organization scope always comes from the authenticated context, never
// from the request body.
type GraphQueryHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewGraphQueryHandler creates a new graph query handler
func NewGraphQueryHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *GraphQueryHandler {
	return &GraphQueryHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// shortestPathRequest is the body for both path endpoints
type shortestPathRequest struct {
	SourceID          string   `json:"sourceId" validate:"required,uuid4"`
	TargetID          string   `json:"targetId" validate:"required,uuid4"`
	RelationshipTypes []string `json:"relationshipTypes" validate:"omitempty,dive,min=1"`
	Direction         string   `json:"direction" validate:"omitempty,oneof=outgoing incoming both"`
}

// subgraphRequest is the body for POST /graph/subgraph
type subgraphRequest struct {
	NodeTypes         []string               `json:"nodeTypes" validate:"omitempty,dive,min=1"`
	RelationshipTypes []string               `json:"relationshipTypes" validate:"omitempty,dive,min=1"`
	MinWeight         *float64               `json:"minWeight" validate:"omitempty,gte=0"`
	MaxWeight         *float64               `json:"maxWeight" validate:"omitempty,gte=0"`
	Tags              []string               `json:"tags"`
	CreatedAfter      *time.Time             `json:"createdAfter"`
	CreatedBefore     *time.Time             `json:"createdBefore"`
	Properties        map[string]interface{} `json:"properties"`
	IncludeMetrics    bool                   `json:"includeMetrics"`
}

// ShortestPath handles POST /graph/shortest-path
func (h *GraphQueryHandler) ShortestPath(w http.ResponseWriter, r *http.Request) {
	orgCtx, err := auth.GetOrganizationFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req shortestPathRequest
	if err := common.ParseJSONBody(w, r, &req, maxRequestBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	query := queries.ShortestPathQuery{
		OrganizationID:    orgCtx.OrganizationID,
		SourceID:          req.SourceID,
		TargetID:          req.TargetID,
		RelationshipTypes: req.RelationshipTypes,
		Direction:         req.Direction,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Shortest path query failed",
			zap.String("organizationID", orgCtx.OrganizationID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// WeightedShortestPath handles POST /graph/astar
func (h *GraphQueryHandler) WeightedShortestPath(w http.ResponseWriter, r *http.Request) {
	orgCtx, err := auth.GetOrganizationFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req shortestPathRequest
	if err := common.ParseJSONBody(w, r, &req, maxRequestBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	query := queries.WeightedShortestPathQuery{
		OrganizationID:    orgCtx.OrganizationID,
		SourceID:          req.SourceID,
		TargetID:          req.TargetID,
		RelationshipTypes: req.RelationshipTypes,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Weighted shortest path query failed",
			zap.String("organizationID", orgCtx.OrganizationID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ExtractSubgraph handles POST /graph/subgraph
func (h *GraphQueryHandler) ExtractSubgraph(w http.ResponseWriter, r *http.Request) {
	orgCtx, err := auth.GetOrganizationFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req subgraphRequest
	if err := common.ParseJSONBody(w, r, &req, maxRequestBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	query := queries.SubgraphQuery{
		OrganizationID:    orgCtx.OrganizationID,
		NodeTypes:         req.NodeTypes,
		RelationshipTypes: req.RelationshipTypes,
		MinWeight:         req.MinWeight,
		MaxWeight:         req.MaxWeight,
		Tags:              req.Tags,
		CreatedAfter:      req.CreatedAfter,
		CreatedBefore:     req.CreatedBefore,
		Properties:        req.Properties,
		IncludeMetrics:    req.IncludeMetrics,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Subgraph query failed",
			zap.String("organizationID", orgCtx.OrganizationID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// metricsRequest is the body for POST /graph/metrics. It selects the same
// subgraph a subgraphRequest would, but the response carries metrics only.
type metricsRequest struct {
	NodeTypes         []string               `json:"nodeTypes" validate:"omitempty,dive,min=1"`
	RelationshipTypes []string               `json:"relationshipTypes" validate:"omitempty,dive,min=1"`
	MinWeight         *float64               `json:"minWeight" validate:"omitempty,gte=0"`
	MaxWeight         *float64               `json:"maxWeight" validate:"omitempty,gte=0"`
	Tags              []string               `json:"tags"`
	CreatedAfter      *time.Time             `json:"createdAfter"`
	CreatedBefore     *time.Time             `json:"createdBefore"`
	Properties        map[string]interface{} `json:"properties"`
}

// GraphMetrics handles POST /graph/metrics
func (h *GraphQueryHandler) GraphMetrics(w http.ResponseWriter, r *http.Request) {
	orgCtx, err := auth.GetOrganizationFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	var req metricsRequest
	if err := common.ParseJSONBody(w, r, &req, maxRequestBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	query := queries.GraphMetricsQuery{
		OrganizationID:    orgCtx.OrganizationID,
		NodeTypes:         req.NodeTypes,
		RelationshipTypes: req.RelationshipTypes,
		MinWeight:         req.MinWeight,
		MaxWeight:         req.MaxWeight,
		Tags:              req.Tags,
		CreatedAfter:      req.CreatedAfter,
		CreatedBefore:     req.CreatedBefore,
		Properties:        req.Properties,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Graph metrics query failed",
			zap.String("organizationID", orgCtx.OrganizationID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// SearchNodes handles GET /graph/search?q=...&type=...&tag=...
func (h *GraphQueryHandler) SearchNodes(w http.ResponseWriter, r *http.Request) {
	orgCtx, err := auth.GetOrganizationFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	params := r.URL.Query()
	if params.Get("q") == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "query parameter 'q' is required")
		return
	}

	query := queries.PatternSearchQuery{
		OrganizationID: orgCtx.OrganizationID,
		Pattern:        params.Get("q"),
		NodeTypes:      params["type"],
		Tags:           params["tag"],
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("Pattern search failed",
			zap.String("organizationID", orgCtx.OrganizationID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
