package auth

import (
	"context"

	pkgerrors "lattice-backend/pkg/errors"
)

type contextKey string

const (
	organizationIDKey contextKey = "organization_id"
	agentIDKey        contextKey = "agent_id"
)

// OrganizationContext carries the authenticated tenant identity.
// Every graph query is scoped to OrganizationID; AgentID identifies the
// calling agent worker when present.
type OrganizationContext struct {
	OrganizationID string
	AgentID        string
}

// WithOrganization attaches the authenticated organization to the context
func WithOrganization(ctx context.Context, orgCtx OrganizationContext) context.Context {
	ctx = context.WithValue(ctx, organizationIDKey, orgCtx.OrganizationID)
	if orgCtx.AgentID != "" {
		ctx = context.WithValue(ctx, agentIDKey, orgCtx.AgentID)
	}
	return ctx
}

// GetOrganizationFromContext extracts the authenticated organization.
// Returns an unauthorized error when the middleware did not run.
func GetOrganizationFromContext(ctx context.Context) (OrganizationContext, error) {
	orgID, ok := ctx.Value(organizationIDKey).(string)
	if !ok || orgID == "" {
		return OrganizationContext{}, pkgerrors.NewUnauthorizedError("no organization in request context")
	}
	agentID, _ := ctx.Value(agentIDKey).(string)
	return OrganizationContext{OrganizationID: orgID, AgentID: agentID}, nil
}
