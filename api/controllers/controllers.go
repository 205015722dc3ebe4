package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/kinmelhq/kinmel-backend/api/middleware"
	pkgerrors "github.com/kinmelhq/kinmel-backend/pkg/errors"
)

// actorID extracts the authenticated user's UUID from the request
// context seeded by the auth middleware.
func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}
