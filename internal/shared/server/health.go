package server

import (
	"github.com/gin-gonic/gin"

	"resume-web/internal/shared/server/respond"
)

// healthHandler reports liveness together with the backend origin and the
// number of page sessions currently holding an event lock.
func healthHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{"ok": true}
		if deps.API != nil {
			body["api"] = deps.API.BaseURL()
		}
		if deps.Locks != nil {
			body["activeSessions"] = deps.Locks.Len()
		}
		respond.OK(c, body)
	}
}
