package middleware

import (
	"net/http"
	"strings"

	"seguro_imovel/internal/domain/entities"
	"seguro_imovel/pkg"

	"github.com/gin-gonic/gin"
)

// Identity headers injected by the auth gateway in front of this service.
// Session issuance and token validation happen there; by the time a request
// reaches us these headers are trusted.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	actorKey = "actor"
)

var errMissingIdentity = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Missing caller identity", http.StatusUnauthorized)

// RequireIdentity aborts with 401 when the gateway identity headers are
// absent. The role defaults to associate when the header is missing or
// unknown; admin is never assumed.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(HeaderUserID))
		if userID == "" {
			c.AbortWithStatusJSON(errMissingIdentity.HTTPStatus, errMissingIdentity.ToHTTPError())
			return
		}

		role := entities.RoleAssociate
		if strings.EqualFold(c.GetHeader(HeaderUserRole), string(entities.RoleAdmin)) {
			role = entities.RoleAdmin
		}

		c.Set(actorKey, entities.Actor{ID: userID, Role: role})
		c.Next()
	}
}

// ActorFrom returns the actor stored by RequireIdentity. The zero actor is
// returned on routes that skipped the middleware.
func ActorFrom(c *gin.Context) entities.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return entities.Actor{}
	}
	actor, _ := v.(entities.Actor)
	return actor
}
