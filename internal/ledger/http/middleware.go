package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/allisson/finledger/internal/errors"
	"github.com/allisson/finledger/internal/httputil"
)

// DefaultOwnerHeader is the header the upstream gateway sets to the authenticated user id.
const DefaultOwnerHeader = "X-Owner-ID"

// OwnerMiddleware resolves the owner of the request from the gateway header.
//
// The gateway authenticates the caller and forwards its user id; this service trusts it.
//
// Returns:
//   - 401 Unauthorized: Missing header or a value that is not a UUID
//   - Continues: Owner stored in the request context (retrieve with GetOwner)
func OwnerMiddleware(header string, logger *slog.Logger) gin.HandlerFunc {
	if header == "" {
		header = DefaultOwnerHeader
	}

	return func(c *gin.Context) {
		value := strings.TrimSpace(c.GetHeader(header))
		if value == "" {
			logger.Debug("owner middleware: missing owner header", slog.String("header", header))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		owner, err := uuid.Parse(value)
		if err != nil || owner == uuid.Nil {
			logger.Debug("owner middleware: invalid owner header", slog.String("header", header))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithOwner(c.Request.Context(), owner))
		c.Next()
	}
}

// mustOwner returns the request owner. It writes a 401 response and returns false when the
// owner middleware did not run.
func mustOwner(c *gin.Context, logger *slog.Logger) (uuid.UUID, bool) {
	owner, ok := GetOwner(c.Request.Context())
	if !ok {
		logger.Error("no owner in request context")
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		return uuid.Nil, false
	}
	return owner, true
}

// pathID parses a UUID path parameter, writing a 400 response on failure.
func pathID(c *gin.Context, name string, logger *slog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httputil.HandleBadRequestGin(c, apperrors.New("invalid "+name+" parameter: must be a UUID"), logger)
		return uuid.Nil, false
	}
	return id, true
}
