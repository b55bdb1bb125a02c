package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"keygate.backend/internal/domain/entities"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/internal/domain/repositories"
	"keygate.backend/internal/interfaces/http/response"
	"keygate.backend/pkg/ipfilter"
	"keygate.backend/pkg/logger"
	"keygate.backend/pkg/permissions"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// AccessKeyContextKey is the context key for the resolved access key
	AccessKeyContextKey = "accessKey"
)

// AccessKeyAuth authenticates the admin surface with an opaque bearer token.
// The token must resolve to a stored access key whose IP whitelist, when set,
// admits the caller. Every failure mode answers with the same 403 body: a
// caller must not be able to tell a bad token from a good token used from the
// wrong address.
func AccessKeyAuth(accessKeyRepo repositories.AccessKeyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			response.AbortError(c, domainerrors.Unauthorized())
			return
		}

		token := strings.TrimPrefix(authHeader, BearerPrefix)
		if token == "" {
			response.AbortError(c, domainerrors.Unauthorized())
			return
		}

		key, err := accessKeyRepo.FindByToken(c.Request.Context(), token)
		if err != nil {
			// Lookup failures and unknown tokens are indistinguishable on
			// the wire; only the log tells them apart.
			logger.Debug(c.Request.Context(), "access key rejected",
				zap.String("path", c.Request.URL.Path), zap.String("reason", err.Error()))
			response.AbortError(c, domainerrors.Unauthorized())
			return
		}

		if !ipfilter.Admit(c.ClientIP(), key.WhitelistRange) {
			logger.Debug(c.Request.Context(), "access key rejected",
				zap.String("path", c.Request.URL.Path), zap.String("reason", "caller address not whitelisted"))
			response.AbortError(c, domainerrors.Unauthorized())
			return
		}

		c.Set(AccessKeyContextKey, key)
		c.Next()
	}
}

// GetAccessKey gets the authenticated access key from context
func GetAccessKey(c *gin.Context) (*entities.AccessKey, bool) {
	value, exists := c.Get(AccessKeyContextKey)
	if !exists {
		return nil, false
	}
	key, ok := value.(*entities.AccessKey)
	return key, ok
}

// RequireCapability gates a route on one capability of the authenticated
// access key. A key granting the global wildcard passes every gate.
func RequireCapability(capability string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, exists := GetAccessKey(c)
		if !exists {
			response.AbortError(c, domainerrors.Unauthorized())
			return
		}

		if !permissions.Authorize(capability, key.Permissions) {
			response.AbortError(c, domainerrors.Unauthorized())
			return
		}

		c.Next()
	}
}
