package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/solat/internal/model"
)

const currentUserKey = "currentUser"

// RoleSuperAdmin may manage every masjid.
const RoleSuperAdmin = "super_admin"

// retrieves *model.User from Gin context (after JWTMiddleware has run).
func GetCurrentUser(c *gin.Context) (*model.User, bool) {
	u, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := u.(*model.User)
	return user, ok
}

type AdminChecker interface {
	IsMasjidAdmin(ctx context.Context, userID, masjidID string) (bool, error)
}

// RequireMasjidAdmin lets the request through only if the current user
// administers the masjid named by the :id path parameter.
func RequireMasjidAdmin(store AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if user.Role == RoleSuperAdmin {
			c.Next()
			return
		}

		masjidID := c.Param("id")
		ok, err := store.IsMasjidAdmin(c.Request.Context(), user.ID, masjidID)
		if err != nil {
			log.Error().Err(err).Str("user_id", user.ID).Str("masjid_id", masjidID).Msg("admin check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to verify permissions"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not an administrator of this masjid"})
			return
		}
		c.Next()
	}
}
