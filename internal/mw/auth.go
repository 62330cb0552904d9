package mw

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/golang-jwt/jwt/v5"

	"ota-report-backend/internal/model"
)

// ContextUserKey is where RequireAuth stores the verified claims.
const ContextUserKey = "user"

// Claims is the JWT payload issued at login.
type Claims struct {
	ID         uint     `json:"id"`
	Username   string   `json:"username"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Role       string   `json:"role"`
	Facilities []string `json:"facilities"`
	jwt.RegisteredClaims
}

// IsAdmin mirrors model.User.IsAdmin for the token payload.
func (c *Claims) IsAdmin() bool { return c.Role == "admin" }

// HasFacility reports whether the token grants access to a facility. Admins
// have access to everything.
func (c *Claims) HasFacility(facilityID string) bool {
	if c.IsAdmin() {
		return true
	}
	for _, f := range c.Facilities {
		if f == facilityID {
			return true
		}
	}
	return false
}

// GenerateToken signs a JWT for a user.
func GenerateToken(u model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		ID:         u.ID,
		Username:   u.Username,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Facilities: u.Facilities,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   u.Username,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// RequireAuth verifies the Bearer token and stores its claims in the context.
func RequireAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Missing access token",
				"code":    "NO_TOKEN",
			})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "Invalid or expired token",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// UserClaims retrieves the claims RequireAuth stored.
func UserClaims(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}

type facilityRequest struct {
	FacilityID string `json:"facilityId"`
}

// RequireFacilityAccess checks the facilityId in the JSON body against the
// caller's facility grants. Must run after RequireAuth. The body is bound
// through gin's body cache so handlers can bind it again.
func RequireFacilityAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := UserClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Missing access token",
				"code":    "NO_TOKEN",
			})
			return
		}

		var req facilityRequest
		if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil || req.FacilityID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   "facilityId is required",
			})
			return
		}

		if !claims.HasFacility(req.FacilityID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   "You do not have access to this facility",
				"code":    "FACILITY_ACCESS_DENIED",
			})
			return
		}
		c.Next()
	}
}
