package transport

import (
	"net/http"
	"strings"

	"github.com/alex-pricope/hackathon-judging-api/api/models"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/gin-gonic/gin"
)

const (
	PrincipalTeam     = "team"
	PrincipalPanelist = "panelist"

	principalKey = "principal"
)

// TokenVerifier is satisfied by auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (map[string]any, error)
}

// Principal is the identity carried by a verified token.
type Principal struct {
	Type       string
	TeamID     string
	TeamName   string
	PanelistID string
	Name       string
	IsAdmin    bool
}

func (p *Principal) IsTeam() bool {
	return p.Type == PrincipalTeam
}

func (p *Principal) IsPanelist() bool {
	return p.Type == PrincipalPanelist
}

func (p *Principal) IsAdminPanelist() bool {
	return p.IsPanelist() && p.IsAdmin
}

// PrincipalFromClaims maps token claims onto a Principal. Claims of the wrong
// JSON type are treated as absent.
func PrincipalFromClaims(claims map[string]any) *Principal {
	str := func(key string) string {
		s, _ := claims[key].(string)
		return s
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return &Principal{
		Type:       str("type"),
		TeamID:     str("team_id"),
		TeamName:   str("team_name"),
		PanelistID: str("panelist_id"),
		Name:       str("name"),
		IsAdmin:    isAdmin,
	}
}

// Requirement is the principal shape a protected route accepts.
type Requirement struct {
	allow   func(*Principal) bool
	message string
}

var (
	AnyPrincipal = Requirement{allow: func(*Principal) bool { return true }}
	TeamOnly     = Requirement{allow: (*Principal).IsTeam, message: "Forbidden - Team access only"}
	PanelistOnly = Requirement{allow: (*Principal).IsPanelist, message: "Forbidden - Panelist access only"}
	AdminOnly    = Requirement{allow: (*Principal).IsAdminPanelist, message: "Forbidden - Admin access only"}
)

type Authenticator struct {
	tokens TokenVerifier
}

func NewAuthenticator(tokens TokenVerifier) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Require verifies the bearer token and rejects principals not matching req:
// 401 for a missing or invalid token, 403 for the wrong principal.
func (a *Authenticator) Require(req Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized - Invalid or missing token"})
			return
		}

		claims, err := a.tokens.Verify(token)
		if err != nil {
			logging.Log.WithField(requestIDKey, RequestID(c)).Warnf("AUTH: rejected token on %s: %v", c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized - Invalid or missing token"})
			return
		}

		principal := PrincipalFromClaims(claims)
		if !req.allow(principal) {
			logging.Log.WithField(requestIDKey, RequestID(c)).Warnf("AUTH: %s principal denied on %s %s", principal.Type, c.Request.Method, c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: req.message})
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by Require.
func CurrentPrincipal(c *gin.Context) *Principal {
	if p, ok := c.Get(principalKey); ok {
		if principal, ok := p.(*Principal); ok {
			return principal
		}
	}
	return &Principal{}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
