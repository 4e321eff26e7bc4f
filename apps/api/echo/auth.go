package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
)

const (
	contextTokenKey = "userToken"
	tokenAudience   = "EduForum"
)

var errInvalidRole = errors.New("invalid role")

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role"`
}

// Valid rejects expired tokens and unknown roles.
func (c Claims) Valid() error {
	if err := c.StandardClaims.Valid(); err != nil {
		return err
	}
	if !chat.IsRole(c.Role) {
		return errInvalidRole
	}
	return nil
}

func (c Claims) Identity() core.Identity {
	return core.Identity{UserID: c.Subject, Username: c.Username, Role: c.Role}
}

func (c Claims) IsAdmin() bool {
	return c.Role == chat.RoleAdmin
}

func newJWTConfig(secretKey string) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(secretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// optionalJWT authenticates the request only when it carries an Authorization header.
func optionalJWT(conf middleware.JWTConfig) echo.MiddlewareFunc {
	conf.Skipper = func(ctx echo.Context) bool {
		return ctx.Request().Header.Get(echo.HeaderAuthorization) == ""
	}
	return middleware.JWTWithConfig(conf)
}

// GetUserClaims returns the claims of a token issued to id, valid for `server.jwtExpirationDelta`.
func GetUserClaims(conf *core.Config, id core.Identity) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   id.UserID,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: id.Username,
		Role:     id.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims, secretKey string) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)

	ss, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
