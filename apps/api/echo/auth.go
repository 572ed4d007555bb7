package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/CyberG247/digital-assignment-portal/core/student"
)

var authConf struct {
	appName         string
	secretKey       []byte
	expirationDelta time.Duration
	jwtConfig       middleware.JWTConfig
}

// Claims identifies the logged-in student on authed requests. This is a
// session handle, not a security boundary: the portal has no passwords.
type Claims struct {
	jwt.StandardClaims
	Name string `json:"name,omitempty"`
}

// ConfigureAuth sets up the JWT session auth and returns the middleware
// protecting student endpoints.
func ConfigureAuth(appName string, secretKey []byte, expirationDelta time.Duration) echo.MiddlewareFunc {
	authConf.appName = appName
	authConf.secretKey = secretKey
	authConf.expirationDelta = expirationDelta
	authConf.jwtConfig = middleware.JWTConfig{
		SigningKey:    secretKey,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "studentToken",
		Claims:        new(Claims),
	}
	return middleware.JWTWithConfig(authConf.jwtConfig)
}

// GetStudentClaims builds the session claims for a freshly logged-in student.
func GetStudentClaims(s student.Student) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    authConf.appName,
			Subject:   s.ID,
			Audience:  "Portal",
			ExpiresAt: now.Add(authConf.expirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Name: s.Name,
	}
}

// GenerateToken generates a signed JWT token string representing the student Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(authConf.jwtConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)
	return token.SignedString(authConf.secretKey)
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(authConf.jwtConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextStudent resolves the student identity carried by the request token.
func getContextStudent(ctx echo.Context) (student.Student, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return student.Student{}, err
	}
	return student.Student{Name: claims.Name, ID: claims.Subject}, nil
}
