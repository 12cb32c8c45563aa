package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nexuspump/nexuspump-api/internal/domain"
)

// ContextKeyCallerAddress is where VerifyJWT stores the authenticated wallet
// address for downstream handlers.
const ContextKeyCallerAddress = "callerAddress"

// Authenticator verifies the bearer tokens issued by the wallet-signing
// collaborator. The core never sees signatures or private keys; it trusts the
// "address" claim of a token signed with the shared key.
type Authenticator struct {
	signingKey string
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: signingKey,
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(a.signingKey), nil
		})
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		address, ok := claims["address"].(string)
		if !ok || domain.ValidateAddress(address) != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token has no valid address claim"})
			return
		}

		ctx.Set(ContextKeyCallerAddress, address)
		ctx.Next()
	}
}
