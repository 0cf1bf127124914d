package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/astromart/goledger/base/ctx"
)

// JwtCustomClaims carry the calling ledger account inside the gateway's
// bearer token.
type JwtCustomClaims struct {
	Account string `json:"account"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, account AccountId) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (account string, err error)
}
