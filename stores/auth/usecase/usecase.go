package usecase

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

type impl struct {
	jwtSecret []byte
}

func New(jwtSecret string) domain.AuthUsecase {
	return &impl{
		jwtSecret: []byte(jwtSecret),
	}
}

func (im *impl) SignToken(ctx ctx.Ctx, account domain.AccountId) (string, error) {
	claims := domain.JwtCustomClaims{
		Account: string(account),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Account, nil
	}

	return "", fmt.Errorf("invalid token")
}
