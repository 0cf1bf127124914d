package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/delivery"
	"github.com/astromart/goledger/base/validator"
	"github.com/astromart/goledger/domain"
)

type authHandler struct {
	auth domain.AuthUsecase
}

func New(e *echo.Echo, auth domain.AuthUsecase) {
	handler := &authHandler{
		auth: auth,
	}
	g := e.Group("/auth")
	g.POST("/sign", handler.sign)
}

func (h *authHandler) sign(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Account domain.AccountId `json:"account"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		ctx.WithField("err", err).Error("bind failed")
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if !validator.IsValidAccountId(string(p.Account)) {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid account id")
	}

	if tkn, err := h.auth.SignToken(ctx, p.Account); err != nil {
		ctx.WithField("err", err).Error("auth.SignToken failed")
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusCreated, tkn)
	}
}
