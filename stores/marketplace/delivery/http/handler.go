package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/delivery"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/offer"
	"github.com/astromart/goledger/middleware"
	authMiddleware "github.com/astromart/goledger/stores/auth/delivery/http/middleware"
)

type handler struct {
	marketplace marketplace.UseCase
}

// New registers the marketplace surface. Mutating routes authenticate the
// calling ledger account and carry the attached deposit in the body, the
// read side is cacheable.
func New(e *echo.Echo, mp marketplace.UseCase, auth *authMiddleware.AuthMiddleware) {
	h := &handler{marketplace: mp}

	ls := e.Group("/listings")
	ls.GET("", h.getListings, middleware.CacheHttp(30*time.Second))

	l := e.Group("/listing/:registry/:token", middleware.IsValidAccountId("registry"))
	l.GET("", h.getListing)
	l.PUT("/price", h.updateListingPrice, auth.Auth())
	l.DELETE("", h.deleteListing, auth.Auth())
	l.POST("/buy", h.buy, auth.Auth())
	l.POST("/bids", h.addBid, auth.Auth())
	l.POST("/accept-bid", h.acceptBid, auth.Auth())
	l.DELETE("/bids/:bidder", h.cancelBid, auth.Auth(), middleware.IsValidAccountId("bidder"))

	e.POST("/registry-approval", h.registryApproval, auth.Auth())

	os := e.Group("/offers")
	os.POST("", h.addOffer, auth.Auth())

	o := e.Group("/offer/:registry/:buyer/:token",
		middleware.IsValidAccountId("registry"), middleware.IsValidAccountId("buyer"))
	o.GET("", h.getOffer)
	o.DELETE("", h.cancelOffer, auth.Auth())

	st := e.Group("/storage")
	st.POST("/deposit", h.storageDeposit, auth.Auth())
	st.POST("/withdraw", h.storageWithdraw, auth.Auth())
	st.GET("/minimum-balance", h.storageMinimumBalance)
	st.GET("/balance/:account", h.storageBalanceOf, middleware.IsValidAccountId("account"))

	e.GET("/account/:account/supply", h.getSupplyByOwner, middleware.IsValidAccountId("account"))

	ad := e.Group("/admin", auth.Auth())
	ad.POST("/treasury", h.setTreasury)
	ad.POST("/transaction-fee", h.setTransactionFee)
	ad.POST("/transfer-ownership", h.transferOwnership)
	ad.POST("/registries", h.addApprovedRegistries)
	ad.DELETE("/registries", h.removeApprovedRegistries)
	ad.POST("/currencies", h.addApprovedCurrencies)

	e.GET("/settings", h.getSettings, middleware.CacheHttp(10*time.Second))
	e.GET("/events", h.getEvents, middleware.CacheHttp(10*time.Second))
}

func caller(c echo.Context) domain.AccountId {
	return c.Get("account").(domain.AccountId)
}

func listingId(c echo.Context) listing.Id {
	return listing.Id{
		Registry: domain.AccountId(c.Param("registry")),
		TokenId:  domain.TokenId(c.Param("token")),
	}
}

func (h *handler) getListings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner     *domain.AccountId `query:"owner"`
		Registry  *domain.AccountId `query:"registry"`
		IsAuction *bool             `query:"isAuction"`
		Offset    int32             `query:"offset"`
		Limit     int32             `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []listing.FindAllOptionsFunc{}
	if p.Owner != nil {
		opts = append(opts, listing.WithOwner(*p.Owner))
	}
	if p.Registry != nil {
		opts = append(opts, listing.WithRegistry(*p.Registry))
	}
	if p.IsAuction != nil {
		opts = append(opts, listing.WithIsAuction(*p.IsAuction))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, listing.WithPagination(p.Offset, p.Limit))
	}

	res, err := h.marketplace.GetListings(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.marketplace.GetListing(ctx, listingId(c))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) registryApproval(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner      domain.AccountId        `json:"ownerId" validate:"required"`
		TokenId    domain.TokenId          `json:"tokenId" validate:"required"`
		ApprovalId uint64                  `json:"approvalId"`
		Msg        marketplace.ApprovalMsg `json:"msg"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	// the approval call is authenticated as the registry itself
	err := h.marketplace.RegistryApproval(ctx, &marketplace.RegistryApprovalParams{
		Registry:   caller(c),
		Owner:      p.Owner,
		TokenId:    p.TokenId,
		ApprovalId: p.ApprovalId,
		Msg:        p.Msg,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) updateListingPrice(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Currency domain.AccountId `json:"currencyId"`
		Price    string           `json:"price" validate:"required"`
		Deposit  string           `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := listingId(c)
	err := h.marketplace.UpdateListingPrice(ctx, &marketplace.UpdateListingPriceParams{
		Caller:   caller(c),
		Registry: id.Registry,
		TokenId:  id.TokenId,
		Currency: p.Currency,
		Price:    p.Price,
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) deleteListing(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Deposit string `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	id := listingId(c)
	err := h.marketplace.DeleteListing(ctx, &marketplace.DeleteListingParams{
		Caller:   caller(c),
		Registry: id.Registry,
		TokenId:  id.TokenId,
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) buy(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Currency *domain.AccountId `json:"currencyId"`
		Price    *string           `json:"price"`
		Deposit  string            `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := listingId(c)
	err := h.marketplace.Buy(ctx, &marketplace.BuyParams{
		Buyer:    caller(c),
		Registry: id.Registry,
		TokenId:  id.TokenId,
		Currency: p.Currency,
		Price:    p.Price,
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) addBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Currency domain.AccountId `json:"currencyId"`
		Amount   string           `json:"amount" validate:"required"`
		Deposit  string           `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	id := listingId(c)
	err := h.marketplace.AddBid(ctx, &marketplace.AddBidParams{
		Bidder:   caller(c),
		Registry: id.Registry,
		TokenId:  id.TokenId,
		Currency: p.Currency,
		Amount:   p.Amount,
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) acceptBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Deposit string `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	id := listingId(c)
	err := h.marketplace.AcceptBid(ctx, &marketplace.AcceptBidParams{
		Caller:   caller(c),
		Registry: id.Registry,
		TokenId:  id.TokenId,
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) cancelBid(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Deposit string `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	id := listingId(c)
	err := h.marketplace.CancelBid(ctx, &marketplace.CancelBidParams{
		Caller:   caller(c),
		Registry: id.Registry,
		TokenId:  id.TokenId,
		Bidder:   domain.AccountId(c.Param("bidder")),
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) addOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Registry domain.AccountId `json:"registryId" validate:"required"`
		TokenId  domain.TokenId   `json:"tokenId" validate:"required"`
		Currency domain.AccountId `json:"currencyId"`
		Price    string           `json:"price" validate:"required"`
		Deposit  string           `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.marketplace.AddOffer(ctx, &marketplace.AddOfferParams{
		Buyer:    caller(c),
		Registry: p.Registry,
		TokenId:  p.TokenId,
		Currency: p.Currency,
		Price:    p.Price,
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusCreated, "ok")
}

func (h *handler) getOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.marketplace.GetOffer(ctx, offer.Id{
		Registry: domain.AccountId(c.Param("registry")),
		Buyer:    domain.AccountId(c.Param("buyer")),
		TokenId:  domain.TokenId(c.Param("token")),
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) cancelOffer(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Deposit string `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	if caller(c) != domain.AccountId(c.Param("buyer")) {
		return delivery.MakeJsonResp(c, http.StatusMethodNotAllowed, "offers can only be cancelled by their buyer")
	}

	err := h.marketplace.CancelOffer(ctx, &marketplace.CancelOfferParams{
		Buyer:    caller(c),
		Registry: domain.AccountId(c.Param("registry")),
		TokenId:  domain.TokenId(c.Param("token")),
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) storageDeposit(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Account domain.AccountId `json:"accountId"`
		Deposit string           `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.marketplace.StorageDeposit(ctx, &marketplace.StorageDepositParams{
		Caller:  caller(c),
		Account: p.Account,
		Deposit: p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) storageWithdraw(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Deposit string `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	err := h.marketplace.StorageWithdraw(ctx, &marketplace.StorageWithdrawParams{
		Caller:  caller(c),
		Deposit: p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) storageMinimumBalance(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)
	return delivery.MakeJsonResp(c, http.StatusOK, h.marketplace.StorageMinimumBalance(ctx))
}

func (h *handler) storageBalanceOf(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.marketplace.StorageBalanceOf(ctx, domain.AccountId(c.Param("account")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getSupplyByOwner(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.marketplace.GetSupplyByOwner(ctx, domain.AccountId(c.Param("account")))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) setTreasury(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Treasury domain.AccountId `json:"treasuryId" validate:"required"`
		Deposit  string           `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.marketplace.SetTreasury(ctx, &marketplace.SetTreasuryParams{
		Caller:   caller(c),
		Treasury: p.Treasury,
		Deposit:  p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) setTransactionFee(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		FeeBps  uint16 `json:"feeBps"`
		Deposit string `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	err := h.marketplace.SetTransactionFee(ctx, &marketplace.SetTransactionFeeParams{
		Caller:  caller(c),
		FeeBps:  p.FeeBps,
		Deposit: p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) transferOwnership(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Owner   domain.AccountId `json:"ownerId" validate:"required"`
		Deposit string           `json:"deposit" validate:"required"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}
	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	err := h.marketplace.TransferOwnership(ctx, &marketplace.TransferOwnershipParams{
		Caller:  caller(c),
		Owner:   p.Owner,
		Deposit: p.Deposit,
	})
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

type approvedAccountsPayload struct {
	Accounts []domain.AccountId `json:"accounts" validate:"required"`
	Deposit  string             `json:"deposit" validate:"required"`
}

func (h *handler) bindApprovedAccounts(c echo.Context) (*marketplace.ApprovedAccountsParams, error) {
	p := &approvedAccountsPayload{}
	if err := c.Bind(p); err != nil {
		return nil, err
	}
	if err := c.Validate(p); err != nil {
		return nil, err
	}
	return &marketplace.ApprovedAccountsParams{
		Caller:   caller(c),
		Accounts: p.Accounts,
		Deposit:  p.Deposit,
	}, nil
}

func (h *handler) addApprovedRegistries(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p, err := h.bindApprovedAccounts(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.marketplace.AddApprovedRegistries(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) removeApprovedRegistries(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p, err := h.bindApprovedAccounts(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.marketplace.RemoveApprovedRegistries(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) addApprovedCurrencies(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	p, err := h.bindApprovedAccounts(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	if err := h.marketplace.AddApprovedCurrencies(ctx, p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, "ok")
}

func (h *handler) getSettings(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	res, err := h.marketplace.GetSettings(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getEvents(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Type     *marketplace.EventType `query:"type"`
		Registry *domain.AccountId      `query:"registry"`
		TokenId  *domain.TokenId        `query:"token"`
		Offset   int32                  `query:"offset"`
		Limit    int32                  `query:"limit"`
	}

	p := &params{}
	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid params")
	}

	opts := []marketplace.EventFindAllOptionsFunc{}
	if p.Type != nil {
		opts = append(opts, marketplace.EventWithType(*p.Type))
	}
	if p.Registry != nil {
		opts = append(opts, marketplace.EventWithRegistry(*p.Registry))
	}
	if p.TokenId != nil {
		opts = append(opts, marketplace.EventWithTokenId(*p.TokenId))
	}
	if p.Offset != 0 || p.Limit != 0 {
		opts = append(opts, marketplace.EventWithPagination(p.Offset, p.Limit))
	}

	res, err := h.marketplace.GetEvents(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}
