package domain

import "errors"

var (
	// ErrInternalServerError will throw if any Internal Server Error happens
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item does not exist
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput       = errors.New("Given Param is not valid")
	ErrInvalidNumberFormat = errors.New("invalid number format")

	// authorization
	ErrUnauthorized = errors.New("caller is not allowed")
	ErrOwnerOnly    = errors.New("owner only")

	// payments attached to a call
	ErrOneUnitRequired   = errors.New("requires exactly one unit attached")
	ErrDepositTooLow     = errors.New("attached deposit is less than price")
	ErrExactPriceDeposit = errors.New("attached deposit must equal price")

	// listing / offer preconditions
	ErrPriceTooHigh         = errors.New("price is above the maximum")
	ErrPriceMismatch        = errors.New("price differs from the recorded one")
	ErrCurrencyMismatch     = errors.New("currency differs from the recorded one")
	ErrCurrencyNotSupported = errors.New("only the native currency is supported")
	ErrRegistryNotApproved  = errors.New("asset registry is not approved")
	ErrInvalidTimeWindow    = errors.New("auction window is invalid")
	ErrSelfTrade            = errors.New("cannot trade own token")

	// auction preconditions
	ErrAuctionInProgress = errors.New("token is on auction")
	ErrNotAuction        = errors.New("listing is not an auction")
	ErrAuctionNotStarted = errors.New("auction has not started yet")
	ErrAuctionEnded      = errors.New("auction has ended")
	ErrBidTooLow         = errors.New("bid must exceed the current price")
	ErrNoBids            = errors.New("cannot accept bid with empty bid list")

	// storage quota
	ErrInsufficientStorage = errors.New("insufficient storage deposit")

	// configuration
	ErrFeeOutOfRange = errors.New("fee must be below 10000 basis points")
)
