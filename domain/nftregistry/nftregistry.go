package nftregistry

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
)

// TransferPayoutRequest asks a registry to move token custody to the
// receiver using a previously issued approval, and to report how the sale
// proceeds should be split.
type TransferPayoutRequest struct {
	Receiver      domain.AccountId `json:"receiverId"`
	TokenId       domain.TokenId   `json:"tokenId"`
	ApprovalId    uint64           `json:"approvalId"`
	Price         string           `json:"price"`
	MaxRecipients uint32           `json:"maxLenPayout"`
}

// Client calls an asset registry's transfer-and-report-payout endpoint.
// The registry owns token custody and approval semantics; the marketplace
// only reacts to its response. The returned bytes are the raw response
// body; settlement parses them without trusting the shape.
type Client interface {
	TransferPayout(ctx ctx.Ctx, registry domain.AccountId, req *TransferPayoutRequest) ([]byte, error)
}
