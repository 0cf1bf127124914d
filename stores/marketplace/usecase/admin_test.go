package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/settings"
)

func TestSetTreasury(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	t.Run("owner updates treasury", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
		m.settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.SetTreasury(c, &marketplace.SetTreasuryParams{
			Caller:   "owner",
			Treasury: "vault",
			Deposit:  domain.OneUnit,
		}))

		stored := m.settingsRepo.Calls[1].Arguments.Get(1).(*settings.Settings)
		req.Equal(domain.AccountId("vault"), stored.Treasury)
	})

	t.Run("non owner rejected", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		req.Equal(domain.ErrOwnerOnly, im.SetTreasury(c, &marketplace.SetTreasuryParams{
			Caller:   "mallory",
			Treasury: "vault",
			Deposit:  domain.OneUnit,
		}))
	})

	t.Run("one unit required", func(t *testing.T) {
		im, _ := newTestImpl()

		req.Equal(domain.ErrOneUnitRequired, im.SetTreasury(c, &marketplace.SetTreasuryParams{
			Caller:   "owner",
			Treasury: "vault",
			Deposit:  "0",
		}))
	})
}

func TestSetTransactionFee(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	t.Run("updates fee", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
		m.settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.SetTransactionFee(c, &marketplace.SetTransactionFeeParams{
			Caller:  "owner",
			FeeBps:  350,
			Deposit: domain.OneUnit,
		}))

		stored := m.settingsRepo.Calls[1].Arguments.Get(1).(*settings.Settings)
		req.Equal(uint16(350), stored.TransactionFeeBps)
	})

	t.Run("fee must stay below 100 percent", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		req.Equal(domain.ErrFeeOutOfRange, im.SetTransactionFee(c, &marketplace.SetTransactionFeeParams{
			Caller:  "owner",
			FeeBps:  10000,
			Deposit: domain.OneUnit,
		}))
		m.settingsRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}

func TestTransferOwnership(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	t.Run("hands over", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
		m.settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.TransferOwnership(c, &marketplace.TransferOwnershipParams{
			Caller:  "owner",
			Owner:   "successor",
			Deposit: domain.OneUnit,
		}))

		stored := m.settingsRepo.Calls[1].Arguments.Get(1).(*settings.Settings)
		req.Equal(domain.AccountId("successor"), stored.Owner)
	})

	t.Run("empty successor rejected", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)

		req.Equal(domain.ErrBadParamInput, im.TransferOwnership(c, &marketplace.TransferOwnershipParams{
			Caller:  "owner",
			Deposit: domain.OneUnit,
		}))
	})
}

func TestApprovedRegistries(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	t.Run("add dedupes and skips empty", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
		m.settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.AddApprovedRegistries(c, &marketplace.ApprovedAccountsParams{
			Caller:   "owner",
			Accounts: []domain.AccountId{"nft.registry", "art.registry", "", "art.registry"},
			Deposit:  domain.OneUnit,
		}))

		stored := m.settingsRepo.Calls[1].Arguments.Get(1).(*settings.Settings)
		req.Equal([]domain.AccountId{"nft.registry", "art.registry"}, stored.ApprovedRegistries)
	})

	t.Run("remove", func(t *testing.T) {
		im, m := newTestImpl()
		m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
		m.settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.RemoveApprovedRegistries(c, &marketplace.ApprovedAccountsParams{
			Caller:   "owner",
			Accounts: []domain.AccountId{"nft.registry"},
			Deposit:  domain.OneUnit,
		}))

		stored := m.settingsRepo.Calls[1].Arguments.Get(1).(*settings.Settings)
		req.Empty(stored.ApprovedRegistries)
	})
}

func TestAddApprovedCurrencies(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	m.settingsRepo.On("Get", mock.Anything).Return(testSettings(), nil)
	m.settingsRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	req.NoError(im.AddApprovedCurrencies(c, &marketplace.ApprovedAccountsParams{
		Caller:   "owner",
		Accounts: []domain.AccountId{"usdt.token"},
		Deposit:  domain.OneUnit,
	}))

	stored := m.settingsRepo.Calls[1].Arguments.Get(1).(*settings.Settings)
	req.Equal([]domain.AccountId{domain.NativeCurrency, "usdt.token"}, stored.ApprovedCurrencies)
}
