package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/deposit"
	"github.com/astromart/goledger/domain/marketplace"
)

// storageUnits returns n times the per-reservation storage cost
func storageUnits(n int64) string {
	unit, _ := domain.ToAmount(domain.StorageCostPerReservation)
	return new(big.Int).Mul(unit, big.NewInt(n)).String()
}

func TestStorageDeposit(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	t.Run("below one unit rejected", func(t *testing.T) {
		im, _ := newTestImpl()

		err := im.StorageDeposit(c, &marketplace.StorageDepositParams{
			Caller:  "alice",
			Deposit: "1",
		})
		req.Equal(domain.ErrDepositTooLow, err)
	})

	t.Run("new account", func(t *testing.T) {
		im, m := newTestImpl()
		m.depositRepo.On("Get", mock.Anything, domain.AccountId("alice")).Return(nil, domain.ErrNotFound)
		m.depositRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.StorageDeposit(c, &marketplace.StorageDepositParams{
			Caller:  "alice",
			Deposit: storageUnits(1),
		}))

		stored := m.depositRepo.Calls[1].Arguments.Get(1).(*deposit.StorageDeposit)
		req.Equal(domain.AccountId("alice"), stored.Account)
		req.Equal(storageUnits(1), stored.Balance)
	})

	t.Run("accumulates onto existing balance", func(t *testing.T) {
		im, m := newTestImpl()
		m.depositRepo.On("Get", mock.Anything, domain.AccountId("alice")).Return(&deposit.StorageDeposit{
			Account: "alice",
			Balance: storageUnits(2),
		}, nil)
		m.depositRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.StorageDeposit(c, &marketplace.StorageDepositParams{
			Caller:  "alice",
			Deposit: storageUnits(1),
		}))

		stored := m.depositRepo.Calls[1].Arguments.Get(1).(*deposit.StorageDeposit)
		req.Equal(storageUnits(3), stored.Balance)
	})

	t.Run("beneficiary defaults to caller but can differ", func(t *testing.T) {
		im, m := newTestImpl()
		m.depositRepo.On("Get", mock.Anything, domain.AccountId("bob")).Return(nil, domain.ErrNotFound)
		m.depositRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.StorageDeposit(c, &marketplace.StorageDepositParams{
			Caller:  "alice",
			Account: "bob",
			Deposit: storageUnits(1),
		}))

		stored := m.depositRepo.Calls[1].Arguments.Get(1).(*deposit.StorageDeposit)
		req.Equal(domain.AccountId("bob"), stored.Account)
	})
}

func TestStorageWithdraw(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()

	params := func() *marketplace.StorageWithdrawParams {
		return &marketplace.StorageWithdrawParams{Caller: "alice", Deposit: domain.OneUnit}
	}

	t.Run("refunds excess and keeps the locked part", func(t *testing.T) {
		im, m := newTestImpl()
		m.depositRepo.On("Get", mock.Anything, domain.AccountId("alice")).Return(&deposit.StorageDeposit{
			Account: "alice",
			Balance: storageUnits(3),
		}, nil)
		m.reservationRepo.On("CountByAccount", mock.Anything, domain.AccountId("alice")).Return(2, nil)
		m.depositRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.StorageWithdraw(c, params()))

		m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), storageUnits(1))
		stored := m.depositRepo.Calls[1].Arguments.Get(1).(*deposit.StorageDeposit)
		req.Equal(storageUnits(2), stored.Balance)
	})

	t.Run("record removed when nothing stays locked", func(t *testing.T) {
		im, m := newTestImpl()
		m.depositRepo.On("Get", mock.Anything, domain.AccountId("alice")).Return(&deposit.StorageDeposit{
			Account: "alice",
			Balance: storageUnits(2),
		}, nil)
		m.reservationRepo.On("CountByAccount", mock.Anything, domain.AccountId("alice")).Return(0, nil)
		m.depositRepo.On("Remove", mock.Anything, domain.AccountId("alice")).Return(nil)
		m.bank.On("Transfer", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		req.NoError(im.StorageWithdraw(c, params()))

		m.bank.AssertCalled(t, "Transfer", mock.Anything, domain.AccountId("alice"), storageUnits(2))
		m.depositRepo.AssertCalled(t, "Remove", mock.Anything, domain.AccountId("alice"))
	})

	t.Run("balance below locked requirement rejected", func(t *testing.T) {
		im, m := newTestImpl()
		m.depositRepo.On("Get", mock.Anything, domain.AccountId("alice")).Return(&deposit.StorageDeposit{
			Account: "alice",
			Balance: storageUnits(1),
		}, nil)
		m.reservationRepo.On("CountByAccount", mock.Anything, domain.AccountId("alice")).Return(2, nil)

		req.Equal(domain.ErrInsufficientStorage, im.StorageWithdraw(c, params()))
		m.bank.AssertNumberOfCalls(t, "Transfer", 0)
		m.depositRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		m.depositRepo.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("no deposit record and no reservations is a no-op", func(t *testing.T) {
		im, m := newTestImpl()
		m.depositRepo.On("Get", mock.Anything, domain.AccountId("alice")).Return(nil, domain.ErrNotFound)
		m.reservationRepo.On("CountByAccount", mock.Anything, domain.AccountId("alice")).Return(0, nil)
		m.depositRepo.On("Remove", mock.Anything, domain.AccountId("alice")).Return(domain.ErrNotFound)

		req.NoError(im.StorageWithdraw(c, params()))
		m.bank.AssertNumberOfCalls(t, "Transfer", 0)
	})

	t.Run("one unit required", func(t *testing.T) {
		im, _ := newTestImpl()

		p := params()
		p.Deposit = "2"
		req.Equal(domain.ErrOneUnitRequired, im.StorageWithdraw(c, p))
	})
}

func TestStorageBalanceOf(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	m.depositRepo.On("Get", mock.Anything, domain.AccountId("alice")).Return(&deposit.StorageDeposit{
		Account: "alice",
		Balance: storageUnits(2),
	}, nil)
	m.depositRepo.On("Get", mock.Anything, domain.AccountId("nobody")).Return(nil, domain.ErrNotFound)

	balance, err := im.StorageBalanceOf(c, "alice")
	req.NoError(err)
	req.Equal(storageUnits(2), balance)

	balance, err = im.StorageBalanceOf(c, "nobody")
	req.NoError(err)
	req.Equal("0", balance)
}

func TestStorageMinimumBalance(t *testing.T) {
	im, _ := newTestImpl()
	require.Equal(t, domain.StorageCostPerReservation, im.StorageMinimumBalance(ctx.Background()))
}

func TestGetSupplyByOwner(t *testing.T) {
	req := require.New(t)
	c := ctx.Background()
	im, m := newTestImpl()

	// one listing plus one standing offer; the supply view reports the same
	// reservation count the quota check consumes
	m.reservationRepo.On("CountByAccount", mock.Anything, domain.AccountId("alice")).Return(2, nil)

	cnt, err := im.GetSupplyByOwner(c, "alice")
	req.NoError(err)
	req.Equal(2, cnt)

	m.listingRepo.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
}
