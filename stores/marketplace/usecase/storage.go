package usecase

import (
	"math/big"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/deposit"
	"github.com/astromart/goledger/domain/marketplace"
)

// StorageDeposit adds prepaid storage balance for an account, by default
// the caller. Each active listing or offer holds one unit of it.
func (im *impl) StorageDeposit(ctx ctx.Ctx, p *marketplace.StorageDepositParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	account := p.Account
	if account.IsEmpty() {
		account = p.Caller
	}

	amount, err := domain.ToAmount(p.Deposit)
	if err != nil {
		return domain.ErrBadParamInput
	}
	unit, _ := domain.ToAmount(domain.StorageCostPerReservation)
	if amount.Cmp(unit) < 0 {
		return domain.ErrDepositTooLow
	}

	balance := big.NewInt(0)
	if d, err := im.depositRepo.Get(ctx, account); err == nil {
		if balance, err = domain.ToAmount(d.Balance); err != nil {
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	balance.Add(balance, amount)
	return im.depositRepo.Upsert(ctx, &deposit.StorageDeposit{
		Account: account,
		Balance: balance.String(),
	})
}

// StorageWithdraw returns the deposit not locked by active reservations.
// A balance below the locked requirement is rejected outright so the books
// never go negative.
func (im *impl) StorageWithdraw(ctx ctx.Ctx, p *marketplace.StorageWithdrawParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}

	balance := big.NewInt(0)
	if d, err := im.depositRepo.Get(ctx, p.Caller); err == nil {
		if balance, err = domain.ToAmount(d.Balance); err != nil {
			return err
		}
	} else if err != domain.ErrNotFound {
		return err
	}

	cnt, err := im.reservationRepo.CountByAccount(ctx, p.Caller)
	if err != nil {
		return err
	}
	unit, _ := domain.ToAmount(domain.StorageCostPerReservation)
	required := new(big.Int).Mul(unit, big.NewInt(int64(cnt)))

	if balance.Cmp(required) < 0 {
		return domain.ErrInsufficientStorage
	}

	excess := new(big.Int).Sub(balance, required)
	if excess.Sign() > 0 {
		im.refund(ctx, p.Caller, excess.String())
	}

	if required.Sign() == 0 {
		if err := im.depositRepo.Remove(ctx, p.Caller); err != nil && err != domain.ErrNotFound {
			return err
		}
		return nil
	}
	return im.depositRepo.Upsert(ctx, &deposit.StorageDeposit{
		Account: p.Caller,
		Balance: required.String(),
	})
}

func (im *impl) StorageMinimumBalance(ctx ctx.Ctx) string {
	return domain.StorageCostPerReservation
}

func (im *impl) StorageBalanceOf(ctx ctx.Ctx, account domain.AccountId) (string, error) {
	d, err := im.depositRepo.Get(ctx, account)
	if err == domain.ErrNotFound {
		return "0", nil
	} else if err != nil {
		return "", err
	}
	return d.Balance, nil
}

// GetSupplyByOwner reports the account's active reservations, listings and
// standing offers alike. It is the same count the storage quota check uses.
func (im *impl) GetSupplyByOwner(ctx ctx.Ctx, account domain.AccountId) (int, error) {
	return im.reservationRepo.CountByAccount(ctx, account)
}
