package usecase

import (
	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/marketplace"
	"github.com/astromart/goledger/domain/settings"
)

func (im *impl) SetTreasury(ctx ctx.Ctx, p *marketplace.SetTreasuryParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}
	cfg, err := im.requireOwner(ctx, p.Caller)
	if err != nil {
		return err
	}

	cfg.Treasury = p.Treasury
	return im.settingsRepo.Upsert(ctx, cfg)
}

func (im *impl) SetTransactionFee(ctx ctx.Ctx, p *marketplace.SetTransactionFeeParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}
	cfg, err := im.requireOwner(ctx, p.Caller)
	if err != nil {
		return err
	}

	if p.FeeBps >= 10000 {
		return domain.ErrFeeOutOfRange
	}

	cfg.TransactionFeeBps = p.FeeBps
	return im.settingsRepo.Upsert(ctx, cfg)
}

func (im *impl) TransferOwnership(ctx ctx.Ctx, p *marketplace.TransferOwnershipParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}
	cfg, err := im.requireOwner(ctx, p.Caller)
	if err != nil {
		return err
	}

	if p.Owner.IsEmpty() {
		return domain.ErrBadParamInput
	}

	cfg.Owner = p.Owner
	return im.settingsRepo.Upsert(ctx, cfg)
}

func (im *impl) AddApprovedRegistries(ctx ctx.Ctx, p *marketplace.ApprovedAccountsParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}
	cfg, err := im.requireOwner(ctx, p.Caller)
	if err != nil {
		return err
	}

	cfg.ApprovedRegistries = mergeAccounts(cfg.ApprovedRegistries, p.Accounts)
	return im.settingsRepo.Upsert(ctx, cfg)
}

func (im *impl) RemoveApprovedRegistries(ctx ctx.Ctx, p *marketplace.ApprovedAccountsParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}
	cfg, err := im.requireOwner(ctx, p.Caller)
	if err != nil {
		return err
	}

	cfg.ApprovedRegistries = removeAccounts(cfg.ApprovedRegistries, p.Accounts)
	return im.settingsRepo.Upsert(ctx, cfg)
}

func (im *impl) AddApprovedCurrencies(ctx ctx.Ctx, p *marketplace.ApprovedAccountsParams) error {
	im.mu.Lock()
	defer im.mu.Unlock()

	if err := assertOneUnit(p.Deposit); err != nil {
		return err
	}
	cfg, err := im.requireOwner(ctx, p.Caller)
	if err != nil {
		return err
	}

	cfg.ApprovedCurrencies = mergeAccounts(cfg.ApprovedCurrencies, p.Accounts)
	return im.settingsRepo.Upsert(ctx, cfg)
}

func (im *impl) GetSettings(ctx ctx.Ctx) (*settings.Settings, error) {
	return im.getSettings(ctx)
}

func mergeAccounts(current, add []domain.AccountId) []domain.AccountId {
	seen := map[domain.AccountId]bool{}
	for _, a := range current {
		seen[a] = true
	}
	for _, a := range add {
		if a.IsEmpty() || seen[a] {
			continue
		}
		seen[a] = true
		current = append(current, a)
	}
	return current
}

func removeAccounts(current, remove []domain.AccountId) []domain.AccountId {
	drop := map[domain.AccountId]bool{}
	for _, a := range remove {
		drop[a] = true
	}
	kept := current[:0]
	for _, a := range current {
		if !drop[a] {
			kept = append(kept, a)
		}
	}
	return kept
}
