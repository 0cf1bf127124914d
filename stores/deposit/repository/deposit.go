package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/deposit"
	"github.com/astromart/goledger/service/query"
)

type depositRepoImpl struct {
	q query.Mongo
}

func NewDepositRepo(q query.Mongo) deposit.Repo {
	return &depositRepoImpl{q}
}

func (im *depositRepoImpl) Get(ctx ctx.Ctx, account domain.AccountId) (*deposit.StorageDeposit, error) {
	selector := bson.M{"accountId": account}

	res := deposit.StorageDeposit{}
	err := im.q.FindOne(ctx, domain.TableStorageDeposits, selector, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"accountId": account,
		}).Error("failed to q.FindOne")
		return nil, err
	}
	return &res, nil
}

func (im *depositRepoImpl) Upsert(ctx ctx.Ctx, d *deposit.StorageDeposit) error {
	selector := bson.M{"accountId": d.Account}

	err := im.q.Upsert(ctx, domain.TableStorageDeposits, selector, d)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"deposit": *d,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *depositRepoImpl) Remove(ctx ctx.Ctx, account domain.AccountId) error {
	selector := bson.M{"accountId": account}

	err := im.q.Remove(ctx, domain.TableStorageDeposits, selector)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"accountId": account,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}
