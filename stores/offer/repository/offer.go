package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/database/mongoclient"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/offer"
	"github.com/astromart/goledger/service/query"
)

type offerRepoImpl struct {
	q query.Mongo
}

func NewOfferRepo(q query.Mongo) offer.Repo {
	return &offerRepoImpl{q}
}

func (im *offerRepoImpl) makeQuery(opts ...offer.FindAllOptionsFunc) (bson.M, int, int, error) {
	options, err := offer.GetFindAllOptions(opts...)
	if err != nil {
		return nil, 0, 0, err
	}
	query := bson.M{}

	if options.Buyer != nil {
		query["buyerId"] = *options.Buyer
	}

	if options.Registry != nil {
		query["registryId"] = *options.Registry
	}

	if options.TokenId != nil {
		query["tokenId"] = *options.TokenId
	}

	offset, limit := 0, 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	return query, offset, limit, nil
}

func (im *offerRepoImpl) FindOne(ctx ctx.Ctx, id offer.Id) (*offer.Offer, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := offer.Offer{}
	err = im.q.FindOne(ctx, domain.TableOffers, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *offerRepoImpl) FindAll(ctx ctx.Ctx, opts ...offer.FindAllOptionsFunc) ([]*offer.Offer, error) {
	query, offset, limit, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	res := []*offer.Offer{}
	err = im.q.Search(ctx, domain.TableOffers, offset, limit, "_id", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *offerRepoImpl) Upsert(ctx ctx.Ctx, o *offer.Offer) error {
	id := o.ToId()
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Upsert(ctx, domain.TableOffers, selector, o)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"offer":    *o,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *offerRepoImpl) Remove(ctx ctx.Ctx, id offer.Id) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Remove(ctx, domain.TableOffers, selector)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
		}).Error("failed to q.Remove")
		return err
	}
	return nil
}
