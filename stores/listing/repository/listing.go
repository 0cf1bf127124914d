package repository

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/astromart/goledger/base/ctx"
	"github.com/astromart/goledger/base/database/mongoclient"
	"github.com/astromart/goledger/base/log"
	"github.com/astromart/goledger/domain"
	"github.com/astromart/goledger/domain/listing"
	"github.com/astromart/goledger/service/query"
)

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{q}
}

func (im *listingRepoImpl) makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, int, int, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, 0, 0, err
	}
	query := bson.M{}

	if options.Owner != nil {
		query["ownerId"] = *options.Owner
	}

	if options.Registry != nil {
		query["registryId"] = *options.Registry
	}

	if options.IsAuction != nil {
		query["isAuction"] = *options.IsAuction
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

func (im *listingRepoImpl) FindOne(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := listing.Listing{}
	err = im.q.FindOne(ctx, domain.TableListings, qry, &res)
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

func (im *listingRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	query, offset, limit, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	res := []*listing.Listing{}
	err = im.q.Search(ctx, domain.TableListings, offset, limit, "_id", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *listingRepoImpl) Count(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	query, _, _, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableListings, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *listingRepoImpl) Upsert(ctx ctx.Ctx, l *listing.Listing) error {
	id := l.ToId()
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Upsert(ctx, domain.TableListings, selector, l)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"listing":  *l,
		}).Error("failed to q.Upsert")
		return err
	}
	return nil
}

func (im *listingRepoImpl) Remove(ctx ctx.Ctx, id listing.Id) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Remove(ctx, domain.TableListings, selector)
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
