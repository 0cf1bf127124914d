package mongoclient

import (
	"context"
	"crypto/tls"
	"runtime"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/astromart/goledger/base/log"
)

const (
	mgSocketTimeout = 60 * time.Second
)

// Client wraps mongo.Client
type Client struct {
	DbName string
	*mongo.Client
}

// MustConnectMongoClient returns a connected client or panics
func MustConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) *Client {
	cli, err := ConnectMongoClient(uri, authDBName, dbName, ssl, setSafe, poolSizeMultiplier)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Panic("fail to dial Mongo")
	}
	return cli
}

// ConnectMongoClient returns a mongo driver client
func ConnectMongoClient(uri, authDBName, dbName string, ssl, setSafe bool, poolSizeMultiplier float64) (*Client, error) {
	ctx := context.Background()
	connSetting, err := connstring.Parse(uri)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "dbName": dbName, "err": err}).Error("fail to parse connstring")
		return nil, err
	}

	clientOpts := options.Client()
	clientOpts.ApplyURI(uri)
	clientOpts.SetSocketTimeout(mgSocketTimeout)

	// if AuthSource is not in the connstring, fall back to authDBName
	if connSetting.Username != "" && connSetting.AuthSource == "" {
		clientOpts.SetAuth(options.Credential{
			AuthMechanism:           connSetting.AuthMechanism,
			AuthMechanismProperties: connSetting.AuthMechanismProperties,
			Username:                connSetting.Username,
			Password:                connSetting.Password,
			PasswordSet:             connSetting.PasswordSet,
			AuthSource:              authDBName,
		})
	}

	// each host has its own connection pool, so divide by host count
	poolSize := int(float64(runtime.NumCPU()) * poolSizeMultiplier)
	poolSize = (poolSize + len(connSetting.Hosts) - 1) / len(connSetting.Hosts)
	clientOpts.SetMinPoolSize(uint64(poolSize / 4))
	clientOpts.SetMaxPoolSize(uint64(poolSize))

	if ssl {
		clientOpts.SetTLSConfig(&tls.Config{})
	}

	if setSafe {
		clientOpts.SetWriteConcern(writeconcern.New(writeconcern.WMajority()))
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Error("fail to connect mongo")
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Log().WithFields(log.Fields{"mongoURI": uri, "err": err}).Error("fail to ping mongo")
		return nil, err
	}

	return &Client{DbName: dbName, Client: client}, nil
}

// IsDupErr reports whether err is a unique index violation
func IsDupErr(err error) bool {
	var we mongo.WriteException
	if !asWriteException(err, &we) {
		return false
	}
	for _, e := range we.WriteErrors {
		if e.Code == 11000 {
			return true
		}
	}
	return false
}

func asWriteException(err error, target *mongo.WriteException) bool {
	we, ok := err.(mongo.WriteException)
	if ok {
		*target = we
	}
	return ok
}

// Collection returns the named collection of the configured database
func (c *Client) Collection(name string) *mongo.Collection {
	return c.Database(c.DbName).Collection(name)
}

// EnsureIndexes creates the given index models on a collection
func (c *Client) EnsureIndexes(ctx context.Context, collection string, indexes []mongo.IndexModel) error {
	if len(indexes) == 0 {
		return nil
	}
	_, err := c.Collection(collection).Indexes().CreateMany(ctx, indexes)
	return err
}

// DropAll removes every document of a collection, test helper
func (c *Client) DropAll(ctx context.Context, collection string) error {
	_, err := c.Collection(collection).DeleteMany(ctx, bson.M{})
	return err
}
