package databases

// go generate: mockery --name SignupVerificationDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gaurav-singhh/LocaLinkBackend/models"
)

const signupVerificationCollectionName = "signupverifications"

// SignupVerificationDatabase contains the methods to use with the
// signupVerification collection
type SignupVerificationDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.SignupVerification, error)
	InsertOne(ctx context.Context, verification models.SignupVerification) (*models.SignupVerification, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error
	DeleteCreatedBefore(ctx context.Context, cutoff interface{}) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type signupVerificationDatabase struct {
	db DatabaseHelper
}

// NewSignupVerificationDatabase initializes a new instance of signupVerification database with the provided db connection
func NewSignupVerificationDatabase(db DatabaseHelper) SignupVerificationDatabase {
	return &signupVerificationDatabase{
		db: db,
	}
}

func (c *signupVerificationDatabase) FindOne(ctx context.Context, filter interface{}) (*models.SignupVerification, error) {
	verification := &models.SignupVerification{}
	err := c.db.Collection(signupVerificationCollectionName).FindOne(ctx, filter).Decode(verification)
	if err != nil {
		return nil, err
	}
	return verification, nil
}

func (c *signupVerificationDatabase) InsertOne(ctx context.Context, verification models.SignupVerification) (*models.SignupVerification, error) {
	res, err := c.db.Collection(signupVerificationCollectionName).InsertOne(ctx, verification)
	if err != nil {
		return nil, err
	}
	if id, ok := res.Decode().(primitive.ObjectID); ok {
		verification.ID = id
	}
	return &verification, nil
}

func (c *signupVerificationDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) error {
	_, err := c.db.Collection(signupVerificationCollectionName).UpdateOne(ctx, filter, update, opts...)
	return err
}

func (c *signupVerificationDatabase) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) error {
	return c.db.Collection(signupVerificationCollectionName).DeleteOne(ctx, filter, opts...)
}

// DeleteCreatedBefore removes pending records created before the cutoff.
// Covers deployments where the TTL monitor lags or is disabled.
func (c *signupVerificationDatabase) DeleteCreatedBefore(ctx context.Context, cutoff interface{}) (int64, error) {
	return c.db.Collection(signupVerificationCollectionName).DeleteMany(ctx, bson.M{"createdAt": bson.M{"$lt": cutoff}})
}

// EnsureIndexes creates the 24 hour TTL index on createdAt, so records are
// auto-purged regardless of verification state.
func (c *signupVerificationDatabase) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "createdAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(86400),
		},
	}
	return c.db.Collection(signupVerificationCollectionName).CreateIndexes(ctx, indexes)
}
