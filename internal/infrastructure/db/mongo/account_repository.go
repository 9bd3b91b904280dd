package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shopmanagement/portal/internal/core/domain"
	"github.com/shopmanagement/portal/internal/core/ports"
)

const (
	accountCollection = "accounts"
	counterCollection = "counters"
)

type MongoAccountRepository struct {
	coll     *mongo.Collection
	counters *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *MongoAccountRepository {
	return &MongoAccountRepository{
		coll:     db.Collection(accountCollection),
		counters: db.Collection(counterCollection),
	}
}

var _ ports.AccountRepository = (*MongoAccountRepository)(nil)

type mongoAccount struct {
	ID                     int64  `bson:"_id"`
	Username               string `bson:"username"`
	Email                  string `bson:"email"`
	MobileNumber           string `bson:"mobile_number,omitempty"`
	PasswordHash           string `bson:"password_hash"`
	Role                   string `bson:"role"`
	Verified               bool   `bson:"verified"`
	PasswordChangeRequired bool   `bson:"password_change_required"`
	TemporaryPassword      bool   `bson:"temporary_password"`
	LastPasswordChange     int64  `bson:"last_password_change,omitempty"`
	CreatedAt              int64  `bson:"created_at"`
	UpdatedAt              int64  `bson:"updated_at"`
}

// EnsureIndexes creates the unique indexes Create relies on for duplicate
// detection.
func (r *MongoAccountRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}
	return nil
}

func (r *MongoAccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	doc := toMongoAccount(account)
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return fromMongoAccount(doc), nil
}

func (r *MongoAccountRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.Account, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
		bson.M{"mobile_number": identifier},
	}}
	var doc mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return fromMongoAccount(doc), nil
}

func (r *MongoAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	doc := toMongoAccount(account)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": account.ID}, doc)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// nextID draws the next account id from the counters collection.
func (r *MongoAccountRepository) nextID(ctx context.Context) (int64, error) {
	var out struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": accountCollection},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("next account id: %w", err)
	}
	return out.Seq, nil
}

func toMongoAccount(a *domain.Account) mongoAccount {
	doc := mongoAccount{
		ID:                     a.ID,
		Username:               a.Username,
		Email:                  a.Email,
		MobileNumber:           a.MobileNumber,
		PasswordHash:           a.PasswordHash,
		Role:                   a.Role.String(),
		Verified:               a.Verified,
		PasswordChangeRequired: a.PasswordChangeRequired,
		TemporaryPassword:      a.TemporaryPassword,
		CreatedAt:              a.CreatedAt.Unix(),
		UpdatedAt:              a.UpdatedAt.Unix(),
	}
	if a.LastPasswordChange != nil {
		doc.LastPasswordChange = a.LastPasswordChange.Unix()
	}
	return doc
}

func fromMongoAccount(doc mongoAccount) *domain.Account {
	a := &domain.Account{
		ID:                     doc.ID,
		Username:               doc.Username,
		Email:                  doc.Email,
		MobileNumber:           doc.MobileNumber,
		PasswordHash:           doc.PasswordHash,
		Role:                   domain.ParseRole(doc.Role),
		Verified:               doc.Verified,
		PasswordChangeRequired: doc.PasswordChangeRequired,
		TemporaryPassword:      doc.TemporaryPassword,
		CreatedAt:              unixToTime(doc.CreatedAt),
		UpdatedAt:              unixToTime(doc.UpdatedAt),
	}
	if doc.LastPasswordChange != 0 {
		t := unixToTime(doc.LastPasswordChange)
		a.LastPasswordChange = &t
	}
	return a
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
