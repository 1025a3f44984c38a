package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/officecorner/hr-system/internal/core/domain"
)

const accountCollection = "accounts"

// AccountRepository implements ports.AccountRepository using MongoDB.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type mongoGoogleIdentity struct {
	GoogleID string `bson:"google_id"`
	Picture  string `bson:"picture,omitempty"`
}

type mongoAccount struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	Username     string               `bson:"username"`
	Email        string               `bson:"email"`
	PasswordHash string               `bson:"password_hash,omitempty"`
	Role         string               `bson:"role"`
	Status       string               `bson:"status"`
	Name         string               `bson:"name,omitempty"`
	Phone        string               `bson:"phone,omitempty"`
	Address      string               `bson:"address,omitempty"`
	Department   string               `bson:"department,omitempty"`
	Google       *mongoGoogleIdentity `bson:"google,omitempty"`

	ApprovedAt      *time.Time `bson:"approved_at,omitempty"`
	ApprovedBy      string     `bson:"approved_by,omitempty"`
	RejectedAt      *time.Time `bson:"rejected_at,omitempty"`
	RejectedBy      string     `bson:"rejected_by,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toMongoAccount(a *domain.Account) mongoAccount {
	doc := mongoAccount{
		Username:        a.Username,
		Email:           a.Email,
		PasswordHash:    a.PasswordHash,
		Role:            string(a.Role),
		Status:          string(a.Status),
		Name:            a.Profile.Name,
		Phone:           a.Profile.Phone,
		Address:         a.Profile.Address,
		Department:      a.Department,
		ApprovedAt:      a.ApprovedAt,
		ApprovedBy:      a.ApprovedBy,
		RejectedAt:      a.RejectedAt,
		RejectedBy:      a.RejectedBy,
		RejectionReason: a.RejectionReason,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.Google != nil {
		doc.Google = &mongoGoogleIdentity{GoogleID: a.Google.GoogleID, Picture: a.Google.Picture}
	}
	return doc
}

func (m mongoAccount) toDomain() *domain.Account {
	a := &domain.Account{
		ID:           m.ID.Hex(),
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		Status:       domain.AccountStatus(m.Status),
		Profile: domain.Profile{
			Name:    m.Name,
			Phone:   m.Phone,
			Address: m.Address,
		},
		Department:      m.Department,
		ApprovedAt:      m.ApprovedAt,
		ApprovedBy:      m.ApprovedBy,
		RejectedAt:      m.RejectedAt,
		RejectedBy:      m.RejectedBy,
		RejectionReason: m.RejectionReason,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Google != nil {
		a.Google = &domain.GoogleIdentity{GoogleID: m.Google.GoogleID, Picture: m.Google.Picture}
	}
	return a
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	res, err := r.coll.InsertOne(ctx, toMongoAccount(account))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "username") {
				return nil, domain.ErrUsernameTaken
			}
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := *account
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	oid, err := primitive.ObjectIDFromHex(account.ID)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	doc := toMongoAccount(account)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AccountRepository) FindByGoogleID(ctx context.Context, googleID string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"google.google_id": googleID})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return doc.toDomain(), nil
}

func roleStatusFilter(role domain.Role, status domain.AccountStatus) bson.M {
	filter := bson.M{}
	if role != "" {
		filter["role"] = string(role)
	}
	if status != "" {
		filter["status"] = string(status)
	}
	return filter
}

func (r *AccountRepository) ListByRoleAndStatus(ctx context.Context, role domain.Role, status domain.AccountStatus) ([]*domain.Account, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, roleStatusFilter(role, status), opts)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []*domain.Account
	for cursor.Next(ctx) {
		var doc mongoAccount
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, doc.toDomain())
	}
	return accounts, cursor.Err()
}

func (r *AccountRepository) CountByRoleAndStatus(ctx context.Context, role domain.Role, status domain.AccountStatus) (int64, error) {
	return r.coll.CountDocuments(ctx, roleStatusFilter(role, status))
}

// EnsureIndexes creates the unique constraints accounts rely on.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
