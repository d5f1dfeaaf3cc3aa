package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/usermgmt/user-management-api/internal/core/domain"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

const collectionUsers = "users"

// UserRepository is the MongoDB-backed credential store. The unique index
// on email is the single serialization point for concurrent registrations:
// the application never takes a lock, the loser of a race simply observes
// a duplicate-key error.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

// userDoc is the persisted document shape. Roles is the document-model
// rendering of the id→role set-membership table.
type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Roles        []string           `bson:"roles"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toDoc(u *domain.User) userDoc {
	return userDoc{
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Roles:        u.Roles,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Roles:        d.Roles,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// storeErr wraps a driver failure so callers can match
// domain.ErrStoreUnavailable without losing the underlying cause.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStoreUnavailable, err))
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toDoc(user)
	doc.ID = primitive.NewObjectID()

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, storeErr("insert user", err)
	}
	return doc.toDomain(), nil
}

// CreateMany persists the batch all-or-nothing: a duplicate email, whether
// inside the batch or against stored records, leaves the collection
// untouched. The pre-check keeps the common conflict cheap; a concurrent
// writer slipping past it trips the unique index instead, and the partial
// ordered insert is then rolled back by id.
func (r *UserRepository) CreateMany(ctx context.Context, users []*domain.User) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	seen := make(map[string]struct{}, len(users))
	emails := make([]string, 0, len(users))
	for _, u := range users {
		if _, dup := seen[u.Email]; dup {
			return nil, domain.ErrEmailTaken
		}
		seen[u.Email] = struct{}{}
		emails = append(emails, u.Email)
	}

	taken, err := r.col.CountDocuments(ctx, bson.M{"email": bson.M{"$in": emails}})
	if err != nil {
		return nil, storeErr("check batch emails", err)
	}
	if taken > 0 {
		return nil, domain.ErrEmailTaken
	}

	docs := make([]interface{}, len(users))
	ids := make([]primitive.ObjectID, len(users))
	out := make([]*domain.User, len(users))
	for i, u := range users {
		doc := toDoc(u)
		doc.ID = primitive.NewObjectID()
		docs[i] = doc
		ids[i] = doc.ID
		out[i] = doc.toDomain()
	}

	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		if delErr := r.removeByIDs(ids); delErr != nil {
			return nil, storeErr("insert users", errors.Join(err, delErr))
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, storeErr("insert users", err)
	}
	return out, nil
}

// removeByIDs deletes the given ids on a fresh context, so cleanup still
// runs when the request context has already been cancelled.
func (r *UserRepository) removeByIDs(ids []primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user by email", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never name a record
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storeErr("find user by id", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, storeErr("list users", err)
	}
	defer cur.Close(ctx)

	return decodeAll(ctx, cur)
}

func (r *UserRepository) FindPage(ctx context.Context, q ports.PageQuery) ([]*domain.User, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, storeErr("count users", err)
	}

	dir := -1
	if q.SortAsc {
		dir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: q.SortField, Value: dir}}).
		SetSkip(int64(q.Page) * int64(q.Size)).
		SetLimit(int64(q.Size))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, storeErr("page users", err)
	}
	defer cur.Close(ctx)

	users, err := decodeAll(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"roles":         user.Roles,
		"updated_at":    user.UpdatedAt,
	}}

	res, err := r.col.UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, storeErr("update user", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr("delete user", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the repository relies on. The unique
// email index enforces the single-writer-wins semantics for registration.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*domain.User, error) {
	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, storeErr("decode user", err)
		}
		users = append(users, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("iterate users", err)
	}
	return users, nil
}
