package mongodb

import (
	"context"
	"errors"

	"github.com/casafinder/listing-service/internal/platform/logger"
	"github.com/casafinder/listing-service/internal/property/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository reads from the users collection kept in sync by the
// account service. The listing service never writes to it.
type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection(collUsers),
		logger:     log,
	}
}

func (r *UserRepository) GetEmailByID(ctx context.Context, userID string) (string, error) {
	var doc struct {
		Email string `bson:"email"`
	}
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}
		r.logger.Error("UserRepository.GetEmailByID: lookup failed", "user_id", userID, "error", err.Error())
		return "", domain.ErrInternal
	}
	return doc.Email, nil
}
