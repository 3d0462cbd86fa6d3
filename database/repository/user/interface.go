package userRepo

import (
	"context"
	"errors"

	"carelink/database"
	"carelink/models"
	"carelink/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no user matches the query.
var ErrNotFound = errors.New("user not found")

// UserRepository stores client accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
}

type mongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo constructs a new MongoDB UserRepository.
func NewMongoUserRepo() UserRepository {
	db := database.MongoClient.Database("carelink")
	repo := &mongoUserRepo{
		coll: db.Collection("users"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("user repo: ensure indexes", zap.Error(err))
	}
	return repo
}
