package providerRepo

import (
	"context"
	"errors"

	"carelink/database"
	"carelink/models"
	"carelink/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no provider matches the query.
var ErrNotFound = errors.New("provider not found")

// ProviderRepository is the profile store for caregivers, including their
// weekly availability templates.
type ProviderRepository interface {
	Create(ctx context.Context, provider *models.Provider) error
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetByEmail(ctx context.Context, email string) (*models.Provider, error)
	Update(ctx context.Context, provider *models.Provider) error
	UpdateFields(ctx context.Context, id string, updates map[string]interface{}) (*models.Provider, error)
	SetWeeklyTemplate(ctx context.Context, id string, tpl models.WeeklyTemplate, granularityMin int) error
	Delete(ctx context.Context, id string) error
}

type mongoProviderRepo struct {
	coll *mongo.Collection
}

// NewMongoProviderRepo constructs a new MongoDB ProviderRepository.
func NewMongoProviderRepo() ProviderRepository {
	db := database.MongoClient.Database("carelink")
	repo := &mongoProviderRepo{
		coll: db.Collection("providers"),
	}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("provider repo: ensure indexes", zap.Error(err))
	}
	return repo
}
