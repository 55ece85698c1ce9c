package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alessok/devops-proyecto-final/internal/adapters/mongo/document"
	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
)

type CategoryRepository struct {
	*BaseRepository[document.CategoryDocument]
	db         *mongo.Database
	collection *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) port.CategoryPort {
	return &CategoryRepository{
		BaseRepository: NewBaseRepository[document.CategoryDocument](db, "categories"),
		db:             db,
		collection:     db.Collection("categories"),
	}
}

func (r *CategoryRepository) Insert(ctx context.Context, category *domain.Category) error {
	if category.ID != 0 {
		return errors.New("cannot create category with existing ID")
	}

	id, err := nextSequence(ctx, r.db, "categories")
	if err != nil {
		return err
	}

	category.ID = domain.ID(id)
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt

	if _, err := r.collection.InsertOne(ctx, document.ToCategoryDocument(category)); err != nil {
		return parseError(err)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Category, error) {
	doc, err := r.FindOne(ctx, bson.M{"_id": int64(id)})
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	docs, err := r.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	categories := make([]*domain.Category, len(docs))
	for i, doc := range docs {
		categories[i] = doc.ToDomain()
	}
	return categories, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.DeleteByID(ctx, int64(id))
}

func (r *CategoryRepository) Exists(ctx context.Context, id domain.ID) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"_id": int64(id)}).Err()
	if err == nil {
		return true, nil
	}
	if serviceerrors.IsOfKind(parseError(err), serviceerrors.KindNotFound) {
		return false, nil
	}
	return false, parseError(err)
}
