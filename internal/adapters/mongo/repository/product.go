package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alessok/devops-proyecto-final/internal/adapters/mongo/document"
	"github.com/alessok/devops-proyecto-final/internal/adapters/outbox"
	"github.com/alessok/devops-proyecto-final/internal/core/domain"
	"github.com/alessok/devops-proyecto-final/internal/core/logger"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
	db                *mongo.Database
	collection        *mongo.Collection
	outbox            outbox.Repository
	tx                port.TransactionManager
	lowStockThreshold int
}

func NewProductRepository(db *mongo.Database, outbox outbox.Repository, tx port.TransactionManager, lowStockThreshold int) port.ProductPort {
	baseRepo := NewBaseRepository[document.ProductDocument](db, "products")

	repo := &ProductRepository{
		BaseRepository:    baseRepo,
		db:                db,
		collection:        db.Collection("products"),
		outbox:            outbox,
		tx:                tx,
		lowStockThreshold: lowStockThreshold,
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		logger.Error(context.Background(), "failed to create indexes", err, map[string]any{
			"collection": "products",
		})
	}

	return repo
}

func (r *ProductRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category_id", Value: 1}},
			Options: options.Index().SetUnique(false),
		},
		{
			Keys:    bson.D{{Key: "stock_quantity", Value: 1}},
			Options: options.Index().SetUnique(false),
		},
		{
			Keys:    bson.D{{Key: "is_active", Value: 1}},
			Options: options.Index().SetUnique(false),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProductRepository) insertOutbox(ctx context.Context, event domain.Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.outbox.Insert(ctx, outbox.Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  eventData,
	})
}

func (r *ProductRepository) Insert(ctx context.Context, product *domain.Product) error {
	if product.ID != 0 {
		return errors.New("cannot create product with existing ID")
	}

	id, err := nextSequence(ctx, r.db, "products")
	if err != nil {
		return err
	}

	product.ID = domain.ID(id)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	doc := document.ToProductDocument(product)

	return r.tx.WithTransaction(ctx, func(sessCtx context.Context) error {
		if _, err := r.collection.InsertOne(sessCtx, doc); err != nil {
			return parseError(err)
		}
		return r.insertOutbox(sessCtx, domain.NewProductCreatedEvent(product))
	})
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindOne(ctx, bson.M{"_id": int64(id)})
	if err != nil {
		return nil, err
	}
	return doc.ToDomain(), nil
}

func (r *ProductRepository) List(ctx context.Context, offset, limit int64) ([]*domain.Product, error) {
	opts := options.Find().
		SetSkip(offset).
		SetLimit(limit).
		SetSort(bson.D{{Key: "_id", Value: 1}})

	docs, err := r.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.ToDomain()
	}
	return products, nil
}

func (r *ProductRepository) UpdateAtomic(ctx context.Context, id domain.ID, merge func(*domain.Product) error) (*domain.Product, error) {
	var updated *domain.Product

	err := r.tx.WithTransaction(ctx, func(sessCtx context.Context) error {
		var doc document.ProductDocument
		if err := r.collection.FindOne(sessCtx, bson.M{"_id": int64(id)}).Decode(&doc); err != nil {
			return parseError(err)
		}

		product := doc.ToDomain()
		if err := merge(product); err != nil {
			return err
		}
		product.UpdatedAt = time.Now()

		replacement := document.ToProductDocument(product)
		if _, err := r.collection.ReplaceOne(sessCtx, bson.M{"_id": int64(id)}, replacement); err != nil {
			return parseError(err)
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.tx.WithTransaction(ctx, func(sessCtx context.Context) error {
		result, err := r.collection.DeleteOne(sessCtx, bson.M{"_id": int64(id)})
		if err != nil {
			return parseError(err)
		}
		if result.DeletedCount == 0 {
			return serviceerrors.NewNotFoundError("entity not found")
		}
		return r.insertOutbox(sessCtx, domain.NewProductDeletedEvent(id, time.Now()))
	})
}

// AdjustStock applies the delta with a conditional update so the stock never
// drops below zero, no matter how many callers race on the same product.
func (r *ProductRepository) AdjustStock(ctx context.Context, id domain.ID, delta int) (*domain.Product, error) {
	filter := bson.M{"_id": int64(id)}
	if delta < 0 {
		filter["stock_quantity"] = bson.M{"$gte": -delta}
	}

	update := bson.M{
		"$inc": bson.M{"stock_quantity": delta},
		"$set": bson.M{"updated_at": time.Now()},
	}

	return r.mutateStock(ctx, id, filter, update, func(before *document.ProductDocument) int {
		return before.StockQuantity + delta
	})
}

func (r *ProductRepository) SetStock(ctx context.Context, id domain.ID, quantity int) (*domain.Product, error) {
	update := bson.M{
		"$set": bson.M{"stock_quantity": quantity, "updated_at": time.Now()},
	}

	return r.mutateStock(ctx, id, bson.M{"_id": int64(id)}, update, func(*document.ProductDocument) int {
		return quantity
	})
}

func (r *ProductRepository) mutateStock(
	ctx context.Context,
	id domain.ID,
	filter bson.M,
	update bson.M,
	newStock func(before *document.ProductDocument) int,
) (*domain.Product, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var updated *domain.Product
	err := r.tx.WithTransaction(ctx, func(sessCtx context.Context) error {
		var before document.ProductDocument
		err := r.collection.FindOneAndUpdate(sessCtx, filter, update, opts).Decode(&before)
		if errors.Is(err, mongo.ErrNoDocuments) {
			// distinguish "missing" from "condition failed"
			if err := r.collection.FindOne(sessCtx, bson.M{"_id": int64(id)}).Err(); err != nil {
				return parseError(err)
			}
			return serviceerrors.NewInvalidOperationError("insufficient stock")
		}
		if err != nil {
			return parseError(err)
		}

		product := before.ToDomain()
		product.StockQuantity = newStock(&before)
		product.UpdatedAt = time.Now()

		event := domain.NewProductStockChangedEvent(id, before.StockQuantity, product.StockQuantity, product.UpdatedAt)
		if err := r.insertOutbox(sessCtx, event); err != nil {
			return err
		}

		if product.StockQuantity <= r.lowStockThreshold && before.StockQuantity > r.lowStockThreshold {
			lowStock := domain.NewProductLowStockEvent(id, product.StockQuantity, r.lowStockThreshold, product.UpdatedAt)
			if err := r.insertOutbox(sessCtx, lowStock); err != nil {
				return err
			}
		}

		updated = product
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Aggregate computes the snapshot in one pipeline pass over active products,
// so the counts and the total value always describe the same set of rows.
func (r *ProductRepository) Aggregate(ctx context.Context, lowStockThreshold int) (*domain.InventoryStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"is_active": true}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":            nil,
			"total_products": bson.M{"$sum": 1},
			"total_value": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$price", "$stock_quantity"},
			}},
			"low_stock_count": bson.M{"$sum": bson.M{
				"$cond": bson.A{
					bson.M{"$lte": bson.A{"$stock_quantity", lowStockThreshold}},
					1,
					0,
				},
			}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, parseError(err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		TotalProducts int64 `bson:"total_products"`
		TotalValue    int64 `bson:"total_value"`
		LowStockCount int64 `bson:"low_stock_count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, parseError(err)
	}

	if len(results) == 0 {
		return &domain.InventoryStats{}, nil
	}

	return &domain.InventoryStats{
		TotalProducts: results[0].TotalProducts,
		TotalValue:    domain.Amount(results[0].TotalValue),
		LowStockCount: results[0].LowStockCount,
	}, nil
}

func (r *ProductRepository) FindLowStock(ctx context.Context, threshold int) ([]*domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "stock_quantity", Value: 1}, {Key: "_id", Value: 1}})

	docs, err := r.Find(ctx, bson.M{"stock_quantity": bson.M{"$lte": threshold}}, opts)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.ToDomain()
	}
	return products, nil
}
