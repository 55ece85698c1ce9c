package repository

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alessok/devops-proyecto-final/internal/adapters/mongo/document"
	"github.com/alessok/devops-proyecto-final/internal/core/port"
)

type UserRepository struct {
	*BaseRepository[document.UserDocument]
}

func NewUserRepository(db *mongo.Database) port.UserPort {
	return &UserRepository{
		BaseRepository: NewBaseRepository[document.UserDocument](db, "users"),
	}
}
