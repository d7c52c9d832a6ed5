package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"triviasnake/internal/model"
)

// AdventureRepo handles MongoDB operations for the adventure catalog
type AdventureRepo interface {
	Create(ctx context.Context, adventure *model.Adventure) error
	GetByID(ctx context.Context, id string) (*model.Adventure, error)
	List(ctx context.Context) ([]*model.Adventure, error)
	Update(ctx context.Context, adventure *model.Adventure) error
	Delete(ctx context.Context, id string) (bool, error)
}

type adventureRepo struct {
	collection *mongo.Collection
}

// NewAdventureRepo creates a new adventure repository
func NewAdventureRepo(db *mongo.Database) AdventureRepo {
	return &adventureRepo{
		collection: db.Collection("adventures"),
	}
}

func (r *adventureRepo) Create(ctx context.Context, adventure *model.Adventure) error {
	adventure.CreatedAt = time.Now()
	adventure.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, adventure)
	return err
}

func (r *adventureRepo) GetByID(ctx context.Context, id string) (*model.Adventure, error) {
	var adventure model.Adventure
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&adventure)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &adventure, nil
}

func (r *adventureRepo) List(ctx context.Context) ([]*model.Adventure, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var adventures []*model.Adventure
	if err := cursor.All(ctx, &adventures); err != nil {
		return nil, err
	}
	return adventures, nil
}

func (r *adventureRepo) Update(ctx context.Context, adventure *model.Adventure) error {
	adventure.UpdatedAt = time.Now()

	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": adventure.ID}, adventure)
	return err
}

func (r *adventureRepo) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}
