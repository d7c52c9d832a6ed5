package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"triviasnake/internal/config"
	"triviasnake/internal/model"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDatabase)
	adventureColl := db.Collection("adventures")

	now := time.Now()
	adventure := model.Adventure{
		ID:          uuid.New().String(),
		Name:        "General Knowledge Starter Pack",
		Description: "A warm-up quiz covering geography, space, nature, art and chemistry.",
		Questions: []model.Question{
			{
				Text:          "What is the capital of France?",
				Options:       []string{"London", "Berlin", "Paris", "Madrid"},
				CorrectAnswer: "Paris",
			},
			{
				Text:          "Which planet is known as the Red Planet?",
				Options:       []string{"Venus", "Mars", "Jupiter", "Saturn"},
				CorrectAnswer: "Mars",
			},
			{
				Text:          "What is the largest mammal in the world?",
				Options:       []string{"African Elephant", "Blue Whale", "Giraffe", "Hippopotamus"},
				CorrectAnswer: "Blue Whale",
			},
			{
				Text:          "Who painted the Mona Lisa?",
				Options:       []string{"Vincent van Gogh", "Pablo Picasso", "Leonardo da Vinci", "Michelangelo"},
				CorrectAnswer: "Leonardo da Vinci",
			},
			{
				Text:          "What is the chemical symbol for gold?",
				Options:       []string{"Au", "Ag", "Fe", "Cu"},
				CorrectAnswer: "Au",
			},
		},
		CreatedBy:          "seed",
		Genre:              "General Knowledge",
		VerificationStatus: model.VerificationVerified,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	for _, q := range adventure.Questions {
		if err := q.Validate(); err != nil {
			log.Fatalf("Seed question %q is invalid: %v", q.Text, err)
		}
	}

	result, err := adventureColl.InsertOne(ctx, adventure)
	if err != nil {
		log.Fatalf("Failed to insert adventure: %v", err)
	}

	fmt.Printf("Seeded adventure %v with %d questions\n", result.InsertedID, len(adventure.Questions))
}
