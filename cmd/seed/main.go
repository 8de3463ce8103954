package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"surveypulse/internal/config"
	"surveypulse/internal/model"
	"surveypulse/internal/repository"
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

	db := client.Database(cfg.MongoDB)

	userRepo := repository.NewUserRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create response indexes: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}

	adminID, err := userRepo.Create(ctx, admin)
	if err != nil {
		log.Printf("Admin user not created (may already exist): %v", err)
	} else {
		fmt.Printf("Created admin user %s (admin@example.com / admin123)\n", adminID)
	}

	survey := &model.Survey{
		Title:       "Product Feedback",
		Description: "Help us understand how you use the product and what to improve.",
		CreatedBy:   adminID,
		Questions: []model.Question{
			{
				ID:       "q_overall",
				Type:     model.QuestionTypeSingle,
				Text:     "How satisfied are you with the product overall?",
				Options:  []string{"Very satisfied", "Satisfied", "Neutral", "Dissatisfied"},
				Required: true,
			},
			{
				ID:      "q_features",
				Type:    model.QuestionTypeMultiple,
				Text:    "Which features do you use regularly?",
				Options: []string{"Dashboard", "Reports", "Integrations", "Mobile app"},
			},
			{
				ID:       "q_improve",
				Type:     model.QuestionTypeText,
				Text:     "What is the one thing you would improve?",
				Required: true,
			},
		},
	}

	surveyID, err := surveyRepo.Create(ctx, survey)
	if err != nil {
		log.Fatalf("Failed to create survey: %v", err)
	}
	fmt.Printf("Created survey %s (%q)\n", surveyID, survey.Title)
}
