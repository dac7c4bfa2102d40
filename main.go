package main

import (
	"context"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"

	"assistantia/controller"
	"assistantia/platform"
	"assistantia/service"
	"assistantia/store"
)

func main() {
	fmt.Println("Server started...")

	cfg, err := platform.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	platform.InitFile("./log", "gin")
	logger := platform.NewAppLogger("./log", "assistantia")

	db, err := platform.InitDB(cfg)
	if err != nil {
		logger.Fatalf("database error: %v", err)
	}
	dataStore := store.NewGormStore(db)

	tokens, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTAlgorithm, cfg.JWTExpiresMinutes)
	if err != nil {
		logger.Fatalf("token service error: %v", err)
	}

	llmClient := platform.NewLLMClient(cfg)
	gateway := service.NewLLMService(llmClient, cfg.LLMModel, cfg.LLMAPIKey, cfg.LLMReadTimeout, logger)

	users := service.NewUserService(dataStore, tokens, nil)
	conversations := service.NewConversationService(dataStore)
	history := service.NewHistoryService(dataStore, conversations)
	chat := service.NewChatService(dataStore, conversations, gateway, cfg.ChatMemoryMessages)
	maintenance := service.NewMaintenanceService(dataStore, service.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
		To:       cfg.DigestTo,
	}, logger)

	r := controller.NewRouter(controller.RouterDependencies{
		Tokens:        tokens,
		Users:         users,
		Auth:          controller.NewAuthController(users, logger),
		UserAdmin:     controller.NewUserController(users, logger),
		Conversations: controller.NewConversationController(conversations, logger),
		History:       controller.NewHistoryController(history, logger),
		Chat:          controller.NewChatController(chat, logger),
		Logger:        logger,
	})

	c := cron.New()
	c.AddFunc("15 3 * * *", func() {
		maintenance.RunDaily(context.Background())
	})
	c.Start()

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
