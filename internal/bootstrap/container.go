package bootstrap

import (
	"log"

	"notevault-be/internal/config"
	"notevault-be/internal/controller"
	"notevault-be/internal/pkg/logger"
	"notevault-be/internal/repository/unitofwork"
	"notevault-be/internal/service"

	pktNats "notevault-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	NoteController  controller.INoteController
	ShareController controller.IShareController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS is optional infrastructure; the API keeps serving without it.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.ActivityTopicName)
	consumerService := service.NewConsumerService(pubSub, cfg.App.ActivityTopicName, sysLogger)

	directoryService := service.NewDirectoryService(uowFactory)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret)
	noteService := service.NewNoteService(uowFactory, publisherService, natsPub, sysLogger)
	shareService := service.NewShareService(uowFactory, directoryService, natsPub, sysLogger)

	// 4. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		NoteController:  controller.NewNoteController(noteService),
		ShareController: controller.NewShareController(shareService),

		ConsumerService: consumerService,
	}
}
