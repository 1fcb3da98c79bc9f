package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"crypto-pulse/internal/delivery/http"
	"crypto-pulse/internal/delivery/telegram"
	"crypto-pulse/internal/repository"
	"crypto-pulse/internal/service"
	"crypto-pulse/pkg/utils"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run crypto-pulse",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(
		appDep.cfg,
		appDep.log,
		repo,
		appDep.cache,
		appDep.telegram,
	)

	telegramHandler := telegram.NewTelegramBotHandler(
		ctx,
		appDep.cfg,
		appDep.log,
		appDep.telegramBot,
		appDep.telegram,
		services,
		appDep.cache,
	)

	httpHandler := http.NewHttpAPIHandler(ctx, appDep.echo, appDep.log, appDep.validator, services, telegramHandler)

	apiServer := NewHTTPServer(ctx, appDep, httpHandler)
	go func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	go func() {
		telegramHandler.Start()
	}()

	appDep.telegram.StartCleanupExpired(ctx)

	utils.GoSafe(func() {
		services.NotifierService.Run(ctx)
	}).Run()

	if err := services.NewsService.StartScheduler(ctx); err != nil {
		appDep.log.Error("Failed to start news scheduler")
		log.Fatalf("Failed to start news scheduler: %v", err)
	}

	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	services.NewsService.StopScheduler()
	appDep.telegram.StopCleanupExpired()
	telegramHandler.Stop()

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
