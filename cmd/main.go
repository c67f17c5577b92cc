package main

import (
	"log"

	"github.com/elidrum/Nutrease/config"
	"github.com/elidrum/Nutrease/controllers"
	"github.com/elidrum/Nutrease/routes"
	"github.com/elidrum/Nutrease/services"
)

func main() {
	config.InitDB()
	settings := config.LoadSettings()

	// The catalog is loaded once and shared by reference; an unusable
	// dataset means no entry can ever resolve, so refuse to start.
	catalog, err := services.LoadCatalog(settings.DatasetPath)
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}
	log.Printf("catalog loaded: %d foods from %s", catalog.Len(), settings.DatasetPath)

	resolver := services.NewResolver(catalog, settings.MatchThreshold)
	hub := services.NewRealtimeHub()
	alerts := services.NewAlertService(config.DB, hub)
	diary := services.NewDiaryService(config.DB, resolver, services.NutrientThresholds{
		Lactose:  settings.LactoseThresholdG,
		Sorbitol: settings.SorbitolThresholdG,
		Gluten:   settings.GlutenThresholdG,
	})
	connections := services.NewConnectionService(config.DB, alerts)
	access := services.NewAccessService(config.DB)
	chat := services.NewChatService(config.DB, access, hub, alerts)

	r := routes.SetupRouter(routes.Controllers{
		Food:         controllers.NewFoodController(catalog),
		Diary:        controllers.NewDiaryController(diary),
		Connection:   controllers.NewConnectionController(connections),
		Chat:         controllers.NewChatController(chat),
		Specialist:   controllers.NewSpecialistController(access, diary),
		Notification: controllers.NewNotificationController(diary, alerts),
		Realtime:     controllers.NewRealtimeController(hub),
	})
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
