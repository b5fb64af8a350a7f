package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"costumes_back_end/internal/config"
	"costumes_back_end/internal/database"
	"costumes_back_end/internal/handlers"
	"costumes_back_end/internal/models"
	"costumes_back_end/internal/realtime"
	"costumes_back_end/internal/routes"
	"costumes_back_end/internal/services"
	"costumes_back_end/internal/store"
	"costumes_back_end/internal/utils"
)

func main() {
	config.Load()
	cfg := config.FromEnv()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	storage := database.OpenOrMemory(ctx, cfg.Storage)

	hub := realtime.NewHub(cfg.CORSOrigins)
	s := store.New(ctx, storage,
		store.WithNotifier(services.MultiNotifier{services.LogNotifier{}, hub}),
		store.WithTimeout(cfg.Storage.Timeout),
	)
	hub.Attach(s)

	index, err := services.NewProductIndex(cfg.Elastic)
	if err != nil {
		log.Printf("❌ %v", err)
	}
	if index.Enabled() {
		reindex := index.Follow(ctx, s.Products)
		s.Subscribe(func(ev store.Event) {
			if services.ReindexOn(ev) {
				reindex()
			}
		})
	}

	mailer := services.NewMailer(cfg.SMTP)
	if mailer != nil {
		s.SubscribeOrders(func(o models.Order) {
			go mailer.SendOrderConfirmation(o)
		})
	}

	if cfg.JWTSecret == "" {
		log.Println("⚠️ JWT_SECRET manquant : tableau de bord admin désactivé")
	}

	h := &handlers.Handler{
		Store:          s,
		Index:          index,
		Mailer:         mailer,
		Hub:            hub,
		Admin:          utils.AdminCredentials{Hash: cfg.AdminPasswordHash, Password: cfg.AdminPassword},
		JWTSecret:      cfg.JWTSecret,
		WhatsAppNumber: cfg.WhatsAppNumber,
	}

	r := gin.Default()
	routes.RegisterRoutes(r, h, cfg.CORSOrigins)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	server.RegisterOnShutdown(func() {
		log.Println("🛑 Fermeture des connexions WebSocket...")
		hub.Close()
	})

	go func() {
		log.Println("🚀 Serveur boutique lancé sur le port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Erreur serveur: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Arrêt demandé, fermeture propre...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Arrêt forcé: %v", err)
	}
	stop()
	if err := storage.Close(); err != nil {
		log.Printf("❌ Fermeture stockage: %v", err)
	}
	log.Println("✅ Serveur arrêté")
}
