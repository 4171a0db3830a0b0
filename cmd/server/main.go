package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/Quandz11/hotel-booking-sub001/internal/config"     // Internal config loader
	"github.com/Quandz11/hotel-booking-sub001/internal/database"   // MySQL connection helper
	"github.com/Quandz11/hotel-booking-sub001/internal/handler"    // HTTP handlers
	"github.com/Quandz11/hotel-booking-sub001/internal/middleware" // rate limit + cache middleware
	"github.com/Quandz11/hotel-booking-sub001/internal/payment"    // payment gateway adapter
	"github.com/Quandz11/hotel-booking-sub001/internal/queue"      // notification events
	"github.com/Quandz11/hotel-booking-sub001/internal/repository" // DB repositories
	"github.com/Quandz11/hotel-booking-sub001/internal/router"     // route registration
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the one connection pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	hotels := repository.NewHotelRepo(db)
	rooms := repository.NewRoomTypeRepo(db)
	bookings := repository.NewBookingRepo(db)
	reviews := repository.NewReviewRepo(db)

	// One adapter instance per configured gateway, keyed by the payment
	// method stored on bookings.
	gateways := map[string]*payment.Gateway{
		"VNPAY": payment.New(payment.Config{
			Endpoint:     cfg.VNPay.Endpoint,
			MerchantCode: cfg.VNPay.MerchantCode,
			HashSecret:   cfg.VNPay.HashSecret,
			ReturnURL:    cfg.VNPay.ReturnURL,
		}),
		"MOMO": payment.New(payment.Config{
			Endpoint:     cfg.MoMo.Endpoint,
			MerchantCode: cfg.MoMo.MerchantCode,
			HashSecret:   cfg.MoMo.HashSecret,
			ReturnURL:    cfg.MoMo.ReturnURL,
		}),
	}

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(hotels, rooms, reviews, bookings)
	bookingH := handler.NewBookingHandler(users, hotels, rooms, bookings)
	paymentH := handler.NewPaymentHandler(users, hotels, rooms, bookings, gateways)
	ownerH := handler.NewOwnerHandler(hotels, rooms, bookings)
	reviewH := handler.NewReviewHandler(bookings, reviews, hotels)

	e := echo.New() // Create Echo instance

	// Redis-backed rate limiting on everything; response cache on the
	// public browse group.  Both degrade to pass-through when Redis is
	// down.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e) // health check
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, cache)
	router.RegisterCustomer(e, bookingH, paymentH, reviewH, cfg.JWTSecret)
	router.RegisterOwner(e, ownerH, cfg.JWTSecret)
	router.RegisterPayment(e, paymentH)

	// Background consumer turning booking events into notification lines.
	go func() {
		if err := queue.StartNotificationConsumer(); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
