package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	authad "vungtau_stay/internal/adapters/auth"
	server "vungtau_stay/internal/adapters/http_server"
	"vungtau_stay/internal/adapters/mailer"
	"vungtau_stay/internal/adapters/observability"
	"vungtau_stay/internal/adapters/payment"
	"vungtau_stay/internal/adapters/qrimg"
	redisad "vungtau_stay/internal/adapters/redis"
	"vungtau_stay/internal/app"
	"vungtau_stay/internal/shared"
	mysqlrepo "vungtau_stay/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	sessions := authad.NewSessions(cfg.JWTSecret, cfg.TokenTTL)
	sim := payment.NewSimulator(cfg.PaymentDelay)
	mail := mailer.New(cfg.MailBase, cfg.MailKey, cfg.MailFrom)
	qr := qrimg.New(cfg.QRBase, 5)
	pay := payment.NewDirectory(
		cfg.BankName, cfg.BankCode, cfg.BankAccount, cfg.BankHolder,
		cfg.MomoPhone, cfg.MomoHolder, int(cfg.PaymentWindow.Seconds()),
	)

	q := app.NewQueryService(repo, repo, cache, cfg.CacheTTL)
	discounts := app.NewDiscountService(repo)
	notifier := app.NewNotifierService(repo, repo, mail)
	bookings := app.NewBookingService(repo, repo, discounts, sim, notifier)
	handlers := &server.Handlers{
		Q:         q,
		Auth:      app.NewAuthService(repo, sessions),
		Bookings:  bookings,
		Discounts: discounts,
		Reviews:   app.NewReviewService(repo, q),
		Profiles:  app.NewProfileService(repo),
		Notifier:  notifier,
		Pay:       pay,
		QR:        qr,
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers, sessions)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
