package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CacheTTL    time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	// Payment simulation
	PaymentDelay  time.Duration
	PaymentWindow time.Duration // advisory countdown on transfer screens
	BankName      string
	BankCode      string
	BankAccount   string
	BankHolder    string
	MomoPhone     string
	MomoHolder    string
	QRBase        string

	// Mail provider (Resend-style HTTP API)
	MailBase string
	MailKey  string
	MailFrom string

	// Seeder
	SeedFile    string
	SeedWorkers int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/vungtau?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		JWTSecret: env("JWT_SECRET", ""),
		TokenTTL:  time.Duration(atoi("TOKEN_TTL_MINUTES", 60*24)) * time.Minute,

		PaymentDelay:  time.Duration(atoi("PAYMENT_DELAY_MS", 2000)) * time.Millisecond,
		PaymentWindow: time.Duration(atoi("PAYMENT_WINDOW_SECONDS", 600)) * time.Second,
		BankName:      env("BANK_NAME", "Vietcombank"),
		BankCode:      env("BANK_CODE", "970436"),
		BankAccount:   env("BANK_ACCOUNT", "1023630921"),
		BankHolder:    env("BANK_HOLDER", "NGUYEN VAN TRUONG"),
		MomoPhone:     env("MOMO_PHONE", "0901234567"),
		MomoHolder:    env("MOMO_HOLDER", "NGUYEN VAN A"),
		QRBase:        env("QR_BASE_URL", "https://img.vietqr.io/image"),

		MailBase: env("MAIL_BASE_URL", "https://api.resend.com"),
		MailKey:  env("MAIL_API_KEY", ""),
		MailFrom: env("MAIL_FROM", "Vung Tau Stay <bookings@vungtaustay.vn>"),

		SeedFile:    env("SEED_FILE", "seed/vungtau.json"),
		SeedWorkers: atoi("SEED_WORKERS", 8),
	}
	if c.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is empty")
	}
	if c.MailKey == "" {
		log.Warn().Msg("MAIL_API_KEY is empty; confirmation emails will fail")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
