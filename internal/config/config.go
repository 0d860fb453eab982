package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env              string
	Port             string
	DatabaseURL      string
	RedisURL         string   // optional; rate limiting and health ping are skipped when empty
	AdminJWTSecret   string   // ADMIN_JWT_SECRET signs and verifies dashboard bearer tokens
	SendinblueAPIKey string   // SENDINBLUE_API_KEY for submission notification emails (Brevo)
	MailFrom         string   // MAIL_FROM sender address (default noreply@bmsacademy.com)
	ContactEmail     string   // CONTACT_EMAIL operator inbox for contact/enrollment notifications
	AllowedOrigins   []string // ALLOWED_ORIGINS comma-separated CORS allow-list
	VerifyBaseURL    string   // base URL embedded in certificate credential links
	KeepaliveURL     string   // KEEPALIVE_URL self-ping target for the warmup cron
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	return &Config{
		Env:              env,
		Port:             port,
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		RedisURL:         viper.GetString("REDIS_URL"),
		AdminJWTSecret:   viper.GetString("ADMIN_JWT_SECRET"),
		SendinblueAPIKey: viper.GetString("SENDINBLUE_API_KEY"),
		MailFrom:         viper.GetString("MAIL_FROM"),
		ContactEmail:     viper.GetString("CONTACT_EMAIL"),
		AllowedOrigins:   splitOrigins(viper.GetString("ALLOWED_ORIGINS")),
		VerifyBaseURL:    verifyBaseURL(viper.GetString("VERIFY_BASE_URL")),
		KeepaliveURL:     viper.GetString("KEEPALIVE_URL"),
	}, nil
}

func splitOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		// Local Vite dev server plus the production frontend.
		return []string{"http://localhost:5173", "https://bms-two-bay.vercel.app"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func verifyBaseURL(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), "/")
	if s == "" {
		return "https://credentials.bmsacademy.com"
	}
	return s
}
