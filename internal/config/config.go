// Package config carga la configuración del servicio desde config.yaml y
// permite pisar cualquier valor con variables de entorno (12-factor friendly).
//
// Precedencia: env > yaml > defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config es el árbol completo de configuración del proceso.
type Config struct {
	App struct {
		Env      string `yaml:"env"`       // dev | prod
		LogLevel string `yaml:"log_level"` // debug | info | warn | error
	} `yaml:"app"`

	Server struct {
		Addr               string   `yaml:"addr"`
		PublicURL          string   `yaml:"public_url"`
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"server"`

	Storage struct {
		Driver   string `yaml:"driver"` // postgres | memory
		Postgres struct {
			DSN             string `yaml:"dsn"`
			MaxConns        int    `yaml:"max_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		Kind  string `yaml:"kind"` // memory | redis
		Redis struct {
			Addr   string `yaml:"addr"`
			DB     int    `yaml:"db"`
			Prefix string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    string `yaml:"ttl"`
	} `yaml:"jwt"`

	Telegram struct {
		Enabled     bool   `yaml:"enabled"`
		BotToken    string `yaml:"bot_token"`
		AdminChatID int64  `yaml:"admin_chat_id"`
		FrontendURL string `yaml:"frontend_url"`
	} `yaml:"telegram"`

	OTP struct {
		TTL string `yaml:"ttl"`
	} `yaml:"otp"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		OTP     struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"otp"`
	} `yaml:"rate"`

	Uploads struct {
		Dir string `yaml:"dir"`
	} `yaml:"uploads"`
}

// Load lee el yaml en path (opcional: path vacío o archivo inexistente arranca
// de defaults), aplica defaults, pisa con env y valida.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	// sane defaults
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Storage.Postgres.MaxConns == 0 {
		c.Storage.Postgres.MaxConns = 10
	}
	if c.Storage.Postgres.ConnMaxLifetime == "" {
		c.Storage.Postgres.ConnMaxLifetime = "30m"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "telemart"
	}
	if c.JWT.TTL == "" {
		c.JWT.TTL = "168h" // 7d
	}
	if c.OTP.TTL == "" {
		c.OTP.TTL = "5m"
	}
	if c.Rate.OTP.Limit == 0 {
		c.Rate.OTP.Limit = 5
	}
	if c.Rate.OTP.Window == "" {
		c.Rate.OTP.Window = "1m"
	}
	if c.Uploads.Dir == "" {
		c.Uploads.Dir = "uploads"
	}

	c.applyEnvOverrides()

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// applyEnvOverrides: pisa config.yaml con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = strings.ToLower(v)
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("SERVER_PUBLIC_URL"); ok {
		c.Server.PublicURL = v
	}
	if v, ok := getEnvCSV("SERVER_CORS_ALLOWED_ORIGINS"); ok {
		c.Server.CORSAllowedOrigins = v
	}

	// STORAGE
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("POSTGRES_DSN"); ok {
		c.Storage.Postgres.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_CONNS"); ok {
		c.Storage.Postgres.MaxConns = v
	}
	if v, ok := getEnvStr("POSTGRES_CONN_MAX_LIFETIME"); ok {
		c.Storage.Postgres.ConnMaxLifetime = v
	}

	// CACHE
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}

	// JWT
	if v, ok := getEnvStr("JWT_SECRET"); ok {
		c.JWT.Secret = v
	}
	if v, ok := getEnvStr("JWT_TTL"); ok {
		c.JWT.TTL = v
	}

	// TELEGRAM
	if v, ok := getEnvBool("TELEGRAM_ENABLED"); ok {
		c.Telegram.Enabled = v
	}
	if v, ok := getEnvStr("TELEGRAM_BOT_TOKEN"); ok {
		c.Telegram.BotToken = v
		c.Telegram.Enabled = true
	}
	if v, ok := getEnvInt64("TELEGRAM_ADMIN_CHAT_ID"); ok {
		c.Telegram.AdminChatID = v
	}
	if v, ok := getEnvStr("TELEGRAM_FRONTEND_URL"); ok {
		c.Telegram.FrontendURL = v
	}

	// OTP
	if v, ok := getEnvStr("OTP_TTL"); ok {
		c.OTP.TTL = v
	}

	// RATE
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_OTP_LIMIT"); ok {
		c.Rate.OTP.Limit = v
	}
	if v, ok := getEnvStr("RATE_OTP_WINDOW"); ok {
		c.Rate.OTP.Window = v
	}

	// UPLOADS
	if v, ok := getEnvStr("UPLOADS_DIR"); ok {
		c.Uploads.Dir = v
	}
}

// Validate chequea coherencia interna; los valores de duración se validan acá
// para fallar al arranque y no en el primer request.
func (c *Config) Validate() error {
	switch c.App.Env {
	case "dev", "prod":
	default:
		return fmt.Errorf("config: app.env %q inválido (dev|prod)", c.App.Env)
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: storage.driver %q inválido (postgres|memory)", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && c.Storage.Postgres.DSN == "" {
		return fmt.Errorf("config: storage.postgres.dsn requerido con driver postgres")
	}
	switch c.Cache.Kind {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: cache.kind %q inválido (memory|redis)", c.Cache.Kind)
	}
	if c.Cache.Kind == "redis" && c.Cache.Redis.Addr == "" {
		return fmt.Errorf("config: cache.redis.addr requerido con kind redis")
	}
	for _, f := range []struct{ name, val string }{
		{"jwt.ttl", c.JWT.TTL},
		{"otp.ttl", c.OTP.TTL},
		{"rate.otp.window", c.Rate.OTP.Window},
		{"storage.postgres.conn_max_lifetime", c.Storage.Postgres.ConnMaxLifetime},
	} {
		if _, err := time.ParseDuration(f.val); err != nil {
			return fmt.Errorf("config: %s %q no es una duración válida", f.name, f.val)
		}
	}
	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("config: telegram.bot_token requerido con telegram habilitado")
	}
	return nil
}

// IsProd reporta si el proceso corre en modo producción.
func (c *Config) IsProd() bool { return c.App.Env == "prod" }

// JWTTTL retorna la ventana de validez de los tokens de sesión ya parseada.
func (c *Config) JWTTTL() time.Duration { return mustDur(c.JWT.TTL) }

// OTPTTL retorna la vigencia de los códigos OTP ya parseada.
func (c *Config) OTPTTL() time.Duration { return mustDur(c.OTP.TTL) }

// OTPRateWindow retorna la ventana del rate limit de OTP ya parseada.
func (c *Config) OTPRateWindow() time.Duration { return mustDur(c.Rate.OTP.Window) }

// PostgresConnMaxLifetime retorna la vida máxima de una conexión del pool.
func (c *Config) PostgresConnMaxLifetime() time.Duration {
	return mustDur(c.Storage.Postgres.ConnMaxLifetime)
}

// mustDur asume que Validate ya corrió; un valor ilegible acá es un bug.
func mustDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(fmt.Sprintf("config: duración inválida %q pasó la validación", s))
	}
	return d
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvInt64(key string) (int64, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvCSV(key string) ([]string, bool) {
	if s, ok := getEnvStr(key); ok {
		if strings.TrimSpace(s) == "" {
			return []string{}, true
		}
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, true
	}
	return nil, false
}
