// telemart es el backend de la tienda sobre Telegram: API HTTP + bot.
//
//	telemart serve             levanta la API y el bot
//	telemart migrate           aplica las migraciones de postgres
//	telemart seed              carga datos de demostración
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/telemart/internal/approval"
	"github.com/dropDatabas3/telemart/internal/artifacts"
	"github.com/dropDatabas3/telemart/internal/auth/otp"
	"github.com/dropDatabas3/telemart/internal/auth/revocation"
	"github.com/dropDatabas3/telemart/internal/auth/token"
	"github.com/dropDatabas3/telemart/internal/bot"
	"github.com/dropDatabas3/telemart/internal/cache"
	"github.com/dropDatabas3/telemart/internal/config"
	"github.com/dropDatabas3/telemart/internal/domain/repository"
	"github.com/dropDatabas3/telemart/internal/http/server"
	"github.com/dropDatabas3/telemart/internal/observability/logger"
	"github.com/dropDatabas3/telemart/internal/observability/metrics"
	"github.com/dropDatabas3/telemart/internal/rate"
	"github.com/dropDatabas3/telemart/internal/store"
	"github.com/dropDatabas3/telemart/internal/store/memory"
	"github.com/dropDatabas3/telemart/internal/store/pg"
	migrations "github.com/dropDatabas3/telemart/migrations/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	rdb "github.com/redis/go-redis/v9"
)

var version = "dev"

func main() {
	// .env opcional; las variables del sistema siempre ganan sobre el yaml.
	_ = godotenv.Load()

	var cfgPath string

	root := &cobra.Command{
		Use:           "telemart",
		Short:         "Backend de la tienda sobre Telegram",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "ruta del archivo de configuración")

	root.AddCommand(serveCmd(&cfgPath), migrateCmd(&cfgPath), seedCmd(&cfgPath))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "telemart",
		Version:     version,
	})
	return cfg, nil
}

func serveCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP y el bot de Telegram",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
}

func runServe(parent context.Context, cfg *config.Config) error {
	log := logger.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Persistencia ─────────────────────────────────────────────────────
	var (
		st   store.Store
		pool *pgxpool.Pool
		ping func(context.Context) error
	)
	switch cfg.Storage.Driver {
	case "postgres":
		pgStore, err := pg.New(ctx, cfg.Storage.Postgres.DSN, pg.Config{
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			ConnMaxLifetime: cfg.PostgresConnMaxLifetime(),
		})
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		if ran, err := pgStore.Migrate(ctx, migrations.FS); err != nil {
			return fmt.Errorf("migrate: %w", err)
		} else if len(ran) > 0 {
			log.Info("migrations applied", logger.Int("count", len(ran)))
		}
		st = pgStore
		pool = pgStore.Pool()
		ping = pool.Ping
	default:
		st = memory.New()
	}
	defer st.Close()

	// ── Cache (códigos OTP, tokens revocados, rate limit) ────────────────
	cch := cache.New(cache.Config{
		Kind:   cfg.Cache.Kind,
		Addr:   cfg.Cache.Redis.Addr,
		DB:     cfg.Cache.Redis.DB,
		Prefix: cfg.Cache.Redis.Prefix,
	})
	defer func() { _ = cch.Close() }()

	// ── Autenticación ────────────────────────────────────────────────────
	secret := cfg.JWT.Secret
	if secret == "" {
		secret = token.DevSecret
	}
	issuer := token.NewIssuer(secret, token.WithTTL(cfg.JWTTTL()))
	if issuer.UsesDevSecret() {
		log.Warn("using development JWT secret, set JWT_SECRET in production")
	}
	codes := otp.NewStore(cch, otp.WithTTL(cfg.OTPTTL()))
	revoked := revocation.NewRegistry(cch, issuer.RemainingTTL)

	// ── Artifacts ────────────────────────────────────────────────────────
	files, err := artifacts.NewStore(cfg.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("init uploads dir: %w", err)
	}

	// ── Canal de Telegram ────────────────────────────────────────────────
	var channel approval.Channel = bot.Noop{}
	var tg *bot.Telegram
	if cfg.Telegram.Enabled {
		tg, err = bot.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.FrontendURL)
		if err != nil {
			return fmt.Errorf("connect telegram: %w", err)
		}
		channel = tg
		log.Info("telegram channel ready", logger.String("bot", tg.Username()))
	} else {
		log.Warn("telegram disabled, otp codes and notifications will be dropped")
	}

	approvalSvc := approval.NewService(st.Sellers(), st.Users(), files, channel, cfg.Telegram.AdminChatID)

	// ── Rate limiting ────────────────────────────────────────────────────
	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		if cfg.Cache.Kind == "redis" {
			client := rdb.NewClient(&rdb.Options{Addr: cfg.Cache.Redis.Addr, DB: cfg.Cache.Redis.DB})
			limiter = rate.NewRedisLimiter(client, cfg.Cache.Redis.Prefix+":rate:otp", cfg.Rate.OTP.Limit, cfg.OTPRateWindow())
		} else {
			limiter = rate.NewMemoryLimiter(cfg.Rate.OTP.Limit, cfg.OTPRateWindow())
		}
	}

	// ── Métricas ─────────────────────────────────────────────────────────
	metricsHandler, err := metrics.Register(metrics.Config{
		Pool: func() *pgxpool.Pool { return pool },
	})
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	// ── HTTP server ──────────────────────────────────────────────────────
	srv := server.New(server.Deps{
		Config:     cfg,
		Store:      st,
		Artifacts:  files,
		Codes:      codes,
		Tokens:     issuer,
		Revoked:    revoked,
		Sender:     channel,
		Approval:   approvalSvc,
		OTPLimiter: limiter,
		Metrics:    metricsHandler,
		Ping:       ping,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if tg != nil {
		dispatcher := bot.NewDispatcher(st.Users(), approvalSvc)
		g.Go(func() error {
			if err := tg.Run(gctx, dispatcher); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

func migrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones pendientes de postgres",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("migrate requiere storage.driver=postgres (actual: %s)", cfg.Storage.Driver)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			st, err := pg.New(ctx, cfg.Storage.Postgres.DSN, pg.Config{
				MaxConns:        cfg.Storage.Postgres.MaxConns,
				ConnMaxLifetime: cfg.PostgresConnMaxLifetime(),
			})
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer st.Close()

			ran, err := st.Migrate(ctx, migrations.FS)
			if err != nil {
				return err
			}
			if len(ran) == 0 {
				fmt.Println("nada que aplicar: el esquema está al día")
				return nil
			}
			for _, v := range ran {
				fmt.Printf("aplicada %04d\n", v)
			}
			return nil
		},
	}
}

func seedCmd(cfgPath *string) *cobra.Command {
	var (
		ownerTelegramID string
		adminTelegramID string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga categorías y productos de demostración",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*cfgPath)
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != "postgres" {
				return fmt.Errorf("seed requiere storage.driver=postgres (actual: %s)", cfg.Storage.Driver)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			st, err := pg.New(ctx, cfg.Storage.Postgres.DSN, pg.Config{
				MaxConns:        cfg.Storage.Postgres.MaxConns,
				ConnMaxLifetime: cfg.PostgresConnMaxLifetime(),
			})
			if err != nil {
				return fmt.Errorf("connect postgres: %w", err)
			}
			defer st.Close()

			if _, err := st.Migrate(ctx, migrations.FS); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			return runSeed(ctx, st, ownerTelegramID, adminTelegramID)
		},
	}
	cmd.Flags().StringVar(&ownerTelegramID, "owner-telegram-id", "1000001", "telegram id del vendedor demo dueño del catálogo")
	cmd.Flags().StringVar(&adminTelegramID, "admin-telegram-id", "", "telegram id de un usuario existente a promover a admin")
	return cmd
}

func runSeed(ctx context.Context, st store.Store, ownerTelegramID, adminTelegramID string) error {
	if adminTelegramID != "" {
		u, err := st.Users().GetByTelegramID(ctx, adminTelegramID)
		if err != nil {
			if repository.IsNotFound(err) {
				return fmt.Errorf("no existe un usuario con telegram id %s; debe iniciar el bot con /start primero", adminTelegramID)
			}
			return fmt.Errorf("lookup admin: %w", err)
		}
		if err := st.Users().UpdateRole(ctx, u.ID, repository.RoleAdmin); err != nil {
			return fmt.Errorf("promote admin: %w", err)
		}
		fmt.Printf("usuario %s promovido a admin\n", adminTelegramID)
	}

	existing, err := st.Categories().List(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	if len(existing) > 0 {
		fmt.Println("nada que sembrar: el catálogo ya tiene datos")
		return nil
	}

	owner, err := st.Users().Upsert(ctx, repository.UpsertUserInput{
		TelegramID: ownerTelegramID,
		FirstName:  "Demo",
		LastName:   "Seller",
	})
	if err != nil {
		return fmt.Errorf("upsert demo owner: %w", err)
	}
	if err := st.Users().UpdateRole(ctx, owner.ID, repository.RoleOwner); err != nil {
		return fmt.Errorf("promote demo owner: %w", err)
	}

	type demoProduct struct {
		name        string
		description string
		price       float64
		stock       int
	}
	demo := []struct {
		category string
		products []demoProduct
	}{
		{"Almacén", []demoProduct{
			{"Yerba mate 1kg", "Yerba con palo, estacionada.", 3500, 40},
			{"Aceite de girasol 900ml", "Primera prensada.", 2100, 25},
		}},
		{"Bebidas", []demoProduct{
			{"Agua mineral 2L", "Sin gas.", 900, 60},
			{"Jugo de naranja 1L", "Exprimido, sin azúcar agregada.", 1800, 15},
		}},
		{"Limpieza", []demoProduct{
			{"Detergente 750ml", "Concentrado, aroma limón.", 1500, 30},
		}},
	}

	var products int
	for _, d := range demo {
		cat, err := st.Categories().Create(ctx, repository.CreateCategoryInput{
			Name:   d.category,
			UserID: owner.ID,
		})
		if err != nil {
			return fmt.Errorf("create category %q: %w", d.category, err)
		}
		for _, p := range d.products {
			if _, err := st.Products().Create(ctx, repository.CreateProductInput{
				CategoryID:  cat.ID,
				Name:        p.name,
				Description: p.description,
				Price:       p.price,
				Stock:       p.stock,
				UserID:      owner.ID,
			}); err != nil {
				return fmt.Errorf("create product %q: %w", p.name, err)
			}
			products++
		}
	}
	fmt.Printf("sembradas %d categorías y %d productos (vendedor demo: telegram id %s)\n", len(demo), products, ownerTelegramID)
	return nil
}
