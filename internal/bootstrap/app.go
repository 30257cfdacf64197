package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"gopherblog/internal/app"
	"gopherblog/internal/config"
	"gopherblog/internal/mail"
	"gopherblog/internal/model"
	"gopherblog/internal/pkg/hashutil"
	"gopherblog/internal/pkg/jwtutil"
	mysqlClient "gopherblog/internal/platform/mysql"
	rabbitmqClient "gopherblog/internal/platform/rabbitmq"
	redisClient "gopherblog/internal/platform/redis"
	"gopherblog/internal/ratelimit"
	"gopherblog/internal/worker"
)

// App owns every long-lived resource. UserDB and BlogDB are separate pools
// and never share a connection. Redis and MQConn are nil when disabled.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	UserDB *gorm.DB
	BlogDB *gorm.DB
	Redis  *redis.Client
	MQConn *amqp.Connection

	Signer     *jwtutil.Signer
	Hasher     *hashutil.Bcrypt
	Notifier   app.Notifier
	Throttle   app.ResetThrottle
	MailWorker *worker.MailWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	a := &App{
		Config:    cfg,
		Logger:    NewLogger(cfg.App),
		Hasher:    hashutil.NewBcrypt(cfg.Auth.BcryptCost),
		StartedAt: time.Now(),
	}
	if err := a.init(ctx); err != nil {
		if closeErr := a.Close(); closeErr != nil {
			a.Logger.Warn("release partially started resources failed", slog.Any("error", closeErr))
		}
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config

	signer, err := jwtutil.NewSigner(jwtutil.Config{
		Secret: cfg.Auth.JWTSecret,
		TTL:    cfg.JWTExpiration(),
	})
	if err != nil {
		return fmt.Errorf("build token signer failed: %w", err)
	}
	a.Signer = signer

	if a.UserDB, err = openDatabase(ctx, "user", cfg.UserDB, &model.User{}); err != nil {
		return err
	}
	if a.BlogDB, err = openDatabase(ctx, "blog", cfg.BlogDB, &model.Blog{}); err != nil {
		return err
	}

	window := cfg.RateLimitWindow()
	if cfg.Redis.Enabled {
		if a.Redis, err = redisClient.New(ctx, cfg.Redis); err != nil {
			return err
		}
		a.Throttle = ratelimit.NewRedisLimiter(a.Redis, cfg.RateLimit.ForgotPerWindow, window)
	} else {
		a.Throttle = ratelimit.NewMemoryLimiter(cfg.RateLimit.ForgotPerWindow, window)
	}

	var direct mail.Sender
	if cfg.Mail.SendGridAPIKey != "" {
		direct = mail.NewSendGridSender(cfg.Mail.SendGridAPIKey, cfg.Mail.FromName, cfg.Mail.FromAddress)
	} else {
		a.Logger.Warn("sendgrid api key not set, reset links are logged instead of mailed")
		direct = mail.NewLogSender(a.Logger)
	}

	sender := direct
	if cfg.RabbitMQ.Enabled {
		if a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MailQueue); err != nil {
			return err
		}
		a.MailWorker = worker.NewMailWorker(a.MQConn, direct, cfg.RabbitMQ.MailQueue, a.Logger)
		if err := a.MailWorker.Start(ctx); err != nil {
			return fmt.Errorf("start mail worker failed: %w", err)
		}
		sender = rabbitmqClient.NewMailPublisher(a.MQConn, cfg.RabbitMQ.MailQueue)
	}
	a.Notifier = mail.NewResetMailer(sender, cfg.Mail.ResetURLBase)

	return nil
}

func openDatabase(ctx context.Context, name string, cfg config.MySQLConfig, models ...interface{}) (*gorm.DB, error) {
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, fmt.Errorf("build %s dsn failed: %w", name, err)
	}
	db, err := mysqlClient.New(ctx, name, dsn, mysqlClient.DefaultPool)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(models...); err != nil {
		_ = mysqlClient.Close(db)
		return nil, fmt.Errorf("auto migrate %s tables failed: %w", name, err)
	}
	return db, nil
}

// NewLogger builds the JSON logger shared by handlers and workers.
func NewLogger(cfg config.AppConfig) *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(cfg.Env, "dev") {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", cfg.Name))
}

func (a *App) Close() error {
	var errs []error
	if a.MailWorker != nil {
		a.MailWorker.Close()
	}
	if a.MQConn != nil && !a.MQConn.IsClosed() {
		if err := a.MQConn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close rabbitmq failed: %w", err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis failed: %w", err))
		}
	}
	if err := mysqlClient.Close(a.UserDB); err != nil {
		errs = append(errs, fmt.Errorf("close user db failed: %w", err))
	}
	if err := mysqlClient.Close(a.BlogDB); err != nil {
		errs = append(errs, fmt.Errorf("close blog db failed: %w", err))
	}
	return errors.Join(errs...)
}
