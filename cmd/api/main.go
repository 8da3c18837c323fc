package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pos/internal/config"
	"pos/internal/handler"
	"pos/internal/infra/db"
	infraRepo "pos/internal/infra/repository"
	"pos/internal/logger"
	"pos/internal/metrics"
	"pos/internal/server"
	"pos/internal/usecase"
	auth "pos/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	if err := config.LoadEnvFile(".env", "../.env"); err != nil {
		panic(err)
	}
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	//DB接続
	gormDB, err := db.Connect(cfg.DSN())
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	operatorRepo := infraRepo.NewOperatorGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	saleRepo := infraRepo.NewSaleGormRepository(gormDB)
	saleItemRepo := infraRepo.NewSaleItemGormRepository(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)

	//メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}
	hasher := auth.NewBcryptPINHasher(12)
	verifier := auth.NewBcryptPINVerifier()
	issuer := auth.NewHS256Issuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	//Usecase生成
	registerUC := auth.NewRegisterOperatorUsecase(operatorRepo, hasher, clock)
	loginUC := auth.NewLoginUsecase(operatorRepo, verifier, issuer, clock)
	terminalUC := usecase.NewTerminalUsecase(productRepo, auditRepo, txm, idGen, log, m)
	catalogUC := usecase.NewCatalogUsecase(productRepo)
	saleUC := usecase.NewSaleUsecase(saleRepo, saleItemRepo, auditRepo)

	//最初の担当者
	if cfg.BootstrapOperatorCode != "" {
		_, err := registerUC.Execute(context.Background(), auth.RegisterOperatorInput{
			Code: cfg.BootstrapOperatorCode,
			PIN:  cfg.BootstrapOperatorPIN,
		})
		switch {
		case err == nil:
			log.Info("bootstrap operator created", zap.String("code", cfg.BootstrapOperatorCode))
		case errors.Is(err, auth.ErrOperatorCodeExists):
		default:
			return err
		}
	}

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(registerUC, loginUC),
		Terminal: handler.NewTerminalHandler(terminalUC),
		Catalog:  handler.NewCatalogHandler(catalogUC),
		Sale:     handler.NewSaleHandler(saleUC),
	}

	//Server起動
	e := server.New(cfg, log, reg, operatorRepo, handlers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Start(ctx, cfg.Addr(), e, log)
}
