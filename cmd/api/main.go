package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"backoffice/internal/config"
	"backoffice/internal/handler"
	"backoffice/internal/infra/db"
	infraRepo "backoffice/internal/infra/repository"
	"backoffice/internal/logging"
	"backoffice/internal/server"
	"backoffice/internal/usecase"
	"backoffice/internal/validator"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("backoffice stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	//.envは無くてもよい（環境変数が優先）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	//DB接続
	gormDB, err := db.Connect(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(gormDB) }()

	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.Seed(ctx, gormDB); err != nil {
		return err
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	referenceRepo := infraRepo.NewReferenceGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)

	//Usecase生成
	orderUC := usecase.NewOrderUsecase(txManager, log)
	customerUC := usecase.NewCustomerUsecase(txManager, customerRepo, validator.NewCustomerValidator(), log)
	productUC := usecase.NewProductUsecase(txManager, productRepo, validator.NewProductValidator(), log)
	referenceUC := usecase.NewReferenceUsecase(referenceRepo, log)
	auditUC := usecase.NewAuditUsecase(auditRepo, log)

	//Handler生成
	e := server.New(cfg, log,
		handler.NewOrderHandler(orderUC),
		handler.NewCustomerHandler(customerUC),
		handler.NewProductHandler(productUC),
		handler.NewReferenceHandler(referenceUC),
		handler.NewAuditHandler(auditUC),
	)

	//Server起動（SIGINT/SIGTERMで止める）
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx, e, cfg.Addr(), log)
	})
	return g.Wait()
}
