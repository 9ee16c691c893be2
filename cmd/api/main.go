package main

import (
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const refreshTTL = 30 * 24 * time.Hour

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// .env is a dev convenience, absence is fine
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	gormDB, err := db.Connect()
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}

	if err := migrate(gormDB); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	// repositories
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	groupRepo := infraRepo.NewGroupGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	menuRepo := infraRepo.NewMenuItemGormRepository(gormDB)
	cartRepo := infraRepo.NewCartLineGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// usecases
	policy := usecase.NewAccessPolicy(groupRepo)
	authValidator := validator.NewAuthValidator(userRepo)
	authUC := usecase.NewAuthUsecase(cfg, userRepo, rtRepo, authValidator)
	menuUC := usecase.NewMenuUsecase(menuRepo, categoryRepo, policy)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, policy)
	cartUC := usecase.NewCartUsecase(cartRepo, menuRepo)
	orderUC := usecase.NewOrderUsecase(txManager, policy, groupRepo)
	groupUC := usecase.NewGroupUsecase(groupRepo, userRepo, policy)

	// handlers
	h := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC, refreshTTL),
		Menu:     handler.NewMenuHandler(menuUC),
		Category: handler.NewCategoryHandler(categoryUC),
		Cart:     handler.NewCartHandler(cartUC),
		Order:    handler.NewOrderHandler(orderUC),
		Group:    handler.NewGroupHandler(groupUC, groupRepo),
	}

	e := server.New(cfg, userRepo, h)

	log.WithField("port", cfg.Port).Info("server starting")
	if err := server.Start(e, cfg); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Category{},
		&model.MenuItem{},
		&model.CartLine{},
		&model.Order{},
		&model.OrderItem{},
		&model.RefreshToken{},
	); err != nil {
		return err
	}

	// the two staff roles always exist
	for _, name := range []string{model.GroupManager, model.GroupDeliveryCrew} {
		g := model.Group{Name: name}
		if err := gormDB.Where("name = ?", name).FirstOrCreate(&g).Error; err != nil {
			return err
		}
	}

	return nil
}
