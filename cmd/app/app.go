package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nexuspump/nexuspump-api/internal/api"
	"github.com/nexuspump/nexuspump-api/internal/config"
	"github.com/nexuspump/nexuspump-api/internal/db"
	"github.com/nexuspump/nexuspump-api/internal/logger"
	"github.com/nexuspump/nexuspump-api/internal/repository"
	"github.com/nexuspump/nexuspump-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	repo := repository.NewRegistryRepository(dao.NewRegistryDAO(postgresDB))
	if err = repo.EnsureFeeSink(context.Background(), conf.Market.FeeRecipient); err != nil {
		return fmt.Errorf("failed to initialize fee sink -> %w", err)
	}

	s, err := api.NewServer(conf, postgresDB)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
