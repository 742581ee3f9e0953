package storage

import (
	"errors"
	"os"
	"sync"

	"trailiva-backend/internal/config"
	"trailiva-backend/internal/util/logger"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

const uniqueViolationCode = "23505"

var (
	db     *gorm.DB
	dbOnce sync.Once
)

func GetDb() *gorm.DB {
	dbOnce.Do(loadDbConnection)
	return db
}

func loadDbConnection() {
	log := logger.GetLogger()

	connection, err := gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	sqlDB, err := connection.DB()
	if err != nil {
		log.Error("Failed to get database handle", "error", err)
		os.Exit(1)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)

	db = connection
	log.Info("Connected to database")
}

// IsUniqueViolation reports whether err is a Postgres unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}

	return errors.Is(err, gorm.ErrDuplicatedKey)
}
