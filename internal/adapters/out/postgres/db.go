package postgres

import (
	"fmt"

	"workorders/internal/adapters/out/postgres/notificationrepo"
	"workorders/internal/adapters/out/postgres/paymentrepo"
	"workorders/internal/adapters/out/postgres/workerrepo"
	"workorders/internal/adapters/out/postgres/workorderrepo"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite"
)

// ConnectionSettings selects and addresses the database.
type ConnectionSettings struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SslMode    string
	SqlitePath string
}

func (s ConnectionSettings) postgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		s.Host, s.Port, s.User, s.Password, s.Name, s.SslMode)
}

// Open connects with the configured driver. An empty driver means postgres.
func Open(s ConnectionSettings) (*gorm.DB, error) {
	config := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	switch s.Driver {
	case "", DriverPostgres:
		return gorm.Open(postgres.Open(s.postgresDSN()), config)
	case DriverSqlite:
		path := s.SqlitePath
		if path == "" {
			path = "workorders.db"
		}
		db, err := gorm.Open(sqlite.Open(path), config)
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer; a single connection queues the rest
		// instead of failing them with "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", s.Driver)
	}
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&workerrepo.WorkerDTO{},
		&workorderrepo.WorkOrderDTO{},
		&paymentrepo.PaymentRecordDTO{},
		&notificationrepo.NotificationDTO{},
	)
}
