package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/DRSN-tech/order-backoffice/internal/cfg"
	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const pingTimeout = 5 * time.Second

// ErrDirtySchema — предыдущая миграция упала посередине, нужна ручная правка schema_migrations.
var ErrDirtySchema = errors.New("schema is dirty")

// PgDatabase — пул соединений к базе заказов.
type PgDatabase struct {
	Pool *pgxpool.Pool
	dsn  string
}

// DSN собирает URL подключения. Логин и пароль экранируются.
func DSN(c *cfg.PGDBCfg) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// Connect открывает пул по конфигурации приложения.
func Connect(c *cfg.PGDBCfg) (*PgDatabase, error) {
	return ConnectDSN(DSN(c))
}

// ConnectDSN открывает пул и проверяет, что база отвечает.
func ConnectDSN(dsn string) (*PgDatabase, error) {
	const op = "postgres.ConnectDSN"

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	db := &PgDatabase{Pool: pool, dsn: dsn}
	if err := db.Ping(); err != nil {
		pool.Close()
		return nil, e.Wrap(op, err)
	}

	return db, nil
}

func (db *PgDatabase) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", db.Pool.Config().ConnConfig.Host, err)
	}
	return nil
}

// ConnString нужен тем, кому мало пула: LISTEN держит отдельное соединение.
func (db *PgDatabase) ConnString() string {
	return db.dsn
}

func (db *PgDatabase) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// RunMigrations доводит схему до последней версии из sourceURL (file://db/migrations).
// Возвращает версию схемы после прогона.
func (db *PgDatabase) RunMigrations(log logger.Logger, sourceURL string) (uint, error) {
	const op = "postgres.RunMigrations"

	sqlDB, err := sql.Open("pgx", db.dsn)
	if err != nil {
		return 0, e.Wrap(op, err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		sqlDB.Close()
		return 0, e.Wrap(op, err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		driver.Close()
		return 0, e.Wrap(op, err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warnf("close migrator: source=%v db=%v", srcErr, dbErr)
		}
	}()

	from, dirty, err := schemaVersion(m)
	if err != nil {
		return 0, e.Wrap(op, err)
	}
	if dirty {
		return from, e.Wrap(op, fmt.Errorf("%w at version %d", ErrDirtySchema, from))
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return from, e.Wrap(op, err)
	}

	to, _, err := schemaVersion(m)
	if err != nil {
		return from, e.Wrap(op, err)
	}

	if to == from {
		log.Infof("schema is up to date at version %d", to)
	} else {
		log.Infof("schema migrated from version %d to %d", from, to)
	}
	return to, nil
}

// schemaVersion — версия 0 у пустой базы без таблицы schema_migrations.
func schemaVersion(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}
