//go:build e2e

// Package e2e boots the booking API against real PostgreSQL and Redis containers.
// Each test process gets its own database; suites embed SharedSuite.
package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"booking-engine/cmd/bootstrap"
	"booking-engine/cmd/bootstrap/components"
	"booking-engine/internal/infra/db"
	"booking-engine/internal/pkg/config"
	"booking-engine/tests/common/authtest"
	"booking-engine/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "booking"
	pgPassword = "booking"
	pgPort     = nat.Port("5432/tcp")
	redisPort  = nat.Port("6379/tcp")
)

type infraEndpoints struct {
	pgHost    string
	pgPort    string
	redisAddr string
}

var (
	infraOnce sync.Once
	infra     infraEndpoints
	infraErr  error
)

// startInfra runs once per test process; ryuk reaps the containers when the process exits.
func startInfra() (infraEndpoints, error) {
	infraOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "postgres:17",
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return adminDSN(host, port.Port())
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "booking-e2e"},
			},
			Started: true,
		})
		if err != nil {
			infraErr = fmt.Errorf("start postgres: %w", err)
			return
		}

		rd, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "redis:7-alpine",
				ExposedPorts: []string{string(redisPort)},
				WaitingFor:   wait.ForListeningPort(redisPort).WithStartupTimeout(time.Minute),
				Labels:       map[string]string{"purpose": "booking-e2e"},
			},
			Started: true,
		})
		if err != nil {
			infraErr = fmt.Errorf("start redis: %w", err)
			return
		}

		infra.pgHost, infra.pgPort, infraErr = endpoint(ctx, pg, pgPort)
		if infraErr != nil {
			return
		}
		redisHost, redisMapped, err := endpoint(ctx, rd, redisPort)
		if err != nil {
			infraErr = err
			return
		}
		infra.redisAddr = redisHost + ":" + redisMapped
	})
	return infra, infraErr
}

func endpoint(ctx context.Context, c testcontainers.Container, port nat.Port) (string, string, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return "", "", fmt.Errorf("container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return "", "", fmt.Errorf("mapped port %s: %w", port, err)
	}
	return host, mapped.Port(), nil
}

func adminDSN(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", pgUser, pgPassword, host, port)
}

// createDatabase makes a fresh database for this process, applies every migration and
// drops the database on cleanup.
func createDatabase(t *testing.T, ep infraEndpoints) config.DBConfig {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := "booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := pgxpool.New(ctx, adminDSN(ep.pgHost, ep.pgPort))
	require.NoError(t, err, "admin connection")
	defer admin.Close()
	_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err, "create database %s", name)

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool, err := pgxpool.New(ctx, adminDSN(ep.pgHost, ep.pgPort))
		if err != nil {
			slog.Warn("drop database skipped", "database", name, "error", err.Error())
			return
		}
		defer pool.Close()
		if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			slog.Warn("drop database failed", "database", name, "error", err.Error())
		}
	})

	cfg := config.DBConfig{
		Host:     ep.pgHost,
		Port:     ep.pgPort,
		User:     pgUser,
		Password: pgPassword,
		DBName:   name,
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 50,
	}
	applyMigrations(t, cfg)
	return cfg
}

func applyMigrations(t *testing.T, cfg config.DBConfig) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	files, err := filepath.Glob(filepath.Join(moduleRoot(t), "migrations", "*.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, files, "no migrations found")
	sort.Strings(files)

	pool, _, err := db.Connect(ctx, cfg)
	require.NoError(t, err, "connect for migrations")
	defer pool.Close()

	for _, f := range files {
		sql, err := os.ReadFile(f)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(sql))
		require.NoError(t, err, "apply %s", filepath.Base(f))
	}
}

// moduleRoot walks up from the package directory to the go.mod.
func moduleRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "go.mod not found above the test package")
		dir = parent
	}
}

func newTestConfig(dbCfg config.DBConfig, redisAddr string) config.Config {
	cfg := config.NewTestConfig()
	cfg.DB = dbCfg
	cfg.Booking.StorageDriver = config.StorageDriverPostgres
	cfg.Booking.TimeZone = "America/Sao_Paulo"
	cfg.Redis.Addr = redisAddr
	cfg.Redis.TTL = 15 * time.Second
	cfg.Kafka.Brokers = nil
	return cfg
}

// startApp wires the production modules around the test pool and config.
func startApp(t *testing.T, pool *pgxpool.Pool, cfg config.Config) *gin.Engine {
	t.Helper()

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg, pool),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.CacheModule,
		components.OutboxModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "start fx app")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("stop fx app", "error", err.Error())
		}
	})
	require.NotNil(t, router)
	return router
}

// SharedSuite owns the router and database of one test process. Every subtest starts
// from empty tables.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
	Tokens *authtest.JWTHelper
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	ep, err := startInfra()
	require.NoError(t, err)

	dbCfg := createDatabase(t, ep)
	pool, _, err := db.Connect(context.Background(), dbCfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	s.DB = pool
	s.Config = newTestConfig(dbCfg, ep.redisAddr)
	s.Router = startApp(t, pool, s.Config)
	s.Tokens = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *SharedSuite) SetupSubTest() {
	require.NoError(s.T(), dbtest.ResetDB(s.DB), "reset tables")
}

// OwnerFixture is a business with one service, its owner and the owner's bearer token.
type OwnerFixture struct {
	OwnerID    uuid.UUID
	BusinessID uuid.UUID
	ServiceID  uuid.UUID
	Token      string
}

// SeedOwner creates a business whose single service lasts durationMinutes. hours uses the
// API's JSON shape and may be nil to leave the business unconfigured.
func (s *SharedSuite) SeedOwner(durationMinutes int, hours any) OwnerFixture {
	t := s.T()
	f := OwnerFixture{OwnerID: uuid.New()}
	f.BusinessID = dbtest.CreateTestBusiness(t, s.DB, f.OwnerID, "studio-"+uuid.NewString()[:8])
	f.ServiceID = dbtest.CreateTestService(t, s.DB, f.BusinessID, "Corte", durationMinutes)
	if hours != nil {
		dbtest.SetTestHours(t, s.DB, f.BusinessID, hours)
	}
	f.Token = s.Tokens.GenerateToken(t, f.OwnerID)
	return f
}

// OpenDay builds an hours document with a single open weekday.
func OpenDay(weekday, start, end string) map[string]any {
	return map[string]any{
		weekday: map[string]any{
			"isOpen":    true,
			"intervals": []map[string]string{{"start": start, "end": end}},
		},
	}
}
