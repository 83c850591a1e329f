package postgres

import (
	"context"
	"fmt"

	"formlink/formlink_go_form_service/config"
	"formlink/formlink_go_form_service/pkg/logger"
	"formlink/formlink_go_form_service/storage"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db           *pgxpool.Pool
	log          logger.LoggerI
	form         storage.FormRepoI
	response     storage.ResponseRepoI
	user         storage.UserRepoI
	oauthSession storage.OAuthSessionRepoI
}

func NewPostgres(ctx context.Context, cfg config.Config, log logger.LoggerI) (storage.StorageI, error) {
	dbUrl := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PostgresUser,
		cfg.PostgresPassword,
		cfg.PostgresHost,
		cfg.PostgresPort,
		cfg.PostgresDatabase,
	)

	config, err := pgxpool.ParseConfig(dbUrl)
	if err != nil {
		return nil, err
	}

	config.MaxConns = cfg.PostgresMaxConnections

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(cfg.MigrationsPath, dbUrl); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{
		db:  pool,
		log: log,
	}, nil
}

func runMigrations(sourcePath, dbUrl string) error {
	m, err := migrate.New(sourcePath, dbUrl)
	if err != nil {
		return err
	}

	defer m.Close()

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}

func (s *Store) CloseDB() {
	s.db.Close()
}

func (s *Store) Form() storage.FormRepoI {
	if s.form == nil {
		s.form = NewFormRepo(s.db, s.log)
	}

	return s.form
}

func (s *Store) Response() storage.ResponseRepoI {
	if s.response == nil {
		s.response = NewResponseRepo(s.db, s.log)
	}

	return s.response
}

func (s *Store) User() storage.UserRepoI {
	if s.user == nil {
		s.user = NewUserRepo(s.db, s.log)
	}

	return s.user
}

func (s *Store) OAuthSession() storage.OAuthSessionRepoI {
	if s.oauthSession == nil {
		s.oauthSession = NewOAuthSessionRepo(s.db, s.log)
	}

	return s.oauthSession
}
