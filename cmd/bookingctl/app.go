package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-MeetingBooking/internal/config"
	orphanRepo "github.com/m04kA/SMC-MeetingBooking/internal/infra/storage/orphan"
	"github.com/m04kA/SMC-MeetingBooking/internal/integrations/meetingapi"
	"github.com/m04kA/SMC-MeetingBooking/internal/session"
	"github.com/m04kA/SMC-MeetingBooking/pkg/logger"
)

// envToken переменная окружения с bearer токеном организатора
const envToken = "MEETING_API_TOKEN"

// app общие зависимости команд
// cfg и log заполняются в PersistentPreRunE, если не заданы заранее
type app struct {
	configPath string
	token      string
	logLevel   string

	cfg *config.Config
	log *logger.Logger
	out io.Writer
}

func (a *app) init() error {
	if a.cfg == nil {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.log == nil {
		log, err := logger.NewWithWriter(os.Stderr, a.logLevel)
		if err != nil {
			return err
		}
		a.log = log
	}
	return nil
}

func (a *app) location() (*time.Location, error) {
	return a.cfg.Backend.Location()
}

func (a *app) client() *meetingapi.Client {
	return meetingapi.NewClient(
		a.cfg.Backend.URL,
		time.Duration(a.cfg.Backend.Timeout)*time.Second,
		nil,
		a.log,
	)
}

// session создает сессию из --token или MEETING_API_TOKEN и кладет ее в контекст
// Подпись не проверяется: токен только пересылается бэкенду
func (a *app) session(ctx context.Context) (context.Context, *session.Session, error) {
	return a.openSession(ctx, session.New)
}

// verifiedSession как session, но с проверкой подписи: для данных, которые читаются из локального журнала
func (a *app) verifiedSession(ctx context.Context) (context.Context, *session.Session, error) {
	return a.openSession(ctx, session.NewVerifier(a.cfg.Auth.JWTSecret).Open)
}

func (a *app) openSession(ctx context.Context, open func(token string) (*session.Session, error)) (context.Context, *session.Session, error) {
	token := a.token
	if token == "" {
		token = os.Getenv(envToken)
	}
	s, err := open(token)
	if err != nil {
		return nil, nil, fmt.Errorf("login required (--token or %s): %w", envToken, err)
	}
	if err := s.Validate(time.Now()); err != nil {
		return nil, nil, err
	}
	return session.WithSession(ctx, s), s, nil
}

// orphans открывает журнал "осиротевших" ресурсов; closeFn закрывает соединение
func (a *app) orphans(ctx context.Context) (*orphanRepo.Repository, func(), error) {
	db, err := sql.Open(a.cfg.Storage.Driver, a.cfg.Storage.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	if a.cfg.Storage.Driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	repo := orphanRepo.NewRepository(db, a.cfg.Storage.Driver)
	if err := repo.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, func() { db.Close() }, nil
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
