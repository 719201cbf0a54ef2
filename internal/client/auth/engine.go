// Package auth validates login and registration attempts against a user
// directory. It is mode-agnostic: login and registration are independent
// operations, the login/register toggle belongs to the UI.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/arnorgym/internal/client/directory"
	"github.com/dmitrijs2005/arnorgym/internal/logging"
	"github.com/dmitrijs2005/arnorgym/internal/timex"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type RegisterRequest struct {
	Username        string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required"`
	Email           string `validate:"required"`
}

// Saver persists a directory snapshot. *directory.Store implements it.
type Saver interface {
	Save(ctx context.Context, dir *directory.Directory) error
}

type Engine struct {
	store Saver
	log   logging.Logger
	now   func() time.Time
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(store Saver, log logging.Logger, opts ...Option) *Engine {
	e := &Engine{store: store, log: log, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Login returns the record matching username when password is equal to the
// stored one. The directory is not modified.
func (e *Engine) Login(ctx context.Context, dir *directory.Directory, req LoginRequest) (directory.UserRecord, error) {
	if err := checkRequired(req); err != nil {
		return directory.UserRecord{}, err
	}

	rec, ok := dir.Get(req.Username)
	if !ok || rec.Password != req.Password {
		e.log.Info(ctx, "login rejected", "username", req.Username)
		return directory.UserRecord{}, ErrInvalidCredentials
	}

	e.log.Info(ctx, "login accepted", "username", req.Username)
	return rec, nil
}

// Register adds a new account. Checks run in order (empty fields, password
// confirmation, username uniqueness) and the first failure is returned.
//
// The record is added to dir before saving. When saving fails the error
// wraps common.ErrStorage and the account still exists in memory.
func (e *Engine) Register(ctx context.Context, dir *directory.Directory, req RegisterRequest) (directory.UserRecord, error) {
	if err := checkRequired(req); err != nil {
		return directory.UserRecord{}, err
	}
	if req.Password != req.ConfirmPassword {
		return directory.UserRecord{}, ErrPasswordMismatch
	}
	if dir.Has(req.Username) {
		e.log.Info(ctx, "registration rejected, username taken", "username", req.Username)
		return directory.UserRecord{}, ErrConflict
	}

	rec := directory.UserRecord{
		Password:     req.Password,
		Email:        req.Email,
		RegisteredAt: timex.NewTimestamp(e.now()),
	}
	dir.Put(req.Username, rec)

	if err := e.store.Save(ctx, dir); err != nil {
		return rec, fmt.Errorf("register %s: %w", req.Username, err)
	}

	e.log.Info(ctx, "user registered", "username", req.Username)
	return rec, nil
}

// RecoverPasswordLookup returns the email on file for username so that the
// user can be told where to ask for a reset. The password is never exposed.
func (e *Engine) RecoverPasswordLookup(dir *directory.Directory, username string) (string, error) {
	if username == "" {
		return "", ErrMissingFields
	}
	rec, ok := dir.Get(username)
	if !ok {
		return "", ErrNotFound
	}
	return rec.Email, nil
}

func checkRequired(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(fields, ", "))
}
