package service

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/studyroom-seat-booking/internal/model"
	"github.com/iliyamo/studyroom-seat-booking/internal/repository"
	"github.com/iliyamo/studyroom-seat-booking/internal/utils"
)

// ErrInvalidCredentials is returned by Login for an unknown username or a
// wrong password alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

type AdminStore interface {
	GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	Upsert(ctx context.Context, username, passwordHash string) error
}

// AuthService verifies admin credentials against bcrypt hashes and issues
// session tokens.
type AuthService struct {
	admins     AdminStore
	secret     string
	ttlMin     int
	bcryptCost int
	log        *logrus.Logger
}

func NewAuthService(admins AdminStore, secret string, ttlMin, bcryptCost int, log *logrus.Logger) *AuthService {
	return &AuthService{admins: admins, secret: secret, ttlMin: ttlMin, bcryptCost: bcryptCost, log: log}
}

// Login returns a signed ADMIN token for valid credentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (utils.AccessToken, error) {
	username = strings.TrimSpace(username)
	verr := &ValidationError{}
	if username == "" {
		verr.Add("username", "is required")
	}
	if password == "" {
		verr.Add("password", "is required")
	}
	if err := verr.OrNil(); err != nil {
		return utils.AccessToken{}, err
	}
	a, err := s.admins.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return utils.AccessToken{}, ErrInvalidCredentials
	}
	if err != nil {
		return utils.AccessToken{}, err
	}
	if !utils.VerifyPassword(a.PasswordHash, password) {
		s.log.WithField("username", username).Warn("admin login failed")
		return utils.AccessToken{}, ErrInvalidCredentials
	}
	return utils.NewAdminToken(s.secret, a.Username, s.ttlMin)
}

// Bootstrap creates or updates the admin account from configuration.  A
// ready hash wins over a plain password.  Nothing happens when neither is
// given.
func (s *AuthService) Bootstrap(ctx context.Context, username, password, passwordHash string) error {
	if username == "" || (password == "" && passwordHash == "") {
		return nil
	}
	hash := passwordHash
	if hash == "" {
		h, err := utils.HashPassword(password, s.bcryptCost)
		if err != nil {
			return err
		}
		hash = h
	}
	if err := s.admins.Upsert(ctx, username, hash); err != nil {
		return err
	}
	s.log.WithField("username", username).Info("admin account ready")
	return nil
}
