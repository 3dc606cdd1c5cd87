package service

import (
	"context"
	"errors"

	"goblog/internal/model"
	"goblog/internal/pkg"
	"goblog/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken       = errors.New("email already registered")
	ErrEmailNotFound    = errors.New("email does not exist")
	ErrPasswordMismatch = errors.New("password incorrect")
	ErrNoSession        = errors.New("no valid session")
)

type UserService struct {
	users    *mysql.UserRepository
	sessions SessionStore
	secret   []byte
}

func NewUserService(users *mysql.UserRepository, sessions SessionStore, secret []byte) *UserService {
	return &UserService{users: users, sessions: sessions, secret: secret}
}

// Register creates a user with a bcrypt-hashed password. The very
// first user becomes the admin, so authorization no longer hangs off
// the raw row id. The email unique index is the final arbiter against
// racing duplicate registrations; a duplicate-key violation maps to
// the same rejection as the lookup.
func (s *UserService) Register(name, email, password string) (*model.User, error) {
	if _, err := s.users.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.RoleReader
	if n, err := s.users.Count(); err != nil {
		return nil, err
	} else if n == 0 {
		role = model.RoleAdmin
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrPasswordMismatch
	}
	return user, nil
}

// StartSession issues a signed cookie token and whitelists its session
// id in the store.
func (s *UserService) StartSession(ctx context.Context, user *model.User) (string, error) {
	token, sessionID, err := pkg.NewSessionToken(s.secret, user.ID)
	if err != nil {
		return "", err
	}
	if err := s.sessions.Save(ctx, user.ID, sessionID); err != nil {
		return "", err
	}
	return token, nil
}

func (s *UserService) EndSession(ctx context.Context, userID uint) error {
	return s.sessions.Delete(ctx, userID)
}

// Authenticate resolves the current user from a cookie token: the
// claims must parse, the session id must match the whitelisted one,
// and the idle timeout slides forward on success.
func (s *UserService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := pkg.ParseSessionToken(s.secret, token)
	if err != nil {
		return nil, ErrNoSession
	}

	stored, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil || stored != claims.ID {
		return nil, ErrNoSession
	}
	if err := s.sessions.Extend(ctx, claims.UserID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return nil, ErrNoSession
	}
	return user, nil
}
