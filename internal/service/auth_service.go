package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sticker_market/internal/models"
	"sticker_market/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultTokenTTL      = time.Hour
	defaultBcryptCost    = 10
	defaultStartingCoins = 5000
)

type AuthOptions struct {
	Secret        string
	TokenTTL      time.Duration
	BcryptCost    int
	StartingCoins int
}

// AuthService handles registration, login, token verification and password changes.
type AuthService struct {
	users repository.Authorization
	key   []byte
	ttl   time.Duration
	cost  int
	coins int
	now   func() time.Time
}

func NewAuthService(repo repository.Authorization, opts AuthOptions) *AuthService {
	s := &AuthService{
		users: repo,
		key:   []byte(opts.Secret),
		ttl:   opts.TokenTTL,
		cost:  opts.BcryptCost,
		coins: opts.StartingCoins,
		now:   time.Now,
	}
	if s.ttl <= 0 {
		s.ttl = defaultTokenTTL
	}
	if s.cost == 0 {
		s.cost = defaultBcryptCost
	}
	if s.coins == 0 {
		s.coins = defaultStartingCoins
	}
	return s
}

// Claims defines JWT claims. Field names match what clients already decode.
type Claims struct {
	jwt.RegisteredClaims
	UserID  int    `json:"id"`
	Name    string `json:"name"`
	LoginID string `json:"userId"`
}

func blank(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}

// Register creates a user with the starting coin balance.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if blank(in.Name, in.LoginID, in.Password) {
		return ErrValidation
	}

	existing, err := s.users.GetByLoginID(ctx, in.LoginID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateUser
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return err
	}

	_, err = s.users.Create(ctx, models.User{
		Name:         in.Name,
		LoginID:      in.LoginID,
		PasswordHash: hash,
		Coins:        s.coins,
	})
	if errors.Is(err, repository.ErrDuplicateUser) {
		// lost a race with a concurrent signup for the same handle
		return ErrDuplicateUser
	}
	return err
}

// Login validates credentials and returns a signed token plus the public user view.
func (s *AuthService) Login(ctx context.Context, loginID, password string) (LoginResult, error) {
	if blank(loginID, password) {
		return LoginResult{}, ErrValidation
	}

	u, err := s.users.GetByLoginID(ctx, loginID)
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil {
		return LoginResult{}, ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(*u)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, User: u.Summary()}, nil
}

// VerifyToken parses a bearer token and returns the identity it carries.
func (s *AuthService) VerifyToken(accessToken string) (models.Identity, error) {
	if accessToken == "" {
		return models.Identity{}, ErrUnauthenticated
	}

	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.LoginID == "" {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{ID: claims.UserID, Name: claims.Name, LoginID: claims.LoginID}, nil
}

// ChangePassword replaces the stored hash after checking the current password.
// Tokens issued earlier stay valid until they expire.
func (s *AuthService) ChangePassword(ctx context.Context, id models.Identity, currentPassword, newPassword string) error {
	if blank(currentPassword, newPassword) {
		return ErrValidation
	}

	u, err := s.users.GetByLoginID(ctx, id.LoginID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	if err := verifyPassword(u.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id.LoginID, hash); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// helper: hash password safely
func (s *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrValidation
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(u models.User) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:  u.ID,
		Name:    u.Name,
		LoginID: u.LoginID,
	})
	return token.SignedString(s.key)
}
