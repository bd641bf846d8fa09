package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"checkin_syria/internal/domain"
)

const RoleAdmin = "admin"

type Claims struct {
	Sub  string `json:"sub"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Service answers "is the caller an authenticated admin?" for the back-office.
type Service struct {
	user     string
	passHash []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func New(user, bcryptHash, secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT secret is required")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{user: user, passHash: []byte(bcryptHash), secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Login checks the admin credentials and issues a signed session token.
func (s *Service) Login(user, password string) (string, time.Time, error) {
	if s.user == "" || len(s.passHash) == 0 || user != s.user {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(s.passHash, []byte(password)); err != nil {
		return "", time.Time{}, domain.ErrUnauthorized
	}
	exp := s.now().Add(s.ttl)
	claims := Claims{
		Sub:  user,
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tok, exp, nil
}

func (s *Service) Parse(token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	c, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || c.Role != RoleAdmin {
		return nil, domain.ErrUnauthorized
	}
	return c, nil
}

func (s *Service) Authenticated(token string) bool {
	_, err := s.Parse(token)
	return err == nil
}

// HashPassword is used by operators to produce ADMIN_PASSWORD_HASH.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}
