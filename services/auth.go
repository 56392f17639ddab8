package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/student-showcase-backend/database"
	"github.com/rpupo63/student-showcase-backend/errs"
	"github.com/rpupo63/student-showcase-backend/models"
	"github.com/rpupo63/student-showcase-backend/sanitize"
)

const tokenTTL = 24 * time.Hour

// Claims is the token payload: the user's record id and admin flag.
type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies tokens and manages credentials against
// the Users table.
type AuthService struct {
	store      database.Store
	jwtSecret  []byte
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(store database.Store, jwtSecret string, bcryptCost int) *AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		store:      store,
		jwtSecret:  []byte(jwtSecret),
		bcryptCost: bcryptCost,
		logger:     log.With().Str("component", "auth").Logger(),
	}
}

// RegisterInput carries the validated registration fields.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a user and returns a signed token. The email is
// normalized before the duplicate check, so registration is rejected on a
// case-insensitive match.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (string, error) {
	sanitizedEmail := sanitize.Email(input.Email)
	if sanitizedEmail == "" {
		return "", errs.NewBadRequestError("an email is required")
	}
	if input.Password == "" {
		return "", errs.NewBadRequestError("a password is required")
	}

	existing, err := s.store.ListAll(ctx, database.TableUsers, database.ByFieldEquals("email", sanitizedEmail))
	if err != nil {
		return "", err
	}
	if len(existing) != 0 {
		return "", errs.NewConflictError("this email address is already in use")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return "", errs.NewInternalError("could not hash password")
	}

	record, err := s.store.Insert(ctx, database.TableUsers, map[string]any{
		"email":      sanitizedEmail,
		"password":   string(hashed),
		"first_name": sanitize.Text(input.FirstName),
		"last_name":  sanitize.Text(input.LastName),
	})
	if err != nil {
		return "", err
	}

	user := models.UserFromRecord(record)
	return s.signToken(user.ID, user.IsAdmin)
}

// Login verifies credentials and returns a signed token. As in the
// original system, an unknown email and a wrong password produce
// different messages.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	sanitizedEmail := sanitize.Email(email)
	if sanitizedEmail == "" {
		return "", errs.NewBadRequestError("invalid email")
	}

	records, err := s.store.ListAll(ctx, database.TableUsers, database.ByFieldEquals("email", sanitizedEmail))
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", errs.NewUnauthorizedError("user not found")
	}

	user := models.UserFromRecord(records[0])
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errs.NewUnauthorizedError("incorrect password")
	}

	return s.signToken(user.ID, user.IsAdmin)
}

// HashPassword hashes a password for storage, used when a user update
// carries a new password.
func (s *AuthService) HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", errs.NewInternalError("could not hash password")
	}
	return string(hashed), nil
}

// VerifyToken checks signature and expiry and returns the decoded claims.
// Any failure maps to the same invalid-token error.
func (s *AuthService) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.NewInvalidTokenError()
	}
	return claims, nil
}

func (s *AuthService) signToken(userID string, isAdmin bool) (string, error) {
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error().Err(err).Msg("could not sign token")
		return "", errs.NewInternalError("could not sign token")
	}
	return token, nil
}
