package service

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/EdYashida/ecommerce-api/internal/models"
)

const CookieName = "session"

const sessionTTL = 24 * time.Hour

var ErrNoSession = errors.New("no valid session")

type SessionService struct {
	DB     *gorm.DB
	Secret []byte
}

// Issue signs a session token for the user and records it server-side so
// logout can revoke it later.
func (s *SessionService) Issue(userID uint) (string, time.Time, error) {
	exp := time.Now().Add(sessionTTL)
	// jti keeps two logins in the same second from colliding on the
	// unique token column
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"jti": uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := t.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}

	row := models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: exp.Unix(),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return "", time.Time{}, fmt.Errorf("db error: %w", err)
	}

	return token, exp, nil
}

func (s *SessionService) Revoke(token string) error {
	result := s.DB.Model(&models.Session{}).
		Where("token = ?", token).
		Update("revoked", true)
	if result.Error != nil {
		return fmt.Errorf("db error: %w", result.Error)
	}
	return nil
}

// Resolve maps a raw cookie token back to its user. A revoked or expired
// session, or a user row that no longer exists, yields ErrNoSession.
func (s *SessionService) Resolve(token string) (*models.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrNoSession
	}

	var sess models.Session
	if err := s.DB.Where("token = ?", token).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if sess.Revoked || time.Now().Unix() > sess.ExpiresAt {
		return nil, ErrNoSession
	}

	var user models.User
	if err := s.DB.First(&user, sess.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &user, nil
}

// RequireLogin guards mutating routes: without a resolvable session the
// wrapped handler is never invoked.
func (s *SessionService) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
		}

		user, err := s.Resolve(cookie.Value)
		if err != nil {
			if errors.Is(err, ErrNoSession) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		c.Set("userID", user.ID)
		return next(c)
	}
}

func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return id, nil
}
