package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"Truss/internal/repo"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	CookieName  = "session_token"
	TokenTTL    = 30 * 24 * time.Hour
	minPassword = 6
)

var ErrInvalidToken = errors.New("auth: invalid token")

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the id of the authenticated user stored by Middleware.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok && id > 0
}

func WithUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

type Env struct {
	JWTKey []byte
	Repo   repo.Repository
	Log    *zap.Logger
	// Secure marks the session cookie HTTPS only.
	Secure bool
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	UserID int    `json:"user_id"`
	Token  string `json:"token"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (env *Env) IssueToken(userID int, login string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"login":   login,
		"exp":     now.Add(TokenTTL).Unix(),
	})
	return token.SignedString(env.JWTKey)
}

// ParseToken validates an HS256 token and returns the user it was issued to.
func (env *Env) ParseToken(tokenString string) (int, string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return env.JWTKey, nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("%v: %w", err, ErrInvalidToken)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 {
		return 0, "", fmt.Errorf("user_id claim: %w", ErrInvalidToken)
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return 0, "", fmt.Errorf("login claim: %w", ErrInvalidToken)
	}
	return int(userIDFloat), login, nil
}

func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// Middleware rejects requests without a valid session cookie or bearer
// token and stores the user id in the request context.
func (env *Env) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFromRequest(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		userID, _, err := env.ParseToken(raw)
		if err != nil {
			env.logger().Debug("rejected token", zap.Error(err))
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// Optional attaches the user of a valid token to the context and lets
// anonymous requests through unchanged.
func (env *Env) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := tokenFromRequest(r); raw != "" {
			if userID, _, err := env.ParseToken(raw); err == nil {
				r = r.WithContext(WithUserID(r.Context(), userID))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (env *Env) setCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (env *Env) startSession(w http.ResponseWriter, status, userID int, login string) {
	now := time.Now()
	token, err := env.IssueToken(userID, login, now)
	if err != nil {
		env.logger().Error("sign token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "token error")
		return
	}
	env.setCookie(w, token, now.Add(TokenTTL))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(TokenResponse{UserID: userID, Token: token})
}

func (env *Env) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "login, email and password required")
		return
	}
	if len(req.Password) < minPassword {
		writeError(w, http.StatusBadRequest, "password too short")
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error hashing password")
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashedPassword)
	if errors.Is(err, repo.ErrDuplicate) {
		writeError(w, http.StatusConflict, "user already exists")
		return
	}
	if err != nil {
		env.logger().Error("create user", zap.String("login", req.Login), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	env.logger().Info("user registered", zap.Int("user_id", id))
	env.startSession(w, http.StatusCreated, id, req.Login)
}

func (env *Env) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "login and password required")
		return
	}

	id, storedHash, err := env.Repo.GetByLogin(r.Context(), req.Login)
	if errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "invalid login or password")
		return
	}
	if err != nil {
		env.logger().Error("get user", zap.String("login", req.Login), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid login or password")
		return
	}
	env.startSession(w, http.StatusOK, id, req.Login)
}

func (env *Env) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	env.setCookie(w, "", time.Unix(0, 0))
	w.WriteHeader(http.StatusNoContent)
}

func (env *Env) logger() *zap.Logger {
	if env.Log == nil {
		return zap.NewNop()
	}
	return env.Log
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
