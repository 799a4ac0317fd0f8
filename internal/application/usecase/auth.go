package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/cache"
	"streamflix/internal/infrastructure/repository"
	"streamflix/internal/infrastructure/security"
)

type AuthUseCase struct {
	log          *slog.Logger
	store        *repository.Store
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
	tokenCache   *cache.TokenCache
	now          func() time.Time

	// Сравниваем с ним, когда email не найден, чтобы время ответа не выдавало аккаунт
	dummyHash string
}

type AuthResult struct {
	AccessToken string
	User        *domain.User
}

func NewAuthUseCase(
	log *slog.Logger,
	store *repository.Store,
	h *security.PasswordHasher,
	tm *security.TokenManager,
	tc *cache.TokenCache,
) (*AuthUseCase, error) {
	dummy, err := h.Hash("streamflix-dummy-password")
	if err != nil {
		return nil, err
	}
	return &AuthUseCase{
		log:          log,
		store:        store,
		hasher:       h,
		tokenManager: tm,
		tokenCache:   tc,
		now:          func() time.Time { return time.Now().UTC() },
		dummyHash:    dummy,
	}, nil
}

func (uc *AuthUseCase) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "usecase.AuthUseCase.Register"
	email = strings.TrimSpace(email)
	log := uc.log.With("op", op, "email", email)

	if email == "" || password == "" {
		return nil, domain.NewValidationError("", "Email and password are required")
	}

	_, err := uc.store.Users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Info("email already registered")
		return nil, domain.ErrUserAlreadyExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:            email,
		Password:         hash,
		SubscriptionPlan: domain.DefaultPlan,
		CreatedAt:        uc.now(),
	}
	// Гонку двух регистраций ловит уникальный индекс, репозиторий вернет ErrUserAlreadyExists
	if err := uc.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}
	user.Profiles = []domain.Profile{}

	token, err := uc.tokenManager.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	log.Info("user registered", "user_id", user.ID)
	return &AuthResult{AccessToken: token, User: user}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	const op = "usecase.AuthUseCase.Login"
	email = strings.TrimSpace(email)
	log := uc.log.With("op", op, "email", email)

	user, err := uc.store.Users.GetByEmailWithProfiles(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = uc.hasher.Compare(uc.dummyHash, password)
			log.Debug("login failed: user not found")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := uc.hasher.Compare(user.Password, password); err != nil {
		if !errors.Is(err, security.ErrMismatch) {
			log.Warn("stored password hash is unusable", "user_id", user.ID, "err", err)
		}
		log.Debug("login failed: password mismatch", "user_id", user.ID)
		return nil, domain.ErrInvalidCredentials
	}

	if uc.hasher.NeedsRehash(user.Password) {
		uc.upgradeHash(ctx, log, user.ID, password)
	}

	token, err := uc.tokenManager.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{AccessToken: token, User: user}, nil
}

// upgradeHash переводит старый pbkdf2-хеш на bcrypt. Ошибка не мешает входу.
func (uc *AuthUseCase) upgradeHash(ctx context.Context, log *slog.Logger, userID uint, password string) {
	hash, err := uc.hasher.Hash(password)
	if err == nil {
		err = uc.store.Users.UpdatePassword(ctx, userID, hash)
	}
	if err != nil {
		log.Warn("failed to upgrade legacy password hash", "user_id", userID, "err", err)
		return
	}
	log.Info("legacy password hash upgraded", "user_id", userID)
}

// Authenticate проверяет подпись, срок и стоп-лист.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*security.Claims, error) {
	claims, err := uc.tokenManager.ValidateAccessToken(token)
	if err != nil {
		uc.log.Debug("token rejected", "op", "usecase.AuthUseCase.Authenticate", "err", err)
		return nil, domain.ErrInvalidToken
	}
	revoked, err := uc.tokenCache.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}
	return claims, nil
}

func (uc *AuthUseCase) CurrentUser(ctx context.Context, userID uint) (*domain.User, error) {
	return uc.store.Users.GetByIDWithProfiles(ctx, userID)
}

// Logout всегда успешен: сессий на сервере нет, валидный токен просто
// попадает в стоп-лист до своего истечения.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) {
	const op = "usecase.AuthUseCase.Logout"
	if token == "" {
		return
	}
	claims, err := uc.tokenManager.ValidateAccessToken(token)
	if err != nil {
		return
	}
	if err := uc.tokenCache.Revoke(ctx, claims.TokenID, claims.ExpiresAt.Sub(uc.now())); err != nil {
		uc.log.Warn("failed to revoke token", "op", op, "user_id", claims.UserID, "err", err)
	}
}
