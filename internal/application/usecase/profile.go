package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/imaging"
	"streamflix/internal/infrastructure/repository"
)

const maxProfileNameLen = 50

type ProfileUseCase struct {
	log   *slog.Logger
	store *repository.Store
	now   func() time.Time
}

type CreateProfileInput struct {
	UserID    uint
	Name      string
	AvatarURL string
	IsKids    bool
}

func NewProfileUseCase(log *slog.Logger, store *repository.Store) *ProfileUseCase {
	return &ProfileUseCase{
		log:   log,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *ProfileUseCase) ListByUser(ctx context.Context, userID uint) ([]domain.Profile, error) {
	return uc.store.Profiles.ListByUser(ctx, userID)
}

func (uc *ProfileUseCase) Get(ctx context.Context, id uint) (*domain.Profile, error) {
	return uc.store.Profiles.GetByID(ctx, id)
}

func (uc *ProfileUseCase) Create(ctx context.Context, in CreateProfileInput) (*domain.Profile, error) {
	const op = "usecase.ProfileUseCase.Create"

	if in.UserID == 0 {
		return nil, domain.NewValidationError("", "Missing required field: user_id")
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, domain.NewValidationError("", "Missing required field: name")
	}
	if err := validateProfileName(in.Name); err != nil {
		return nil, err
	}

	now := uc.now()
	profile := &domain.Profile{
		UserID:    in.UserID,
		Name:      in.Name,
		AvatarURL: in.AvatarURL,
		IsKids:    in.IsKids,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		ok, err := tx.Users.Exists(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrUserNotFound
		}
		return tx.Profiles.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info("profile created", "op", op, "user_id", in.UserID, "profile_id", profile.ID)
	return profile, nil
}

func (uc *ProfileUseCase) Update(ctx context.Context, id uint, patch domain.ProfilePatch) (*domain.Profile, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "must not be blank")
		}
		if err := validateProfileName(name); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	return uc.apply(ctx, id, patch)
}

// Delete удаляет список и историю профиля, затем сам профиль. Одна транзакция.
func (uc *ProfileUseCase) Delete(ctx context.Context, id uint) error {
	const op = "usecase.ProfileUseCase.Delete"
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		ok, err := tx.Profiles.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrProfileNotFound
		}
		if err := tx.Watchlist.DeleteByProfile(ctx, id); err != nil {
			return err
		}
		if err := tx.History.DeleteByProfile(ctx, id); err != nil {
			return err
		}
		return tx.Profiles.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info("profile deleted", "op", op, "profile_id", id)
	return nil
}

// UpdateAvatar сохраняет http(s)-ссылку как есть, остальное считается
// картинкой и проходит через imaging.ProcessAvatar до записи в базу.
func (uc *ProfileUseCase) UpdateAvatar(ctx context.Context, id uint, avatarData string) (*domain.Profile, error) {
	const op = "usecase.ProfileUseCase.UpdateAvatar"
	log := uc.log.With("op", op, "profile_id", id)

	ok, err := uc.store.Profiles.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrProfileNotFound
	}

	avatarData = strings.TrimSpace(avatarData)
	if avatarData == "" {
		return nil, domain.NewValidationError("", "No avatar data provided")
	}

	avatar := avatarData
	if !imaging.IsRemoteURL(avatarData) {
		avatar, err = imaging.ProcessAvatar(avatarData)
		if err != nil {
			log.Debug("avatar rejected", "err", err)
			return nil, err
		}
	}

	profile, err := uc.apply(ctx, id, domain.ProfilePatch{AvatarURL: &avatar})
	if err != nil {
		return nil, err
	}
	log.Info("avatar updated", "stored_bytes", len(avatar))
	return profile, nil
}

func (uc *ProfileUseCase) apply(ctx context.Context, id uint, patch domain.ProfilePatch) (*domain.Profile, error) {
	var profile *domain.Profile
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := tx.Profiles.Update(ctx, id, patch, uc.now()); err != nil {
			return err
		}
		var err error
		profile, err = tx.Profiles.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func validateProfileName(name string) error {
	if utf8.RuneCountInString(name) > maxProfileNameLen {
		return domain.NewValidationError("name", "must be at most 50 characters")
	}
	return nil
}
