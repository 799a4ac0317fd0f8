package handlers

import (
	"time"

	"streamflix/internal/domain"
)

type profileSummary struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	IsKids    bool   `json:"is_kids"`
}

type userResponse struct {
	ID               uint             `json:"id"`
	Email            string           `json:"email"`
	SubscriptionPlan string           `json:"subscription_plan"`
	Profiles         []profileSummary `json:"profiles"`
}

func toUserResponse(u *domain.User) userResponse {
	profiles := make([]profileSummary, 0, len(u.Profiles))
	for _, p := range u.Profiles {
		profiles = append(profiles, profileSummary{ID: p.ID, Name: p.Name, AvatarURL: p.AvatarURL, IsKids: p.IsKids})
	}
	return userResponse{
		ID:               u.ID,
		Email:            u.Email,
		SubscriptionPlan: u.SubscriptionPlan,
		Profiles:         profiles,
	}
}

type profileListItem struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	IsKids    bool      `json:"is_kids"`
	CreatedAt time.Time `json:"created_at"`
}

func toProfileList(profiles []domain.Profile) []profileListItem {
	out := make([]profileListItem, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, profileListItem{
			ID:        p.ID,
			Name:      p.Name,
			AvatarURL: p.AvatarURL,
			IsKids:    p.IsKids,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}

type profileDetail struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url"`
	IsKids    bool      `json:"is_kids"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProfileDetail(p *domain.Profile) profileDetail {
	return profileDetail{
		ID:        p.ID,
		UserID:    p.UserID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		IsKids:    p.IsKids,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// profileShort - форма профиля в ответах на изменение.
type profileShort struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
	IsKids    bool   `json:"is_kids"`
}

func toProfileShort(p *domain.Profile) profileShort {
	return profileShort{ID: p.ID, UserID: p.UserID, Name: p.Name, AvatarURL: p.AvatarURL, IsKids: p.IsKids}
}

type watchlistItemResponse struct {
	ID          uint      `json:"id"`
	MovieID     string    `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	MoviePoster string    `json:"movie_poster"`
	MovieType   string    `json:"movie_type"`
	AddedAt     time.Time `json:"added_at"`
}

func toWatchlistItem(it *domain.WatchlistItem) watchlistItemResponse {
	return watchlistItemResponse{
		ID:          it.ID,
		MovieID:     it.MovieID,
		MovieTitle:  it.MovieTitle,
		MoviePoster: it.MoviePoster,
		MovieType:   it.MovieType,
		AddedAt:     it.AddedAt,
	}
}

type historyItemResponse struct {
	ID              uint      `json:"id"`
	MovieID         string    `json:"movie_id"`
	MovieTitle      string    `json:"movie_title"`
	MoviePoster     string    `json:"movie_poster"`
	MovieType       string    `json:"movie_type"`
	WatchedAt       time.Time `json:"watched_at"`
	ProgressPercent float64   `json:"progress_percent"`
}

type avatarResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
}
