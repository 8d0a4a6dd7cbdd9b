package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role separates the player surface from the administrative catalog surface.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is the per-player record: identity plus the full gamification state
// (progression counters and armed effects). The engine owns Energy/XP/Level/
// Coins/BlueGems/Mana and Effects; everything else is profile data.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`

	Energy   int `json:"energy"`
	XP       int `json:"xp"`
	Level    int `json:"level"`
	Coins    int `json:"coins"`
	BlueGems int `json:"blue_gems"`
	Mana     int `json:"mana"`

	LoginStreak   int        `json:"login_streak"`
	LastLoginDate *time.Time `json:"last_login_date,omitempty"`

	Effects EffectState `json:"effects"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Deleted   bool      `json:"-"`
}

// Zone groups projects and habits and carries its own progression track.
type Zone struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Name       string    `json:"name"`
	Color      string    `json:"color,omitempty"`
	Energy     int       `json:"energy"`
	XP         int       `json:"xp"`
	Level      int       `json:"level"`
	YellowGems int       `json:"yellow_gems"`
	CreatedAt  time.Time `json:"created_at"`
	Deleted    bool      `json:"-"`
}
