package models

import (
	"time"
)

type Game string

const (
	GameMTG Game = "mtg"
)

// Set is a canonical set from the card catalog. The catalog owns these rows;
// the importer only reads them.
type Set struct {
	Code       string    `json:"code" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"not null;uniqueIndex"`
	ReleasedAt string    `json:"released_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Card is one canonical printing. (SetCode, CardNumber) is not unique on its
// own: token and promo variants may share a number, so matching also needs
// Name and IsPromo.
type Card struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Game       Game      `json:"game" gorm:"not null;default:'mtg'"`
	Name       string    `json:"name" gorm:"not null;index"`
	SetName    string    `json:"set_name"`
	SetCode    string    `json:"set_code" gorm:"not null;index"`
	CardNumber string    `json:"card_number"`
	Rarity     string    `json:"rarity"`
	IsToken    bool      `json:"is_token"`
	IsPromo    bool      `json:"is_promo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SetListResult struct {
	Sets       []Set `json:"sets"`
	TotalCount int   `json:"total_count"`
}

type CardListResult struct {
	Cards      []Card `json:"cards"`
	TotalCount int    `json:"total_count"`
}
