package entities

import "time"

// CardType enumerates the closed set of card kinds.
type CardType string

const (
	CardTypeText    CardType = "TEXT"
	CardTypeImage   CardType = "IMAGE"
	CardTypeLink    CardType = "LINK"
	CardTypeStats   CardType = "STATS"
	CardTypeWeather CardType = "WEATHER"
	CardTypeTodo    CardType = "TODO"
	CardTypeChart   CardType = "CHART"
	CardTypeCustom  CardType = "CUSTOM"
)

// CardTypes lists every card type in declaration order.
var CardTypes = []CardType{
	CardTypeText,
	CardTypeImage,
	CardTypeLink,
	CardTypeStats,
	CardTypeWeather,
	CardTypeTodo,
	CardTypeChart,
	CardTypeCustom,
}

// IsValid reports whether t is a member of the enumeration.
func (t CardType) IsValid() bool {
	for _, ct := range CardTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// Card is a positioned, typed, configurable unit of dashboard content.
type Card struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Type        CardType  `json:"type"`
	Config      Config    `json:"config"`
	Position    int       `json:"position"`
	IsActive    bool      `json:"isActive"`
	UserID      *int64    `json:"userId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CardTemplate is a named, reusable default configuration for a card type.
type CardTemplate struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          CardType  `json:"type"`
	DefaultConfig Config    `json:"defaultConfig"`
	Description   *string   `json:"description,omitempty"`
	Preview       *string   `json:"preview,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewCard builds an active card ready to be persisted. Position is assigned
// by the caller.
func NewCard(title string, description *string, cardType CardType, config Config, userID *int64) *Card {
	return &Card{
		Title:       title,
		Description: description,
		Type:        cardType,
		Config:      config.Clone(),
		IsActive:    true,
		UserID:      userID,
	}
}
