package controllers

import (
	"time"

	"Pickme/api/bracket"
	"Pickme/api/media"
	"Pickme/api/models"
)

type CatalogItemDTO struct {
	Position  int    `json:"position"`
	Title     string `json:"title"`
	MediaLink string `json:"media_link"`
	VideoID   string `json:"video_id,omitempty"`
}

type CatalogSummaryDTO struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	ItemCount int64     `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CatalogDTO struct {
	CatalogSummaryDTO
	Items []CatalogItemDTO `json:"items"`
}

// TournamentDTO is what the browser renders after every request: the pair on
// offer, the cue instructions for both players and the progress counters.
type TournamentDTO struct {
	ID           string             `json:"id"`
	CatalogID    string             `json:"catalog_id"`
	State        string             `json:"state"`
	RoundLabel   string             `json:"round_label"`
	RoundSize    int                `json:"round_size"`
	MatchInRound int                `json:"match_in_round"`
	Match        int                `json:"match"`
	TotalMatches int                `json:"total_matches"`
	Alive        int                `json:"alive"`
	Pair         *bracket.Pair      `json:"pair,omitempty"`
	Players      *[2]media.CueSheet `json:"players,omitempty"`
	LastPick     *PickDTO           `json:"last_pick,omitempty"`
	Champion     *bracket.Item      `json:"champion,omitempty"`
	Finished     bool               `json:"finished"`
}

// PickDTO echoes the last accepted selection. The losing slot's player is
// stopped and the winner keeps playing.
type PickDTO struct {
	Match   int               `json:"match"`
	Index   int               `json:"index"`
	Winner  bracket.Item      `json:"winner"`
	Players [2]media.CueSheet `json:"players"`
}

type SelectionRequest struct {
	Index *int `json:"index"`
	Match *int `json:"match"`
}

type ChampionsEnvelope struct {
	CatalogID string                    `json:"catalog_id"`
	Champions []models.ChampionStanding `json:"champions"`
}

type DescriptionDTO struct {
	Subject         string   `json:"subject"`
	Topic           string   `json:"topic"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
}
