package models

import (
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TournamentResult records the champion of one finished run.
type TournamentResult struct {
	ID            uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PublicID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"public_id"`
	CatalogID     uint      `gorm:"not null;index" json:"catalog_id"`
	ChampionTitle string    `gorm:"size:255;not null" json:"champion_title"`
	ChampionLink  string    `gorm:"size:1024;not null" json:"champion_link"`
	Contestants   int       `gorm:"not null" json:"contestants"`
	Matches       int       `gorm:"not null" json:"matches"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ChampionStanding is one leaderboard row.
type ChampionStanding struct {
	Title     string `json:"title" gorm:"column:champion_title"`
	MediaLink string `json:"media_link" gorm:"column:champion_link"`
	Wins      int64  `json:"wins" gorm:"column:wins"`
}

func (r *TournamentResult) BeforeCreate(tx *gorm.DB) error {
	if r.PublicID == uuid.Nil {
		r.PublicID = uuid.New()
	}
	return nil
}

func (r *TournamentResult) Validate() map[string]string {
	errorsMap := make(map[string]string)
	if r.CatalogID == 0 {
		errorsMap["Required_catalog"] = errors.New("required catalog").Error()
	}
	if r.ChampionTitle == "" {
		errorsMap["Required_champion"] = errors.New("required champion").Error()
	}
	if r.Contestants < 1 || r.Matches != r.Contestants-1 {
		errorsMap["Invalid_matches"] = errors.New("a tournament plays one match fewer than it has contestants").Error()
	}
	return errorsMap
}

func (r *TournamentResult) SaveResult(db *gorm.DB) (*TournamentResult, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	if err := db.Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// ChampionStandings ranks items of a catalog by tournaments won.
func ChampionStandings(db *gorm.DB, catalogID uint, limit int) ([]ChampionStanding, error) {
	if limit <= 0 {
		limit = 10
	}
	query, args, err := sq.Select("champion_title", "champion_link", "COUNT(*) AS wins").
		From("tournament_results").
		Where(sq.Eq{"catalog_id": catalogID}).
		GroupBy("champion_title", "champion_link").
		OrderBy("wins DESC", "champion_title ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return []ChampionStanding{}, err
	}

	standings := []ChampionStanding{}
	if err := db.Raw(query, args...).Scan(&standings).Error; err != nil {
		return []ChampionStanding{}, err
	}
	return standings, nil
}
