package controllers

import (
	"Pickme/api/bracket"
	"Pickme/api/media"
	"Pickme/api/models"
	"Pickme/api/sessions"

	"gorm.io/gorm"
)

func catalogToSummaryDTO(catalog *models.Catalog, itemCount int64) CatalogSummaryDTO {
	return CatalogSummaryDTO{
		ID:        catalog.PublicID.String(),
		Title:     catalog.Title,
		Topic:     catalog.Topic,
		ItemCount: itemCount,
		CreatedAt: catalog.CreatedAt,
		UpdatedAt: catalog.UpdatedAt,
	}
}

func catalogToDTO(catalog *models.Catalog) CatalogDTO {
	items := make([]CatalogItemDTO, 0, len(catalog.Items))
	for _, item := range catalog.Items {
		videoID, _ := media.ExtractVideoID(item.MediaLink)
		items = append(items, CatalogItemDTO{
			Position:  item.Position,
			Title:     item.Title,
			MediaLink: item.MediaLink,
			VideoID:   videoID,
		})
	}
	return CatalogDTO{
		CatalogSummaryDTO: catalogToSummaryDTO(catalog, int64(len(catalog.Items))),
		Items:             items,
	}
}

// cuePair runs a deck of recording players over pair. Items whose link has
// no video id leave their slot stopped.
func cuePair(pair bracket.Pair) (*media.Deck, *[2]media.CueSheet) {
	sheets := &[2]media.CueSheet{}
	deck := &media.Deck{Players: [2]media.Player{&sheets[0], &sheets[1]}}
	// The error only names the bad link; Show has already stopped that slot
	// and the pair stays playable without its video.
	_ = deck.Show(pair)
	return deck, sheets
}

func pickToDTO(pick *sessions.Pick) *PickDTO {
	if pick == nil {
		return nil
	}
	deck, sheets := cuePair(pick.Pair)
	deck.Pick(pick.Index)
	if !sheets[pick.Index].Stopped {
		deck.Players[pick.Index].PlayVideo()
	}
	return &PickDTO{
		Match:   pick.Match,
		Index:   pick.Index,
		Winner:  pick.Winner,
		Players: *sheets,
	}
}

func tournamentToDTO(db *gorm.DB, view sessions.View) TournamentDTO {
	dto := TournamentDTO{
		ID:           view.ID.String(),
		CatalogID:    resolveCatalogPublicID(db, view.CatalogID),
		State:        view.State,
		RoundLabel:   view.RoundLabel,
		RoundSize:    view.RoundSize,
		MatchInRound: view.MatchInRound,
		Match:        view.MatchesPlayed,
		TotalMatches: view.TotalMatches,
		Alive:        view.Alive,
		Pair:         view.Pair,
		LastPick:     pickToDTO(view.LastPick),
		Champion:     view.Champion,
		Finished:     view.Finished,
	}
	if view.Pair != nil {
		_, dto.Players = cuePair(*view.Pair)
	}
	return dto
}
