package media

import "Pickme/api/bracket"

// Player is an embedded video player addressed by video id.
type Player interface {
	CueVideoByID(id string)
	PlayVideo()
	StopVideo()
}

// Deck keeps two players in step with the pair on offer.
type Deck struct {
	Players [2]Player
}

// Show cues each slot with its item's video. Items without a usable link
// leave their slot stopped.
func (d *Deck) Show(pair bracket.Pair) error {
	var firstErr error
	for i, item := range pair {
		id, err := ExtractVideoID(item.MediaLink)
		if err != nil {
			d.Players[i].StopVideo()
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		d.Players[i].CueVideoByID(id)
	}
	return firstErr
}

// Pick stops the slot that lost.
func (d *Deck) Pick(index int) {
	for i, p := range d.Players {
		if i != index {
			p.StopVideo()
		}
	}
}

// CueSheet is a Player that only records what it was told, for handing the
// cue instructions to a browser-side player.
type CueSheet struct {
	VideoID string `json:"video_id"`
	Playing bool   `json:"playing"`
	Stopped bool   `json:"stopped"`
}

func (c *CueSheet) CueVideoByID(id string) {
	c.VideoID = id
	c.Playing = false
	c.Stopped = false
}

func (c *CueSheet) PlayVideo() {
	c.Playing = true
	c.Stopped = false
}

func (c *CueSheet) StopVideo() {
	c.Playing = false
	c.Stopped = true
}
