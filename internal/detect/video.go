package detect

import (
	"time"

	"github.com/masterFuf/taktik-bot-sub000/internal/core"
	"github.com/masterFuf/taktik-bot-sub000/internal/selectors"
)

const textTimeout = 1 * time.Second

// VideoInfo describes the video currently on screen.
type VideoInfo struct {
	Author      string
	Description string
	LikeCount   string
	Liked       bool
	Favorited   bool
	Ad          bool
}

// ToMap flattens the info for event callbacks.
func (v VideoInfo) ToMap() map[string]any {
	return map[string]any{
		"author":      v.Author,
		"description": v.Description,
		"like_count":  v.LikeCount,
		"is_liked":    v.Liked,
		"is_ad":       v.Ad,
	}
}

// Signature returns the cheap fingerprint used for stuck detection:
// author plus like count. Compared against the previous iteration's value
// and discarded afterwards.
func (v VideoInfo) Signature() string {
	return v.Author + "_" + v.LikeCount
}

// VideoInfo extracts everything knowable about the current video in one
// pass. Missing elements yield zero values, never errors.
func (d *Detector) VideoInfo() VideoInfo {
	author, _ := d.screen.GetText(selectors.VideoAuthor, textTimeout)
	desc, _ := d.screen.GetText(selectors.VideoDescription, textTimeout)
	likes, _ := d.screen.GetText(selectors.VideoLikeCount, textTimeout)
	return VideoInfo{
		Author:      core.NormalizeUsername(author),
		Description: desc,
		LikeCount:   likes,
		Liked:       d.screen.Exists(selectors.LikeButtonLiked, d.probe),
		Ad:          d.screen.Exists(selectors.AdLabel, d.probe),
	}
}

// ProfileInfo describes the profile page currently on screen.
type ProfileInfo struct {
	Username    string
	DisplayName string
	Following   int
	Followers   int
	Likes       int
	Bio         string
}

// ToMap flattens the info for event callbacks.
func (p ProfileInfo) ToMap() map[string]any {
	return map[string]any{
		"username":     p.Username,
		"display_name": p.DisplayName,
		"following":    p.Following,
		"followers":    p.Followers,
		"likes":        p.Likes,
		"bio":          p.Bio,
	}
}

// ProfileInfo extracts the visible profile fields. The three stat values
// appear in layout order: following, followers, likes.
func (d *Detector) ProfileInfo() ProfileInfo {
	info := ProfileInfo{}
	if name, ok := d.screen.GetText(selectors.ProfileUsername, textTimeout); ok {
		info.Username = core.NormalizeUsername(name)
	}
	info.DisplayName, _ = d.screen.GetText(selectors.ProfileDisplayName, textTimeout)
	info.Bio, _ = d.screen.GetText(selectors.ProfileBio, textTimeout)

	stats := d.screen.All(selectors.ProfileStatValue)
	if len(stats) > 0 {
		info.Following = ParseCount(stats[0].Text)
	}
	if len(stats) > 1 {
		info.Followers = ParseCount(stats[1].Text)
	}
	if len(stats) > 2 {
		info.Likes = ParseCount(stats[2].Text)
	}
	return info
}

// CurrentUsername returns the normalized @username of the profile on
// screen, or "" when not on a profile.
func (d *Detector) CurrentUsername() string {
	name, ok := d.screen.GetText(selectors.ProfileUsername, textTimeout)
	if !ok {
		return ""
	}
	return core.NormalizeUsername(name)
}
