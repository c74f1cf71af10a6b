package cli

import (
	"github.com/mkovach/crewboard/internal/board"
)

// SharedState holds context shared across all views via pointer. The board
// session inside it is single-owner: views read it freely but mutate it only
// on the UI goroutine.
type SharedState struct {
	App     *App
	Session *board.Session
	Drop    *board.DropController

	// Terminal dimensions
	Width  int
	Height int

	// Banner is the inline status/error line under the header.
	Banner    string
	BannerErr bool
}

// ContentHeight returns the available height for view content, accounting
// for header (2 lines: title + separator), banner (1 line), and status bar
// (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}

// SetBanner replaces the banner text.
func (s *SharedState) SetBanner(text string, isErr bool) {
	s.Banner = text
	s.BannerErr = isErr
}

// ClearBanner removes the banner.
func (s *SharedState) ClearBanner() {
	s.Banner = ""
	s.BannerErr = false
}
