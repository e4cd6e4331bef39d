package model

// Summary describes the loaded dataset on the home page.
type Summary struct {
	Players    int
	Clubs      int
	Year       int
	TopPlayers []Player
}
