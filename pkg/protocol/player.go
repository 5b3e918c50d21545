package protocol

type PlayerID string

type Player struct {
	ID       PlayerID `json:"id"`
	Nickname string   `json:"nickname"`
}

// Is compares players by ID. Nil players never match.
func (p *Player) Is(other *Player) bool {
	if p == nil || other == nil {
		return false
	}
	return p.ID == other.ID
}

func (p *Player) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.Nickname
}
