package playertypes

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SortMode selects the ordering of a player listing.
type SortMode int

const (
	// SortByName orders by last name, then first name, ascending.
	SortByName SortMode = iota
	// SortByScoreDesc orders by current total points descending, ties by name.
	SortByScoreDesc
)

// String returns the wire name of the sort mode.
func (m SortMode) String() string {
	switch m {
	case SortByName:
		return "NAME"
	case SortByScoreDesc:
		return "SCORE_DESC"
	default:
		return fmt.Sprintf("SortMode(%d)", int(m))
	}
}

// IsValid reports whether m is a known sort mode.
func (m SortMode) IsValid() bool {
	return m == SortByName || m == SortByScoreDesc
}

// ParseSortMode accepts "NAME" and "SCORE_DESC" in any case. An empty value
// defaults to SortByName.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NAME":
		return SortByName, nil
	case "SCORE_DESC":
		return SortByScoreDesc, nil
	default:
		return SortByName, fmt.Errorf("unknown sort mode %q", s)
	}
}

// PlayerInfo is the identity of a player.
type PlayerInfo struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// PlayerView is a player together with its current score snapshot.
type PlayerView struct {
	ID                   uuid.UUID `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	CurrentTotalPoints   int       `json:"current_total_points"`
	CurrentSequenceIndex int       `json:"current_sequence_index"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// PlayerPage is one page of a listing plus the directory size.
type PlayerPage struct {
	Items      []PlayerView
	TotalCount int
	Offset     int
	PageSize   int
	Sort       SortMode
}
