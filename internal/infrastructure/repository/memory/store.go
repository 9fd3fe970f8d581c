package memory

import (
	"sync"

	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
)

// Store holds every table of the in-memory backend. The repositories share
// one Store so joins (team names, startlists) see the same data.
type Store struct {
	mu sync.RWMutex

	nextTeamID    int64
	nextCyclistID int64
	nextRaceID    int64
	nextResultID  int64

	teams        []team.Team
	cyclists     []cyclist.Cyclist
	races        []race.Race
	points       []race.CategoryPoints
	raceCyclists map[int64][]int64
	results      []result.RaceResult
}

func NewStore() *Store {
	return &Store{raceCyclists: make(map[int64][]int64)}
}

func (s *Store) teamByID(id int64) (team.Team, bool) {
	for _, item := range s.teams {
		if item.ID == id {
			return item, true
		}
	}
	return team.Team{}, false
}

func (s *Store) withTeam(item cyclist.Cyclist) cyclist.Cyclist {
	if t, ok := s.teamByID(item.TeamID); ok {
		item.TeamName = t.Name
		item.TeamCode = t.Code
		item.TeamImageURL = t.ImageURL
	}
	return item
}

func (s *Store) raceIndex(id int64) int {
	for idx := range s.races {
		if s.races[idx].ID == id {
			return idx
		}
	}
	return -1
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
