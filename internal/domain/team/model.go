package team

import (
	"fmt"
	"strings"
)

// Team is a professional cycling team identified by its short code.
type Team struct {
	ID       int64
	Code     string
	Name     string
	ImageURL string
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.Code) == "" {
		return fmt.Errorf("team code is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// IDsByCode indexes teams by their short code.
func IDsByCode(teams []Team) map[string]int64 {
	out := make(map[string]int64, len(teams))
	for _, item := range teams {
		code := strings.TrimSpace(item.Code)
		if code == "" {
			continue
		}
		out[code] = item.ID
	}
	return out
}
