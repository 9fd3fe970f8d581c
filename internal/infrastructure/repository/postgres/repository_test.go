package postgres

import (
	"github.com/riskibarqy/fantasy-cycling/internal/domain/cyclist"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/race"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/result"
	"github.com/riskibarqy/fantasy-cycling/internal/domain/team"
)

var (
	_ team.Repository    = (*TeamRepository)(nil)
	_ cyclist.Repository = (*CyclistRepository)(nil)
	_ race.Repository    = (*RaceRepository)(nil)
	_ result.Repository  = (*ResultRepository)(nil)
	_ result.Replacer    = (*ResultRepository)(nil)
)
