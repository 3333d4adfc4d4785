package memory

import (
	"sync"

	"github.com/youthscout/talent-tracker/internal/domain/club"
	"github.com/youthscout/talent-tracker/internal/domain/country"
	"github.com/youthscout/talent-tracker/internal/domain/injury"
	"github.com/youthscout/talent-tracker/internal/domain/league"
	"github.com/youthscout/talent-tracker/internal/domain/player"
	"github.com/youthscout/talent-tracker/internal/domain/playerstat"
	"github.com/youthscout/talent-tracker/internal/domain/sidelined"
	"github.com/youthscout/talent-tracker/internal/domain/transfer"
	"github.com/youthscout/talent-tracker/internal/domain/trophy"
)

// Store is an in-memory backing for every repository interface. One
// mutex guards all tables because the population pipeline runs on a
// single worker and cross-entity reads (club rosters via statistics)
// need a consistent view.
type Store struct {
	mu sync.RWMutex

	countries  map[int64]country.Country
	leagues    map[int64]league.League
	clubs      map[int64]club.Club
	players    map[int64]player.Player
	statistics map[int64]playerstat.Statistic
	transfers  map[int64]transfer.Transfer
	injuries   map[int64]injury.Injury
	spells     map[int64]sidelined.Spell
	trophies   map[int64]trophy.Trophy

	nextID int64
}

func NewStore() *Store {
	return &Store{
		countries:  make(map[int64]country.Country),
		leagues:    make(map[int64]league.League),
		clubs:      make(map[int64]club.Club),
		players:    make(map[int64]player.Player),
		statistics: make(map[int64]playerstat.Statistic),
		transfers:  make(map[int64]transfer.Transfer),
		injuries:   make(map[int64]injury.Injury),
		spells:     make(map[int64]sidelined.Spell),
		trophies:   make(map[int64]trophy.Trophy),
	}
}

// allocID must be called with the write lock held.
func (s *Store) allocID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Countries() *CountryRepository   { return &CountryRepository{store: s} }
func (s *Store) Leagues() *LeagueRepository      { return &LeagueRepository{store: s} }
func (s *Store) Clubs() *ClubRepository          { return &ClubRepository{store: s} }
func (s *Store) Players() *PlayerRepository      { return &PlayerRepository{store: s} }
func (s *Store) Statistics() *StatRepository     { return &StatRepository{store: s} }
func (s *Store) Transfers() *TransferRepository  { return &TransferRepository{store: s} }
func (s *Store) Injuries() *InjuryRepository     { return &InjuryRepository{store: s} }
func (s *Store) Sidelined() *SidelinedRepository { return &SidelinedRepository{store: s} }
func (s *Store) Trophies() *TrophyRepository     { return &TrophyRepository{store: s} }
