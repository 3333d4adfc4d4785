package apifootball

import (
	"strconv"
	"strings"
	"time"

	"github.com/youthscout/talent-tracker/internal/usecase"
)

const maxCountryCodeLen = 10

func parseLeagueItem(item leagueItem) usecase.LeagueRecord {
	season := 0
	for _, row := range item.Seasons {
		if row.Current {
			season = row.Year
			break
		}
		if row.Year > season {
			season = row.Year
		}
	}

	return usecase.LeagueRecord{
		ExternalID:  item.League.ID,
		Name:        strings.TrimSpace(item.League.Name),
		Type:        strings.TrimSpace(item.League.Type),
		Season:      season,
		CountryName: strings.TrimSpace(item.Country.Name),
		LogoURL:     strings.TrimSpace(item.League.Logo),
	}
}

func parseTeamItem(item teamItem) usecase.ClubRecord {
	return usecase.ClubRecord{
		ExternalID:  item.Team.ID,
		Name:        strings.TrimSpace(item.Team.Name),
		Country:     strings.TrimSpace(item.Team.Country),
		National:    item.Team.National,
		Founded:     item.Team.Founded,
		Stadium:     strings.TrimSpace(item.Venue.Name),
		StadiumCity: strings.TrimSpace(item.Venue.City),
		LogoURL:     strings.TrimSpace(item.Team.Logo),
	}
}

func parsePlayerItem(item playerItem) usecase.PlayerRecord {
	record := usecase.PlayerRecord{
		ExternalID:  item.Player.ID,
		Name:        strings.TrimSpace(item.Player.Name),
		FirstName:   strings.TrimSpace(item.Player.Firstname),
		LastName:    strings.TrimSpace(item.Player.Lastname),
		DateOfBirth: parseISODate(item.Player.Birth.Date),
		Nationality: strings.TrimSpace(item.Player.Nationality),
		HeightCM:    parseMeasurement(item.Player.Height, "cm"),
		WeightKG:    parseMeasurement(item.Player.Weight, "kg"),
		PhotoURL:    strings.TrimSpace(item.Player.Photo),
	}

	record.Statistics = make([]usecase.StatisticRecord, 0, len(item.Statistics))
	for _, row := range item.Statistics {
		record.Statistics = append(record.Statistics, parseStatisticsBlock(row))
	}
	return record
}

func parseStatisticsBlock(row statisticsBlock) usecase.StatisticRecord {
	return usecase.StatisticRecord{
		ClubExternalID:   row.Team.ID,
		ClubName:         strings.TrimSpace(row.Team.Name),
		ClubNational:     row.Team.National,
		LeagueExternalID: row.League.ID,
		LeagueName:       strings.TrimSpace(row.League.Name),
		Season:           row.League.Season,
		Position:         strings.TrimSpace(row.Games.Position),
		Appearances:      row.Games.Appearences,
		Lineups:          row.Games.Lineups,
		Minutes:          row.Games.Minutes,
		Goals:            row.Goals.Total,
		Assists:          row.Goals.Assists,
		YellowCards:      row.Cards.Yellow,
		// A second yellow ends in a dismissal, so it counts as red.
		RedCards: row.Cards.Red + row.Cards.Yellowred,
		Rating:   parseRating(row.Games.Rating),
		Captain:  row.Games.Captain,
	}
}

func parseTransferBlock(row transferBlock) (usecase.TransferRecord, bool) {
	date := parseISODate(row.Date)
	if date == nil {
		return usecase.TransferRecord{}, false
	}

	return usecase.TransferRecord{
		Date:             *date,
		Type:             strings.TrimSpace(row.Type),
		ClubInExternalID: row.Teams.In.ID,
		ClubInName:       strings.TrimSpace(row.Teams.In.Name),
		ClubOutExternal:  row.Teams.Out.ID,
		ClubOutName:      strings.TrimSpace(row.Teams.Out.Name),
	}, true
}

func parseInjuryItem(item injuryItem) usecase.InjuryRecord {
	return usecase.InjuryRecord{
		Season: item.League.Season,
		Type:   strings.TrimSpace(item.Player.Type),
		Reason: strings.TrimSpace(item.Player.Reason),
		Date:   parseISODate(item.Fixture.Date),
	}
}

func parseSidelinedBlock(item sidelinedBlock) usecase.SidelinedRecord {
	return usecase.SidelinedRecord{
		Type:  strings.TrimSpace(item.Type),
		Start: parseISODate(item.Start),
		End:   parseISODate(item.End),
	}
}

func parseTrophyBlock(item trophyBlock) usecase.TrophyRecord {
	return usecase.TrophyRecord{
		League:  strings.TrimSpace(item.League),
		Country: strings.TrimSpace(item.Country),
		Season:  strings.TrimSpace(item.Season),
		Place:   strings.TrimSpace(item.Place),
	}
}

func parseCountryBlock(item countryBlock) usecase.CountryRecord {
	return usecase.CountryRecord{
		Name:    strings.TrimSpace(item.Name),
		Code:    truncateCountryCode(item.Code),
		FlagURL: strings.TrimSpace(item.Flag),
	}
}

// parseMeasurement reads values like "180 cm" or "74 kg". Anything
// without the expected unit suffix is dropped rather than guessed at.
func parseMeasurement(raw, unit string) *int {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" || !strings.HasSuffix(value, unit) {
		return nil
	}
	value = strings.TrimSpace(strings.TrimSuffix(value, unit))
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return nil
	}
	return &parsed
}

func parseISODate(raw string) *time.Time {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}

	layouts := []string{
		"2006-01-02",
		time.RFC3339,
		"2006-01-02T15:04:05-07:00",
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			v := parsed.UTC()
			return &v
		}
	}
	return nil
}

// parseRating keeps the provider's 0-10 match rating when it parses
// cleanly and drops it otherwise.
func parseRating(raw string) *float64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed > 10 {
		return nil
	}
	return &parsed
}

func truncateCountryCode(raw string) string {
	code := strings.TrimSpace(raw)
	if len(code) > maxCountryCodeLen {
		return code[:maxCountryCodeLen]
	}
	return code
}
