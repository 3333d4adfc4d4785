package apifootball

// Wire types for the API-Football v3 payloads this client consumes.
// Every endpoint shares the same envelope shape; the errors field is
// polymorphic (empty array on success, object keyed by parameter name
// on failure) so it is probed separately before the typed decode.

type pagingBlock struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type envelopeProbe struct {
	Errors  any         `json:"errors"`
	Results int         `json:"results"`
	Paging  pagingBlock `json:"paging"`
}

type leagueBlock struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Logo string `json:"logo"`
}

type countryBlock struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

type seasonBlock struct {
	Year    int    `json:"year"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

type leagueItem struct {
	League  leagueBlock   `json:"league"`
	Country countryBlock  `json:"country"`
	Seasons []seasonBlock `json:"seasons"`
}

type leaguesEnvelope struct {
	Response []leagueItem `json:"response"`
}

type teamBlock struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Country  string `json:"country"`
	Founded  int    `json:"founded"`
	National bool   `json:"national"`
	Logo     string `json:"logo"`
}

type venueBlock struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Capacity int    `json:"capacity"`
}

type teamItem struct {
	Team  teamBlock  `json:"team"`
	Venue venueBlock `json:"venue"`
}

type teamsEnvelope struct {
	Response []teamItem `json:"response"`
}

type birthBlock struct {
	Date    string `json:"date"`
	Place   string `json:"place"`
	Country string `json:"country"`
}

type playerBlock struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Firstname   string     `json:"firstname"`
	Lastname    string     `json:"lastname"`
	Birth       birthBlock `json:"birth"`
	Nationality string     `json:"nationality"`
	Height      string     `json:"height"`
	Weight      string     `json:"weight"`
	Photo       string     `json:"photo"`
}

type teamRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	National bool   `json:"national"`
}

type leagueRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Season  int    `json:"season"`
}

type gamesBlock struct {
	// The provider spells the field this way.
	Appearences int    `json:"appearences"`
	Lineups     int    `json:"lineups"`
	Minutes     int    `json:"minutes"`
	Position    string `json:"position"`
	Rating      string `json:"rating"`
	Captain     bool   `json:"captain"`
}

type goalsBlock struct {
	Total   int `json:"total"`
	Assists int `json:"assists"`
}

type cardsBlock struct {
	Yellow    int `json:"yellow"`
	Yellowred int `json:"yellowred"`
	Red       int `json:"red"`
}

type statisticsBlock struct {
	Team   teamRef    `json:"team"`
	League leagueRef  `json:"league"`
	Games  gamesBlock `json:"games"`
	Goals  goalsBlock `json:"goals"`
	Cards  cardsBlock `json:"cards"`
}

type playerItem struct {
	Player     playerBlock       `json:"player"`
	Statistics []statisticsBlock `json:"statistics"`
}

type playersEnvelope struct {
	Response []playerItem `json:"response"`
	Paging   pagingBlock  `json:"paging"`
}

type playerSeasonsEnvelope struct {
	Response []int `json:"response"`
}

type transferTeams struct {
	In  teamRef `json:"in"`
	Out teamRef `json:"out"`
}

type transferBlock struct {
	Date  string        `json:"date"`
	Type  string        `json:"type"`
	Teams transferTeams `json:"teams"`
}

type playerRef struct {
	ID int64 `json:"id"`
}

type transferItem struct {
	Player    playerRef       `json:"player"`
	Transfers []transferBlock `json:"transfers"`
}

type transfersEnvelope struct {
	Response []transferItem `json:"response"`
}

type fixtureRef struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
}

type injuryItem struct {
	Player struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Type   string `json:"type"`
		Reason string `json:"reason"`
	} `json:"player"`
	Fixture fixtureRef `json:"fixture"`
	League  leagueRef  `json:"league"`
}

type injuriesEnvelope struct {
	Response []injuryItem `json:"response"`
}

type sidelinedBlock struct {
	Type  string `json:"type"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type sidelinedEnvelope struct {
	Response []sidelinedBlock `json:"response"`
}

type trophyBlock struct {
	League  string `json:"league"`
	Country string `json:"country"`
	Season  string `json:"season"`
	Place   string `json:"place"`
}

type trophiesEnvelope struct {
	Response []trophyBlock `json:"response"`
}

type countriesEnvelope struct {
	Response []countryBlock `json:"response"`
}
