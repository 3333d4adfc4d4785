package apifootball

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/youthscout/talent-tracker/internal/platform/logging"
	"github.com/youthscout/talent-tracker/internal/platform/resilience"
	"github.com/youthscout/talent-tracker/internal/usecase"
)

const (
	defaultBaseURL     = "https://v3.football.api-sports.io"
	defaultAPIHost     = "v3.football.api-sports.io"
	defaultMaxAttempts = 3
	defaultMinInterval = 150 * time.Millisecond
	defaultRetryBase   = time.Second
	maxResponseBytes   = 6 << 20
)

var errAPIFootballTransient = crerr.New("apifootball transient failure")

// Error message fragments the provider emits when the daily request
// quota is spent. These arrive with HTTP 200 and a populated errors
// object, so status-based handling alone cannot catch them.
var dailyLimitPhrases = []string{
	"request limit for the day",
	"daily limit",
	"reached the request limit",
}

// Body fragments that indicate a transient throttle worth retrying.
var transientBodyPhrases = []string{
	"rate limit",
	"too many requests",
	"timeout",
	"temporarily unavailable",
}

// CallRecorder observes every attempted provider request, retries
// included. The provider bills per request, not per success.
type CallRecorder interface {
	RecordCall()
}

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	APIHost        string
	Timeout        time.Duration
	MaxAttempts    int
	MinInterval    time.Duration
	RetryBaseDelay time.Duration
	Logger         *logging.Logger
	Recorder       CallRecorder
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	apiHost        string
	maxAttempts    int
	minInterval    time.Duration
	retryBase      time.Duration
	logger         *logging.Logger
	recorder       CallRecorder
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight

	paceMu      sync.Mutex
	lastRequest time.Time
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	apiHost := strings.TrimSpace(cfg.APIHost)
	if apiHost == "" {
		apiHost = defaultAPIHost
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	minInterval := cfg.MinInterval
	if minInterval <= 0 {
		minInterval = defaultMinInterval
	}
	retryBase := cfg.RetryBaseDelay
	if retryBase <= 0 {
		retryBase = defaultRetryBase
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		apiHost:        apiHost,
		maxAttempts:    maxAttempts,
		minInterval:    minInterval,
		retryBase:      retryBase,
		logger:         logger,
		recorder:       cfg.Recorder,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchLeague(ctx context.Context, leagueExternalID int64) (usecase.LeagueRecord, bool, error) {
	if leagueExternalID <= 0 {
		return usecase.LeagueRecord{}, false, fmt.Errorf("%w: league external id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope leaguesEnvelope
	ok, err := c.doJSON(ctx, "/leagues", map[string]string{"id": strconv.FormatInt(leagueExternalID, 10)}, &envelope)
	if err != nil {
		return usecase.LeagueRecord{}, false, fmt.Errorf("fetch league id=%d: %w", leagueExternalID, err)
	}
	if !ok || len(envelope.Response) == 0 {
		return usecase.LeagueRecord{}, false, nil
	}

	return parseLeagueItem(envelope.Response[0]), true, nil
}

func (c *Client) FetchClubsByLeague(ctx context.Context, leagueExternalID int64, season int) ([]usecase.ClubRecord, error) {
	if leagueExternalID <= 0 || season <= 0 {
		return nil, fmt.Errorf("%w: league external id and season are required", usecase.ErrInvalidInput)
	}

	query := map[string]string{
		"league": strconv.FormatInt(leagueExternalID, 10),
		"season": strconv.Itoa(season),
	}
	var envelope teamsEnvelope
	ok, err := c.doJSON(ctx, "/teams", query, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch clubs league=%d season=%d: %w", leagueExternalID, season, err)
	}
	if !ok {
		return nil, nil
	}

	out := make([]usecase.ClubRecord, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Team.ID <= 0 {
			continue
		}
		out = append(out, parseTeamItem(item))
	}
	return out, nil
}

func (c *Client) FetchClub(ctx context.Context, clubExternalID int64) (usecase.ClubRecord, bool, error) {
	if clubExternalID <= 0 {
		return usecase.ClubRecord{}, false, fmt.Errorf("%w: club external id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope teamsEnvelope
	ok, err := c.doJSON(ctx, "/teams", map[string]string{"id": strconv.FormatInt(clubExternalID, 10)}, &envelope)
	if err != nil {
		return usecase.ClubRecord{}, false, fmt.Errorf("fetch club id=%d: %w", clubExternalID, err)
	}
	if !ok || len(envelope.Response) == 0 {
		return usecase.ClubRecord{}, false, nil
	}

	return parseTeamItem(envelope.Response[0]), true, nil
}

func (c *Client) FetchPlayersPage(ctx context.Context, leagueExternalID int64, season, page int) ([]usecase.PlayerRecord, int, error) {
	if leagueExternalID <= 0 || season <= 0 || page <= 0 {
		return nil, 0, fmt.Errorf("%w: league external id, season and page are required", usecase.ErrInvalidInput)
	}

	query := map[string]string{
		"league": strconv.FormatInt(leagueExternalID, 10),
		"season": strconv.Itoa(season),
		"page":   strconv.Itoa(page),
	}
	var envelope playersEnvelope
	ok, err := c.doJSON(ctx, "/players", query, &envelope)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch players league=%d season=%d page=%d: %w", leagueExternalID, season, page, err)
	}
	if !ok {
		return nil, 0, nil
	}

	out := make([]usecase.PlayerRecord, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if item.Player.ID <= 0 {
			continue
		}
		out = append(out, parsePlayerItem(item))
	}
	return out, envelope.Paging.Total, nil
}

func (c *Client) FetchPlayerSeasons(ctx context.Context, playerExternalID int64) ([]int, error) {
	if playerExternalID <= 0 {
		return nil, fmt.Errorf("%w: player external id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope playerSeasonsEnvelope
	ok, err := c.doJSON(ctx, "/players/seasons", map[string]string{"player": strconv.FormatInt(playerExternalID, 10)}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch player seasons player=%d: %w", playerExternalID, err)
	}
	if !ok {
		return nil, nil
	}

	out := make([]int, 0, len(envelope.Response))
	for _, season := range envelope.Response {
		if season > 0 {
			out = append(out, season)
		}
	}
	return out, nil
}

func (c *Client) FetchPlayerBySeason(ctx context.Context, playerExternalID int64, season int) (usecase.PlayerRecord, bool, error) {
	if playerExternalID <= 0 || season <= 0 {
		return usecase.PlayerRecord{}, false, fmt.Errorf("%w: player external id and season are required", usecase.ErrInvalidInput)
	}

	query := map[string]string{
		"id":     strconv.FormatInt(playerExternalID, 10),
		"season": strconv.Itoa(season),
	}
	var envelope playersEnvelope
	ok, err := c.doJSON(ctx, "/players", query, &envelope)
	if err != nil {
		return usecase.PlayerRecord{}, false, fmt.Errorf("fetch player id=%d season=%d: %w", playerExternalID, season, err)
	}
	if !ok || len(envelope.Response) == 0 {
		return usecase.PlayerRecord{}, false, nil
	}

	return parsePlayerItem(envelope.Response[0]), true, nil
}

func (c *Client) FetchTransfers(ctx context.Context, playerExternalID int64) ([]usecase.TransferRecord, error) {
	if playerExternalID <= 0 {
		return nil, fmt.Errorf("%w: player external id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope transfersEnvelope
	ok, err := c.doJSON(ctx, "/transfers", map[string]string{"player": strconv.FormatInt(playerExternalID, 10)}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch transfers player=%d: %w", playerExternalID, err)
	}
	if !ok {
		return nil, nil
	}

	out := make([]usecase.TransferRecord, 0, 8)
	for _, item := range envelope.Response {
		for _, row := range item.Transfers {
			record, valid := parseTransferBlock(row)
			if !valid {
				continue
			}
			out = append(out, record)
		}
	}
	return out, nil
}

func (c *Client) FetchInjuries(ctx context.Context, playerExternalID int64, season int) ([]usecase.InjuryRecord, error) {
	if playerExternalID <= 0 || season <= 0 {
		return nil, fmt.Errorf("%w: player external id and season are required", usecase.ErrInvalidInput)
	}

	query := map[string]string{
		"player": strconv.FormatInt(playerExternalID, 10),
		"season": strconv.Itoa(season),
	}
	var envelope injuriesEnvelope
	ok, err := c.doJSON(ctx, "/injuries", query, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch injuries player=%d season=%d: %w", playerExternalID, season, err)
	}
	if !ok {
		return nil, nil
	}

	out := make([]usecase.InjuryRecord, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, parseInjuryItem(item))
	}
	return out, nil
}

func (c *Client) FetchSidelined(ctx context.Context, playerExternalID int64) ([]usecase.SidelinedRecord, error) {
	if playerExternalID <= 0 {
		return nil, fmt.Errorf("%w: player external id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope sidelinedEnvelope
	ok, err := c.doJSON(ctx, "/sidelined", map[string]string{"player": strconv.FormatInt(playerExternalID, 10)}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch sidelined player=%d: %w", playerExternalID, err)
	}
	if !ok {
		return nil, nil
	}

	out := make([]usecase.SidelinedRecord, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		out = append(out, parseSidelinedBlock(item))
	}
	return out, nil
}

func (c *Client) FetchTrophies(ctx context.Context, playerExternalID int64) ([]usecase.TrophyRecord, error) {
	if playerExternalID <= 0 {
		return nil, fmt.Errorf("%w: player external id must be greater than zero", usecase.ErrInvalidInput)
	}

	var envelope trophiesEnvelope
	ok, err := c.doJSON(ctx, "/trophies", map[string]string{"player": strconv.FormatInt(playerExternalID, 10)}, &envelope)
	if err != nil {
		return nil, fmt.Errorf("fetch trophies player=%d: %w", playerExternalID, err)
	}
	if !ok {
		return nil, nil
	}

	out := make([]usecase.TrophyRecord, 0, len(envelope.Response))
	for _, item := range envelope.Response {
		if strings.TrimSpace(item.League) == "" {
			continue
		}
		out = append(out, parseTrophyBlock(item))
	}
	return out, nil
}

func (c *Client) FetchCountry(ctx context.Context, name string) (usecase.CountryRecord, bool, error) {
	if strings.TrimSpace(name) == "" {
		return usecase.CountryRecord{}, false, fmt.Errorf("%w: country name is required", usecase.ErrInvalidInput)
	}

	var envelope countriesEnvelope
	ok, err := c.doJSON(ctx, "/countries", map[string]string{"name": strings.TrimSpace(name)}, &envelope)
	if err != nil {
		return usecase.CountryRecord{}, false, fmt.Errorf("fetch country name=%q: %w", name, err)
	}
	if !ok || len(envelope.Response) == 0 {
		return usecase.CountryRecord{}, false, nil
	}

	return parseCountryBlock(envelope.Response[0]), true, nil
}

// doJSON fetches one endpoint and decodes the envelope into target.
// The bool is false when the request failed in a way the pipeline
// should absorb: retries exhausted or a non-retryable provider error.
// Daily-limit rejections and context cancellation come back as errors.
func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) (bool, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "apifootball circuit breaker rejected request", "state", c.breaker.State())
			return false, nil
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errAPIFootballTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if stderrors.Is(err, usecase.ErrDailyLimitExceeded) || ctx.Err() != nil {
			return false, err
		}
		c.logger.WarnContext(ctx, "apifootball request failed, continuing without data", "url", fullURL, "error", err)
		return false, nil
	}

	raw, ok := out.([]byte)
	if !ok {
		return false, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("decode provider payload: %w", err)
	}

	return true, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			// Exponential backoff: base, base*2, base*4, ...
			delay := c.retryBase << (attempt - 2)
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		if err := c.pace(ctx); err != nil {
			return nil, err
		}
		if c.recorder != nil {
			c.recorder.RecordCall()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-rapidapi-key", c.apiKey)
		req.Header.Set("x-rapidapi-host", c.apiHost)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %s", errAPIFootballTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
			continue
		}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: read response body: %v", errAPIFootballTransient, readErr)
			continue
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			message, hasErrors := extractEnvelopeErrors(raw)
			if !hasErrors {
				return raw, nil
			}
			if isDailyLimitMessage(message) {
				return nil, fmt.Errorf("%w: %s", usecase.ErrDailyLimitExceeded, message)
			}
			if isTransientMessage(message) {
				lastErr = fmt.Errorf("%w: provider error: %s", errAPIFootballTransient, message)
				continue
			}
			return nil, fmt.Errorf("provider error: %s", message)
		}

		if isDailyLimitMessage(string(raw)) {
			return nil, fmt.Errorf("%w: provider status=%d body=%s", usecase.ErrDailyLimitExceeded, resp.StatusCode, abbreviateBody(raw))
		}
		if isRetryableStatus(resp.StatusCode) {
			lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPIFootballTransient, resp.StatusCode, abbreviateBody(raw))
			continue
		}
		return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	return nil, lastErr
}

// pace enforces the minimum spacing between consecutive requests so a
// full run stays under the provider's per-minute throttle.
func (c *Client) pace(ctx context.Context) error {
	c.paceMu.Lock()
	wait := c.minInterval - time.Since(c.lastRequest)
	if wait <= 0 || c.lastRequest.IsZero() {
		c.lastRequest = time.Now()
		c.paceMu.Unlock()
		return nil
	}
	c.lastRequest = time.Now().Add(wait)
	c.paceMu.Unlock()

	timer := time.NewTimer(wait)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// extractEnvelopeErrors probes the polymorphic errors field. The
// provider sends an empty array on success and either a map or a
// non-empty array of strings on failure.
func extractEnvelopeErrors(raw []byte) (string, bool) {
	var probe envelopeProbe
	if err := sonic.Unmarshal(raw, &probe); err != nil {
		return "", false
	}

	switch typed := probe.Errors.(type) {
	case nil:
		return "", false
	case []any:
		parts := make([]string, 0, len(typed))
		for _, item := range typed {
			if text, ok := item.(string); ok && strings.TrimSpace(text) != "" {
				parts = append(parts, strings.TrimSpace(text))
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, "; "), true
	case map[string]any:
		parts := make([]string, 0, len(typed))
		for key, item := range typed {
			if text, ok := item.(string); ok && strings.TrimSpace(text) != "" {
				parts = append(parts, key+": "+strings.TrimSpace(text))
			}
		}
		if len(parts) == 0 {
			return "", false
		}
		return strings.Join(parts, "; "), true
	default:
		return "", false
	}
}

func isDailyLimitMessage(message string) bool {
	value := strings.ToLower(message)
	for _, phrase := range dailyLimitPhrases {
		if strings.Contains(value, phrase) {
			return true
		}
	}
	return false
}

func isTransientMessage(message string) bool {
	value := strings.ToLower(message)
	for _, phrase := range transientBodyPhrases {
		if strings.Contains(value, phrase) {
			return true
		}
	}
	return false
}

func isRetryableStatus(status int) bool {
	if status >= 500 {
		return true
	}
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if value == "" || key == "" {
		return value
	}
	return strings.ReplaceAll(value, key, "REDACTED")
}

func abbreviateBody(raw []byte) string {
	body := strings.TrimSpace(string(raw))
	if len(body) > 256 {
		body = body[:256] + "..."
	}
	return body
}
