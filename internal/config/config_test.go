package config

import (
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("FOOTBALL_API_KEY", "test-key")
	t.Setenv("POPULATION_LEAGUE_IDS", "39,140")
	t.Setenv("INTERNAL_JOB_TOKEN", "internal-job-token")
}

func TestLoad_AppEnvValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RequiredEnv(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("FOOTBALL_API_KEY", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without FOOTBALL_API_KEY")
		}
	})

	t.Run("missing league ids", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("POPULATION_LEAGUE_IDS", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without POPULATION_LEAGUE_IDS")
		}
	})

	t.Run("missing internal job token", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("INTERNAL_JOB_TOKEN", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error without INTERNAL_JOB_TOKEN")
		}
	})
}

func TestLoad_FootballAPIDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.FootballAPIBaseURL != "https://v3.football.api-sports.io" {
		t.Fatalf("unexpected base url: %q", cfg.FootballAPIBaseURL)
	}
	if cfg.FootballAPIMaxAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", cfg.FootballAPIMaxAttempts)
	}
	if cfg.FootballAPIMinInterval != 150*time.Millisecond {
		t.Fatalf("unexpected min interval: %s", cfg.FootballAPIMinInterval)
	}
	if cfg.FootballAPIRetryBaseDelay != time.Second {
		t.Fatalf("unexpected retry base delay: %s", cfg.FootballAPIRetryBaseDelay)
	}
}

func TestLoad_PopulationConfigParsing(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POPULATION_LEAGUE_IDS", " 39, 140 ,39 ")
	t.Setenv("POPULATION_SEASON", "2024")
	t.Setenv("POPULATION_DAILY_CALL_CAP", "100")
	t.Setenv("POPULATION_RUN_AT", "04:30")
	t.Setenv("POPULATION_PAGE_DELAY", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.PopulationLeagueIDs) != 2 || cfg.PopulationLeagueIDs[0] != 39 || cfg.PopulationLeagueIDs[1] != 140 {
		t.Fatalf("unexpected league ids: %+v", cfg.PopulationLeagueIDs)
	}
	if cfg.PopulationSeason != 2024 {
		t.Fatalf("unexpected season: %d", cfg.PopulationSeason)
	}
	if cfg.PopulationDailyCallCap != 100 {
		t.Fatalf("unexpected daily call cap: %d", cfg.PopulationDailyCallCap)
	}
	if cfg.PopulationRunAt != "04:30" {
		t.Fatalf("unexpected run at: %q", cfg.PopulationRunAt)
	}
	if cfg.PopulationPageDelay != 250*time.Millisecond {
		t.Fatalf("unexpected page delay: %s", cfg.PopulationPageDelay)
	}
}

func TestLoad_PopulationLeagueIDValidation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POPULATION_LEAGUE_IDS", "39,-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive league id")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	setRequiredEnv(t)

	t.Run("default postgres", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StoragePostgres {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("memory accepted", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageMemory {
			t.Fatalf("unexpected storage driver: %q", cfg.StorageDriver)
		}
	})

	t.Run("invalid rejected", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "redis")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid STORAGE_DRIVER")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_SERVICE_NAME", "talent-tracker-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "talent-tracker-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	setRequiredEnv(t)

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}
