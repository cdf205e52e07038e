package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matchdayhq/matchday-api/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int
	BetterStackEnabled         bool
	BetterStackEndpoint        string
	BetterStackToken           string
	BetterStackTimeout         time.Duration
	BetterStackMinLevel        logging.Level
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	InternalJobToken           string
	FixtureDoubleRoundRobin    bool
	ResyncWorkerCount          int
	StatsAggEnabled            bool
	StatsAggBaseURL            string
	StatsAggToken              string
	StatsAggTimeout            time.Duration
	StatsAggMaxRetries         int
	StatsAggCircuitEnabled     bool
	StatsAggCircuitFailures    int
	StatsAggCircuitOpenFor     time.Duration
	StatsAggCircuitHalfOpenReq int
	StatsAggRedeliverAttempts  int
	StatsAggRedeliverDelay     time.Duration
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	uptraceCaptureRequestBody, err := strconv.ParseBool(getEnv("UPTRACE_CAPTURE_REQUEST_BODY", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_CAPTURE_REQUEST_BODY: %w", err)
	}
	uptraceRequestBodyMaxBytes, err := getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if uptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackMinLevel := parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error"))

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	fixtureDoubleRoundRobin, err := strconv.ParseBool(getEnv("FIXTURE_DOUBLE_ROUND_ROBIN", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse FIXTURE_DOUBLE_ROUND_ROBIN: %w", err)
	}

	resyncWorkerCount, err := getEnvAsInt("RESYNC_WORKER_COUNT", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse RESYNC_WORKER_COUNT: %w", err)
	}
	if resyncWorkerCount < 1 {
		return Config{}, fmt.Errorf("RESYNC_WORKER_COUNT must be >= 1")
	}

	statsAggEnabled, err := strconv.ParseBool(getEnv("STATS_AGG_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_ENABLED: %w", err)
	}
	statsAggTimeout, err := time.ParseDuration(getEnv("STATS_AGG_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_TIMEOUT: %w", err)
	}
	if statsAggTimeout <= 0 {
		return Config{}, fmt.Errorf("STATS_AGG_TIMEOUT must be > 0")
	}
	statsAggMaxRetries, err := getEnvAsInt("STATS_AGG_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_MAX_RETRIES: %w", err)
	}
	if statsAggMaxRetries < 0 {
		return Config{}, fmt.Errorf("STATS_AGG_MAX_RETRIES must be >= 0")
	}
	statsAggCircuitEnabled, err := strconv.ParseBool(getEnv("STATS_AGG_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_CIRCUIT_ENABLED: %w", err)
	}
	statsAggCircuitFailures, err := getEnvAsInt("STATS_AGG_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if statsAggCircuitFailures < 1 {
		return Config{}, fmt.Errorf("STATS_AGG_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	statsAggCircuitOpenFor, err := time.ParseDuration(getEnv("STATS_AGG_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if statsAggCircuitOpenFor <= 0 {
		return Config{}, fmt.Errorf("STATS_AGG_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	statsAggCircuitHalfOpenReq, err := getEnvAsInt("STATS_AGG_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if statsAggCircuitHalfOpenReq < 1 {
		return Config{}, fmt.Errorf("STATS_AGG_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	statsAggRedeliverAttempts, err := getEnvAsInt("STATS_AGG_REDELIVER_ATTEMPTS", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_REDELIVER_ATTEMPTS: %w", err)
	}
	if statsAggRedeliverAttempts < 0 {
		return Config{}, fmt.Errorf("STATS_AGG_REDELIVER_ATTEMPTS must be >= 0")
	}
	statsAggRedeliverDelay, err := time.ParseDuration(getEnv("STATS_AGG_REDELIVER_DELAY", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse STATS_AGG_REDELIVER_DELAY: %w", err)
	}
	if statsAggRedeliverDelay <= 0 {
		return Config{}, fmt.Errorf("STATS_AGG_REDELIVER_DELAY must be > 0")
	}
	statsAggBaseURL := strings.TrimSpace(getEnv("STATS_AGG_BASE_URL", ""))
	statsAggToken := strings.TrimSpace(getEnv("STATS_AGG_TOKEN", ""))
	if statsAggEnabled {
		if statsAggBaseURL == "" {
			return Config{}, fmt.Errorf("STATS_AGG_BASE_URL is required when STATS_AGG_ENABLED=true")
		}
		if statsAggToken == "" {
			return Config{}, fmt.Errorf("STATS_AGG_TOKEN is required when STATS_AGG_ENABLED=true")
		}
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "matchday-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      getEnv("DB_URL", ""),
		DBDisablePreparedBinary:    true,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		UptraceCaptureRequestBody:  uptraceCaptureRequestBody,
		UptraceRequestBodyMaxBytes: uptraceRequestBodyMaxBytes,
		BetterStackEnabled:         betterStackEnabled,
		BetterStackEndpoint:        betterStackEndpoint,
		BetterStackToken:           strings.TrimSpace(getEnv("BETTERSTACK_TOKEN", "")),
		BetterStackTimeout:         betterStackTimeout,
		BetterStackMinLevel:        betterStackMinLevel,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
		InternalJobToken:           strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		FixtureDoubleRoundRobin:    fixtureDoubleRoundRobin,
		ResyncWorkerCount:          resyncWorkerCount,
		StatsAggEnabled:            statsAggEnabled,
		StatsAggBaseURL:            statsAggBaseURL,
		StatsAggToken:              statsAggToken,
		StatsAggTimeout:            statsAggTimeout,
		StatsAggMaxRetries:         statsAggMaxRetries,
		StatsAggCircuitEnabled:     statsAggCircuitEnabled,
		StatsAggCircuitFailures:    statsAggCircuitFailures,
		StatsAggCircuitOpenFor:     statsAggCircuitOpenFor,
		StatsAggCircuitHalfOpenReq: statsAggCircuitHalfOpenReq,
		StatsAggRedeliverAttempts:  statsAggRedeliverAttempts,
		StatsAggRedeliverDelay:     statsAggRedeliverDelay,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	logLevel := parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = logLevel

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
