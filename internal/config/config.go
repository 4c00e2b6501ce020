package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// Weather sources.
	WeatherAPIKey      string
	OpenDataBaseURL    string
	OpenDataServiceKey string
	OpenDataStationID  string
	ForecastDays       int

	// Location of the home beach: either fixed coordinates or an address
	// resolved through the geocoder.
	BeachLat       *float64
	BeachLon       *float64
	BeachAddress   string
	GeocoderAPIKey string

	// HTTPTimeout applies to outbound source calls.
	HTTPTimeout time.Duration

	// RefreshInterval controls the background snapshot refresh.
	RefreshInterval time.Duration

	// CachePath is the SQLite cache file; empty means in-memory only.
	CachePath string

	// HeatThresholdC is the cutoff for the heat recommendation.
	HeatThresholdC float64

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.OpenDataBaseURL = os.Getenv("OPENDATA_BASE_URL")
	cfg.OpenDataServiceKey = os.Getenv("OPENDATA_SERVICE_KEY")
	cfg.OpenDataStationID = os.Getenv("OPENDATA_STATION_ID")
	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 5)

	cfg.BeachAddress = os.Getenv("BEACH_ADDRESS")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	lat, latErr := getenvFloat("BEACH_LAT")
	lon, lonErr := getenvFloat("BEACH_LON")
	if latErr != nil || lonErr != nil {
		return nil, fmt.Errorf("invalid BEACH_LAT/BEACH_LON")
	}
	if lat != nil && lon == nil || lat == nil && lon != nil {
		return nil, fmt.Errorf("BEACH_LAT and BEACH_LON must be set together")
	}
	cfg.BeachLat = lat
	cfg.BeachLon = lon

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := getenvDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.CachePath = os.Getenv("CACHE_PATH")

	heat, err := getenvFloat("HEAT_THRESHOLD_C")
	if err != nil {
		return nil, fmt.Errorf("invalid HEAT_THRESHOLD_C: %w", err)
	}
	if heat != nil {
		cfg.HeatThresholdC = *heat
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	return time.ParseDuration(getenvDefault(key, def))
}
