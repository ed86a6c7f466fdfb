package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Application
	Version     string
	Environment string
	MonitorID   string
	Port        int
	LogLevel    string

	// Logdy (lightweight web log viewer)
	LogdyEnabled bool
	LogdyHost    string
	LogdyPort    int

	// NATS (inference transport and immediate-alert notifications)
	NatsURL            string
	NatsConnectTimeout time.Duration
	NatsReconnectWait  time.Duration
	NatsMaxReconnects  int

	// Inference over NATS request/reply
	InferenceSubject string
	InferenceTimeout time.Duration

	// Alert routing
	AlertThreshold float64
	AlertsSubject  string
	AlertsDir      string
	AlertQueueSize int

	// Per-camera pipeline
	FrameBufferSize   int           // raw frames between capture and detection
	ResultBufferSize  int           // (frame, result) pairs for live streaming
	HistorySize       int           // bounded detection history per camera
	DetectionInterval time.Duration // minimum wall-clock gap between inferences
	IdlePollInterval  time.Duration // detection loop sleep when the buffer is empty
	StopTimeout       time.Duration // bounded wait for pipeline loops on stop

	// Stream output
	OutputWidth  int
	OutputHeight int
	JPEGQuality  int

	// Graceful shutdown
	ShutdownTimeout time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file found, using environment variables and defaults")
	} else {
		log.Info().Msg("Loaded configuration from .env file")
	}

	return &Config{
		// Application
		Version:     getEnv("VERSION", "1.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),
		MonitorID:   getEnv("MONITOR_ID", "monitor-1"),
		Port:        getEnvInt("PORT", 8000),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Logdy
		LogdyEnabled: getEnvBool("LOGDY_ENABLED", false),
		LogdyHost:    getEnv("LOGDY_HOST", "localhost"),
		LogdyPort:    getEnvInt("LOGDY_PORT", 8080),

		// NATS
		NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
		NatsConnectTimeout: getEnvDuration("NATS_CONNECT_TIMEOUT", 10*time.Second),
		NatsReconnectWait:  getEnvDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		NatsMaxReconnects:  getEnvInt("NATS_MAX_RECONNECTS", -1), // -1 = unlimited

		// Inference
		InferenceSubject: getEnv("INFERENCE_SUBJECT", "inference.anomaly"),
		InferenceTimeout: getEnvDuration("INFERENCE_TIMEOUT", 5*time.Second),

		// Alert routing
		AlertThreshold: getEnvFloat("ALERT_THRESHOLD", 0.8),
		AlertsSubject:  getEnv("ALERTS_SUBJECT", "alerts.hazard"),
		AlertsDir:      getEnv("ALERTS_DIR", "./data/alerts"),
		AlertQueueSize: getEnvInt("ALERT_QUEUE_SIZE", 1000),

		// Per-camera pipeline
		FrameBufferSize:   getEnvInt("FRAME_BUFFER_SIZE", 30),
		ResultBufferSize:  getEnvInt("RESULT_BUFFER_SIZE", 30),
		HistorySize:       getEnvInt("HISTORY_SIZE", 1000),
		DetectionInterval: getEnvDuration("DETECTION_INTERVAL", 500*time.Millisecond),
		IdlePollInterval:  getEnvDuration("IDLE_POLL_INTERVAL", 10*time.Millisecond),
		StopTimeout:       getEnvDuration("STOP_TIMEOUT", 5*time.Second),

		// Stream output
		OutputWidth:  getEnvInt("OUTPUT_WIDTH", 1280),
		OutputHeight: getEnvInt("OUTPUT_HEIGHT", 720),
		JPEGQuality:  getEnvInt("JPEG_QUALITY", 80),

		// Graceful shutdown
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
