package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mcuadros/go-defaults"
)

// Env is the process configuration. Fields take their `default` tag first
// and are then overridden by the variable named in their `env` tag.
type Env struct {
	AppEnv          string        `env:"APP_ENV" default:"development"`
	Port            string        `env:"PORT" default:"5000"`
	LogLevel        string        `env:"LOG_LEVEL" default:"info"`
	LogDir          string        `env:"LOG_DIR" default:"logs"`
	BodyLimitMB     int           `env:"BODY_LIMIT_MB" default:"10"`
	RateLimit       float64       `env:"RATE_LIMIT" default:"50"`
	RateBurst       int           `env:"RATE_BURST" default:"100"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`

	FaceStoreDriver    string  `env:"FACE_STORE_DRIVER" default:"file"`
	FaceDataDir        string  `env:"FACE_DATA_DIR" default:"face_data"`
	FaceMatchTolerance float64 `env:"FACE_MATCH_TOLERANCE" default:"0.6"`
	FaceEncoder        string  `env:"FACE_ENCODER" default:"websocket"`
	FaceEncoderURL     string  `env:"AI_FACE_ENCODER_URL" default:"ws://localhost:8000/api/v1/face/encode"`
	FaceEncoderRetry   bool    `env:"FACE_ENCODER_RETRY" default:"false"`
	FaceModelsDir      string  `env:"FACE_MODELS_DIR" default:"models"`

	DatabaseURL       string        `env:"DATABASE_URL"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" default:"10"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" default:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" default:"30m"`

	RedisAddress  string `env:"REDIS_ADDRESS" default:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" default:"0"`
	RedisFaceKey  string `env:"REDIS_FACE_KEY" default:"face:encodings"`

	MongoURI        string `env:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase   string `env:"MONGO_DATABASE" default:"face_verify"`
	MongoCollection string `env:"MONGO_COLLECTION" default:"face_encodings"`

	AWSRegion          string `env:"AWS_REGION" default:"us-east-1"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSEndpoint        string `env:"AWS_ENDPOINT"`
	AWSBucketName      string `env:"AWS_BUCKET_NAME"`
	FaceS3Prefix       string `env:"FACE_S3_PREFIX" default:"face_encodings/"`
}

const (
	EncoderWebsocket = "websocket"
	EncoderDlib      = "dlib"
)

// LoadDotEnv loads files into the process environment without overriding
// variables that are already set. A missing file is reported, not fatal.
func LoadDotEnv(filenames ...string) error {
	return godotenv.Load(filenames...)
}

func LoadEnv() (*Env, error) {
	cfg := &Env{}
	defaults.SetDefaults(cfg)

	// variables that are unset or empty keep their default
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
