package config

import (
	"FaceVerify/database/postgres"
	faceHandler "FaceVerify/internal/api/face/handler"
	faceRepository "FaceVerify/internal/api/face/repository"
	faceService "FaceVerify/internal/api/face/service"
	"FaceVerify/internal/middleware"
	"FaceVerify/pkg/facematch"
	"FaceVerify/pkg/goface"
	"FaceVerify/pkg/mongo"
	"FaceVerify/pkg/redis"
	"FaceVerify/pkg/s3"
	"FaceVerify/pkg/utils"
	websocketPkg "FaceVerify/pkg/websocket"
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine     *fiber.App
	env        *Env
	log        *logrus.Logger
	middleware middleware.Middleware
	validator  *validator.Validate
	utils      utils.IUtils
	handlers   []handler
	faceRepo   faceRepository.Repository
	encoder    faceService.IFaceEncoder
	comparator facematch.IComparator
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.env == nil {
		return nil, fmt.Errorf("env is required")
	}
	if server.faceRepo == nil {
		return nil, fmt.Errorf("face store is required")
	}
	if server.encoder == nil {
		return nil, fmt.Errorf("face encoder is required")
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log, middleware.Options{})
	}
	if server.comparator == nil {
		server.comparator = facematch.New(server.env.FaceMatchTolerance)
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithEnv(env *Env) ServerOption {
	return func(s *Server) error {
		s.env = env
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		if s.env == nil {
			return fmt.Errorf("env must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log, middleware.Options{
			Rate:  s.env.RateLimit,
			Burst: s.env.RateBurst,
		})
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithComparator() ServerOption {
	return func(s *Server) error {
		if s.env == nil {
			return fmt.Errorf("env must be initialized before comparator")
		}
		s.comparator = facematch.New(s.env.FaceMatchTolerance)
		if s.log != nil {
			s.log.WithField("tolerance", s.comparator.Tolerance()).Info("Face comparator ready")
		}
		return nil
	}
}

// WithFaceStore opens the encoding store backend selected by
// FACE_STORE_DRIVER.
func WithFaceStore(ctx context.Context) ServerOption {
	return func(s *Server) error {
		if s.log == nil || s.env == nil {
			return fmt.Errorf("logger and env must be initialized before face store")
		}

		repo, err := faceRepository.New(ctx, faceRepository.Options{
			Driver:  s.env.FaceStoreDriver,
			DataDir: s.env.FaceDataDir,
			Postgres: postgres.Options{
				DSN:             s.env.DatabaseURL,
				MaxOpenConns:    s.env.DBMaxOpenConns,
				MaxIdleConns:    s.env.DBMaxIdleConns,
				ConnMaxLifetime: s.env.DBConnMaxLifetime,
			},
			Redis: redis.Options{
				Address:  s.env.RedisAddress,
				Password: s.env.RedisPassword,
				DB:       s.env.RedisDB,
			},
			RedisKey: s.env.RedisFaceKey,
			Mongo: mongo.Options{
				URI:        s.env.MongoURI,
				Database:   s.env.MongoDatabase,
				Collection: s.env.MongoCollection,
			},
			S3: s3.Options{
				Region:          s.env.AWSRegion,
				AccessKeyID:     s.env.AWSAccessKeyID,
				SecretAccessKey: s.env.AWSSecretAccessKey,
				Endpoint:        s.env.AWSEndpoint,
				Bucket:          s.env.AWSBucketName,
			},
			S3Prefix: s.env.FaceS3Prefix,
		}, s.log)
		if err != nil {
			s.log.Errorf("Failed to open face store: %v", err)
			return fmt.Errorf("failed to open face store: %w", err)
		}
		s.faceRepo = repo
		return nil
	}
}

func WithFaceRepository(repo faceRepository.Repository) ServerOption {
	return func(s *Server) error {
		s.faceRepo = repo
		return nil
	}
}

// WithFaceEncoder builds the encoder selected by FACE_ENCODER.
func WithFaceEncoder() ServerOption {
	return func(s *Server) error {
		if s.log == nil || s.env == nil {
			return fmt.Errorf("logger and env must be initialized before face encoder")
		}

		switch s.env.FaceEncoder {
		case EncoderWebsocket, "":
			s.encoder = websocketPkg.NewAIWebSocketClient(websocketPkg.Options{
				URL:        s.env.FaceEncoderURL,
				RetryStale: s.env.FaceEncoderRetry,
			}, s.log)
		case EncoderDlib:
			if s.utils == nil {
				s.utils = utils.New()
			}
			enc, err := goface.New(goface.Options{ModelsDir: s.env.FaceModelsDir}, s.utils, s.log)
			if err != nil {
				return fmt.Errorf("failed to create dlib face encoder: %w", err)
			}
			s.encoder = enc
		default:
			return fmt.Errorf("unknown face encoder %q", s.env.FaceEncoder)
		}
		return nil
	}
}

func WithEncoder(encoder faceService.IFaceEncoder) ServerOption {
	return func(s *Server) error {
		s.encoder = encoder
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	// Face Domain
	faceServices := faceService.NewFaceService(s.log, s.faceRepo, s.encoder, s.comparator, s.utils)
	faceHandlers := faceHandler.New(s.log, s.validator, s.middleware, faceServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, faceHandlers)

	for _, h := range s.handlers {
		h.Start(s.engine)
	}
}

func (s *Server) Engine() *fiber.App {
	return s.engine
}

func (s *Server) Run() error {
	addr := net.JoinHostPort("0.0.0.0", s.env.Port)
	s.log.WithField("addr", addr).Info("Listening")

	return s.engine.Listen(addr)
}

// Shutdown stops accepting requests, then releases the encoder and the
// store. It returns every error it met.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.engine.ShutdownWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
	}

	s.encoder.Close()

	if err := s.faceRepo.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("face store close: %w", err))
	}

	return errors.Join(errs...)
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
