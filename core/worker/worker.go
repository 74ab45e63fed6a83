package worker

import (
	"fmt"

	"github.com/hibiken/asynq"

	"dingdong-api/core/config"
	"dingdong-api/core/logger"
)

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
}

type ClientInterface interface {
	EnqueueVerificationEmail(email string, code string) error
	Close() error
}

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *Client {
	return &Client{client: asynq.NewClient(redisOpt(cfg))}
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Server runs the background task handlers in-process alongside the API.
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewServer(cfg *config.Config) *Server {
	server := asynq.NewServer(redisOpt(cfg.Redis), asynq.Config{
		Concurrency: 4,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeVerificationEmail, NewEmailHandler(cfg.Mail).HandleVerificationEmail)

	return &Server{server: server, mux: mux}
}

// Start runs the worker loop in a goroutine.
func (s *Server) Start() {
	go func() {
		if err := s.server.Run(s.mux); err != nil {
			logger.Error("Worker:Start", err)
		}
	}()
}

func (s *Server) Shutdown() {
	s.server.Shutdown()
}
