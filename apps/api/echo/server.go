package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/eduforum/core"
	"github.com/trezcool/eduforum/core/chat"
)

type Server struct {
	conf       *core.Config
	app        *echo.Echo
	logger     core.Logger
	translator ut.Translator
	jwt        middleware.JWTConfig
	errors     chan error
	shutdown   chan os.Signal
}

func NewServer(
	conf *core.Config,
	logger core.Logger,
	chatSvc chat.ServiceInterface,
	translator ut.Translator,
) *Server {
	s := &Server{
		conf:       conf,
		app:        echo.New(),
		logger:     logger,
		translator: translator,
		jwt:        newJWTConfig(conf.SecretKey),
		errors:     make(chan error, 1),
		shutdown:   make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup(chatSvc)
	return s
}

func (s *Server) setup(chatSvc chat.ServiceInterface) {
	s.app.HideBanner = true
	s.app.Debug = s.conf.Debug
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.logger, s.translator, s.signalShutdown)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(s.conf.Debug || s.conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	if s.conf.Server.BodyLimit != "" {
		s.app.Use(middleware.BodyLimit(s.conf.Server.BodyLimit))
	}

	s.app.GET("/", home)

	api := s.app.Group("/api")
	registerChatAPI(api, s.jwt, chatSvc)
}

func (s *Server) Start() {
	if err := s.app.Start(s.conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

// Errors reports the errors that stopped the server.
func (s *Server) Errors() <-chan error {
	return s.errors
}

// ShutdownSignal is notified on SIGINT, SIGTERM and on shutdown errors raised by handlers.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already shutting down
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	signal.Stop(s.shutdown)
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to EduForum API!")
}
