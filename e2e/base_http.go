package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/gin-gonic/gin"
	"github.com/gookit/color"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"chat-exchange/domain"
	"chat-exchange/infrastructure/rest"
	"chat-exchange/moderation"
	"chat-exchange/observability"
	"chat-exchange/repositories"
	"chat-exchange/runtime/workers"
	"chat-exchange/search"
	"chat-exchange/services"
)

// StackOptions tunes the in-process stack. Zero durations disable the reaper
// so presence scenarios cannot interfere with messaging scenarios.
type StackOptions struct {
	LivenessTimeout time.Duration
	SweepInterval   time.Duration
}

type BaseHTTPSuite struct {
	suite.Suite
	Config  Config
	BaseURL string
	Options StackOptions

	client *http.Client
	stop   func()
}

// SetupSuite loads the environment configuration and, when no external
// exchange address is configured, boots the full stack in-process.
func (s *BaseHTTPSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)

	s.client = &http.Client{Timeout: 10 * time.Second}

	if s.Config.ExchangeAddr != "" {
		s.BaseURL = "http://" + s.Config.ExchangeAddr
		s.stop = func() {}
		return
	}
	s.BaseURL, s.stop = s.bootStack()
}

func (s *BaseHTTPSuite) TearDownSuite() {
	s.stop()
}

func (s *BaseHTTPSuite) bootStack() (string, func()) {
	logger := slog.Default()

	db, err := badger.Open(badger.DefaultOptions(s.T().TempDir()).
		WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)

	blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(s.T().TempDir()))
	s.Require().NoError(err)

	participantRepository := repositories.NewParticipantRepository(db, logger)
	messageRepository := repositories.NewMessageRepository(db, logger)
	messageIndex := search.NewMessageIndex(blugeWriter, logger)

	wordlist, err := moderation.LoadWordlists()
	s.Require().NoError(err)
	moderator, err := moderation.NewModerator(wordlist.Words, '*')
	s.Require().NoError(err)

	stats := observability.NewExchangeStats()
	clock := domain.SystemClock{}

	exchangeService := services.NewExchangeService(
		participantRepository, messageRepository,
		messageIndex, messageIndex, &moderator,
		clock, stats, logger,
	)

	stopReaper := func() {}
	if s.Options.SweepInterval > 0 {
		reaper := workers.NewPresenceReaper(
			participantRepository, messageRepository, messageIndex,
			clock, stats, logger,
			s.Options.LivenessTimeout, s.Options.SweepInterval,
		)
		supervisor := workers.NewSupervisor(logger, time.Second).Add(reaper)
		ctx, cancel := context.WithCancel(context.Background())
		go supervisor.Run(ctx)
		stopReaper = cancel
	}

	gin.SetMode(gin.TestMode)
	router := gin.New()
	rest.SetupRoutes(router, rest.NewExchangeHandler(exchangeService, lo.ToPtr(50), logger))
	server := httptest.NewServer(router)

	return server.URL, func() {
		server.Close()
		stopReaper()
		_ = blugeWriter.Close()
		_ = db.Close()
	}
}

// Do issues a request with the User header set, logging a colorized step
// banner and optionally the full bodies.
func (s *BaseHTTPSuite) Do(step, method, path, user string, body any) (*http.Response, []byte) {
	header := fmt.Sprintf("  ====== %s ======", step)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	var payload io.Reader
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		s.Require().NoError(err)
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.BaseURL+path, payload)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("User", user)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	answer, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	if s.Config.DebugJSON {
		s.T().Logf("HTTP %s %s [%d] in %v\nREQUEST:\n%s\nRESPONSE:\n%s",
			method, path, resp.StatusCode, time.Since(start), raw, answer)
	} else {
		s.T().Logf("HTTP %s %s [%d] in %v", method, path, resp.StatusCode, time.Since(start))
	}
	return resp, answer
}
