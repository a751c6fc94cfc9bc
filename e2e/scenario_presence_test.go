package e2e

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type testPresenceSuite struct {
	BaseHTTPSuite
}

func TestPresenceSuite(t *testing.T) {
	suite.Run(t, &testPresenceSuite{
		BaseHTTPSuite: BaseHTTPSuite{
			Options: StackOptions{
				LivenessTimeout: 300 * time.Millisecond,
				SweepInterval:   100 * time.Millisecond,
			},
		},
	})
}

func (s *testPresenceSuite) TestSilentParticipantIsEvicted() {
	resp, _ := s.Do("Register Dave", http.MethodPost, "/participants", "",
		map[string]string{"name": "Dave"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp, _ = s.Do("Register Witness", http.MethodPost, "/participants", "",
		map[string]string{"name": "Witness"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	// Dave goes silent; the witness keeps signalling presence.
	s.Eventually(func() bool {
		resp, _ := s.Do("Witness heartbeat", http.MethodPost, "/status", "Witness", nil)
		if resp.StatusCode != http.StatusOK {
			return false
		}

		_, body := s.Do("List participants", http.MethodGet, "/participants", "", nil)
		var present []participantDTO
		if err := json.Unmarshal(body, &present); err != nil {
			return false
		}
		_, daveStillHere := lo.Find(present, func(p participantDTO) bool { return p.Name == "Dave" })
		return !daveStillHere
	}, 10*time.Second, 100*time.Millisecond, "Dave was never evicted")

	// The departure is announced on the log.
	s.Eventually(func() bool {
		_, body := s.Do("Witness reads the log", http.MethodGet, "/messages", "Witness", nil)
		var messages []messageDTO
		if err := json.Unmarshal(body, &messages); err != nil {
			return false
		}
		_, announced := lo.Find(messages, func(m messageDTO) bool {
			return m.From == "Dave" && m.Kind == "status" && m.Text == "leaves the exchange"
		})
		return announced
	}, 10*time.Second, 100*time.Millisecond, "Departure notice never appeared")

	// Heartbeat after eviction reports an absent participant.
	resp, _ = s.Do("Dave heartbeat after eviction", http.MethodPost, "/status", "Dave", nil)
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)
}
