package e2e

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type messageDTO struct {
	ID   string    `json:"id"`
	From string    `json:"from"`
	To   string    `json:"to"`
	Text string    `json:"text"`
	Kind string    `json:"kind"`
	At   time.Time `json:"at"`
}

type participantDTO struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"last_seen"`
}

type testExchangeSuite struct {
	BaseHTTPSuite
}

func TestExchangeSuite(t *testing.T) {
	suite.Run(t, &testExchangeSuite{})
}

func (s *testExchangeSuite) TestFullMessagingFlow() {
	// --- STEP 1: JOIN ---
	s.Run("Step 1: Alice and Bob join the exchange", func() {
		resp, _ := s.Do("Register Alice", http.MethodPost, "/participants", "",
			map[string]string{"name": "Alice"})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)

		resp, _ = s.Do("Register Bob", http.MethodPost, "/participants", "",
			map[string]string{"name": "Bob"})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)

		resp, _ = s.Do("List participants", http.MethodGet, "/participants", "", nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
	})

	// --- STEP 2: NAME CONFLICT ---
	s.Run("Step 2: A taken name is refused", func() {
		resp, _ := s.Do("Register Alice again", http.MethodPost, "/participants", "",
			map[string]string{"name": "Alice"})
		s.Require().Equal(http.StatusConflict, resp.StatusCode)
	})

	// --- STEP 3: MESSAGING ---
	s.Run("Step 3: Broadcast and private messages", func() {
		resp, _ := s.Do("Alice broadcasts", http.MethodPost, "/messages", "Alice",
			map[string]string{"to": "all", "text": "good morning", "kind": "broadcast"})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)

		resp, body := s.Do("Bob whispers to Alice", http.MethodPost, "/messages", "Bob",
			map[string]string{"to": "Alice", "text": "the plan is secret", "kind": "private"})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)

		var posted messageDTO
		s.Require().NoError(json.Unmarshal(body, &posted))
		s.Require().Equal("private", posted.Kind)
		s.Require().NotEmpty(posted.ID)
	})

	// --- STEP 4: SENDER MUST BE PRESENT ---
	s.Run("Step 4: An unregistered sender is refused", func() {
		resp, _ := s.Do("Ghost tries to post", http.MethodPost, "/messages", "Ghost",
			map[string]string{"to": "all", "text": "boo", "kind": "broadcast"})
		s.Require().Equal(http.StatusUnprocessableEntity, resp.StatusCode)
	})

	// --- STEP 5: VISIBILITY ---
	s.Run("Step 5: Private messages never leak to outsiders", func() {
		resp, _ := s.Do("Register Carol", http.MethodPost, "/participants", "",
			map[string]string{"name": "Carol"})
		s.Require().Equal(http.StatusCreated, resp.StatusCode)

		_, body := s.Do("Carol reads the log", http.MethodGet, "/messages", "Carol", nil)
		var carolView []messageDTO
		s.Require().NoError(json.Unmarshal(body, &carolView))
		s.Require().NotEmpty(carolView)
		for _, m := range carolView {
			s.Require().NotEqual("private", m.Kind)
			s.Require().NotContains(m.Text, "secret")
		}

		_, body = s.Do("Alice reads the log", http.MethodGet, "/messages", "Alice", nil)
		var aliceView []messageDTO
		s.Require().NoError(json.Unmarshal(body, &aliceView))
		private, found := lo.Find(aliceView, func(m messageDTO) bool { return m.Kind == "private" })
		s.Require().True(found, "Alice must see the private message addressed to her")
		s.Require().Equal("the plan is secret", private.Text)

		// Alice sees everything Carol sees plus the private one.
		s.Require().Equal(len(carolView), len(aliceView)-1)
	})

	// --- STEP 6: LIMIT ---
	s.Run("Step 6: Limit returns the most recent entries", func() {
		_, body := s.Do("Alice reads with limit", http.MethodGet, "/messages?limit=2", "Alice", nil)
		var limited []messageDTO
		s.Require().NoError(json.Unmarshal(body, &limited))
		s.Require().Len(limited, 2)

		_, body = s.Do("Alice reads everything", http.MethodGet, "/messages", "Alice", nil)
		var full []messageDTO
		s.Require().NoError(json.Unmarshal(body, &full))
		s.Require().Equal(full[len(full)-2:], limited)
	})

	// --- STEP 7: HEARTBEAT ---
	s.Run("Step 7: Heartbeat taxonomy", func() {
		resp, _ := s.Do("Bob signals presence", http.MethodPost, "/status", "Bob", nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)

		resp, _ = s.Do("Ghost signals presence", http.MethodPost, "/status", "Ghost", nil)
		s.Require().Equal(http.StatusNotFound, resp.StatusCode)
	})

	// --- STEP 8: SEARCH ---
	s.Run("Step 8: Search respects visibility", func() {
		resp, body := s.Do("Carol searches for the secret", http.MethodGet,
			"/messages/search?q=secret", "Carol", nil)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		var carolHits []messageDTO
		s.Require().NoError(json.Unmarshal(body, &carolHits))
		s.Require().Empty(carolHits)

		_, body = s.Do("Alice searches for the secret", http.MethodGet,
			"/messages/search?q=secret", "Alice", nil)
		var aliceHits []messageDTO
		s.Require().NoError(json.Unmarshal(body, &aliceHits))
		s.Require().Len(aliceHits, 1)
		s.Require().Equal("Bob", aliceHits[0].From)
	})
}
