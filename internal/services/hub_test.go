package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"seatwell/monitoring"
	"seatwell/utils"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, server *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) MarketEvent {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event MarketEvent
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestHub_DeliversByChannel(t *testing.T) {
	hub := NewHub(nil, nil)
	server := httptest.NewServer(hub)
	defer server.Close()

	anonymous := dialHub(t, server, "")
	seller := dialHub(t, server, "?userId=2")

	require.Eventually(t, func() bool { return hub.clientCount() == 2 }, time.Second, 10*time.Millisecond)

	ctx := context.Background()
	sold := NewMarketEvent(EventTicketSold, nil)
	sold.TicketID = 1
	require.NoError(t, hub.Publish(ctx, UserChannel(2), sold))

	listed := NewMarketEvent(EventTicketListed, nil)
	require.NoError(t, hub.Publish(ctx, MarketChannel, listed))

	got := readEvent(t, seller)
	assert.Equal(t, sold.ID, got.ID)
	assert.Equal(t, 1, got.TicketID)
	assert.Equal(t, listed.ID, readEvent(t, seller).ID)

	// the private event never reaches the anonymous client
	assert.Equal(t, listed.ID, readEvent(t, anonymous).ID)
}

func TestHub_RemovesClosedClients(t *testing.T) {
	hub := NewHub(monitoring.NewMonitor(nil, time.Minute, nil), nil)
	server := httptest.NewServer(hub)
	defer server.Close()

	conn := dialHub(t, server, "")
	require.Eventually(t, func() bool { return hub.clientCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	assert.Eventually(t, func() bool { return hub.clientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_RejectsInvalidUserID(t *testing.T) {
	hub := NewHub(nil, nil)
	server := httptest.NewServer(hub)
	defer server.Close()

	resp, err := http.Get(server.URL + "/?userId=abc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, hub.clientCount())
}

func TestPubNubPublisher_BreakerOpensAfterFailures(t *testing.T) {
	calls := 0
	p := &PubNubPublisher{
		breaker: utils.NewCircuitBreaker("pubnub-test", pubnubBreakerSettings()),
		send: func(channel string, message any) error {
			calls++
			return errors.New("pubnub unreachable")
		},
	}
	ctx := context.Background()
	event := NewMarketEvent(EventTicketSold, nil)

	for i := 0; i < 10; i++ {
		assert.Error(t, p.Publish(ctx, MarketChannel, event))
	}

	err := p.Publish(ctx, MarketChannel, event)
	assert.ErrorIs(t, err, utils.ErrOpenState)
	assert.Equal(t, 10, calls)
}

func TestPubNubPublisher_SendsEvent(t *testing.T) {
	var gotChannel string
	var gotMessage any
	p := &PubNubPublisher{
		breaker: utils.NewCircuitBreaker("pubnub-test", pubnubBreakerSettings()),
		send: func(channel string, message any) error {
			gotChannel, gotMessage = channel, message
			return nil
		},
	}
	event := NewMarketEvent(EventTicketListed, nil)

	require.NoError(t, p.Publish(context.Background(), UserChannel(5), event))

	assert.Equal(t, "user-5", gotChannel)
	assert.Equal(t, event, gotMessage)
}
