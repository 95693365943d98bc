package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/vzo-kneginec/fire-brigade-api/api"
	"github.com/vzo-kneginec/fire-brigade-api/api/handlers"
	"github.com/vzo-kneginec/fire-brigade-api/api/presence"
)

// Connecting while broadcasts are in flight must not interleave writes on the
// same connection; run with -race to verify the snapshot write is serialized.
func TestLocationHub_SnapshotDuringBroadcastStorm(t *testing.T) {
	tracker := presence.NewTracker()
	tracker.Update("http:u1", "u1", "ihorvat", "Ivan Horvat", presence.BaseLatitude, presence.BaseLongitude)
	hub := handlers.NewLocationHub(tracker)

	member := plainMember("DVD_Kneginec_Gornji")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r.WithContext(api.WithUser(r.Context(), member)))
	}))
	defer srv.Close()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				hub.BroadcastLocations()
			}
		}
	}()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	for i := 0; i < 25; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		if err != nil {
			t.Fatal(err)
		}

		var frame struct {
			Event string `json:"event"`
		}
		assert.NoError(t, conn.ReadJSON(&frame))
		assert.Equal(t, "user_locations", frame.Event)
		conn.Close()
	}

	close(stop)
	wg.Wait()
}
