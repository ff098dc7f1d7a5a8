package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Orloaft/gridder-sub002/internal/constants"
	"github.com/Orloaft/gridder-sub002/internal/game"
	"github.com/Orloaft/gridder-sub002/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// baseEventDelay is the pause between streamed events at speed 1.0.
const baseEventDelay = 250 * time.Millisecond

type playbackFrame struct {
	Index int        `json:"index"`
	Total int        `json:"total"`
	Event game.Event `json:"event"`
}

// StreamBattle replays a stored battle log over a websocket, one event
// at a time. The optional `speed` query parameter (0.25 to 8) scales
// the pacing. Playback is a pure projection of the stored record.
func (h *BattleHandler) StreamBattle(c *gin.Context) {
	id := strings.TrimSpace(c.Param("battleID"))
	rec, err := h.repo.GetBattleByPublicID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	events, err := rec.DecodeEvents()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedDecodeLog})
		return
	}

	speed := 1.0
	if s := c.Query("speed"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v >= 0.25 && v <= 8 {
			speed = v
		}
	}
	delay := time.Duration(float64(baseEventDelay) / speed)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleID: id})
		return
	}
	defer conn.Close()

	// Drain reads so close frames from the client are noticed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(delay)
	defer ticker.Stop()
	for i, ev := range events {
		frame := playbackFrame{Index: i, Total: len(events), Event: ev}
		if err := conn.WriteJSON(frame); err != nil {
			return
		}
		if i == len(events)-1 {
			break
		}
		select {
		case <-ticker.C:
		case <-done:
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "playback complete"))
}
