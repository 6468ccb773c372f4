package rest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rocketscienceinc/gridroom-backend/internal/apperror"
	"github.com/rocketscienceinc/gridroom-backend/internal/entity"
	"github.com/rocketscienceinc/gridroom-backend/internal/room"
)

type roomCreator interface {
	CreateRoom(size int, mode string) (*room.Room, error)
}

type sessionGateway interface {
	Handle(w http.ResponseWriter, r *http.Request, roomID, identity, role, preferred string)
}

type createRoomRequest struct {
	Size int    `json:"size"`
	Mode string `json:"mode"`
}

type createRoomResponse struct {
	RoomID string `json:"room_id"`
}

// NewRouter - wires the HTTP surface: the one-shot room creation endpoint,
// the websocket session route, liveness and metrics.
func NewRouter(logger *slog.Logger, registry roomCreator, gateway sessionGateway) *gin.Engine {
	log := logger.With("component", "rest")

	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/create-room", func(c *gin.Context) {
		// An empty body falls back to the defaults, matching the shareable
		// room links the clients build.
		req := createRoomRequest{Size: entity.MinBoardSize, Mode: entity.ModePVP}
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
			return
		}

		newRoom, err := registry.CreateRoom(req.Size, req.Mode)
		if err != nil {
			if errors.Is(err, apperror.ErrInvalidConfig) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			log.Error("failed to create room", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create room"})
			return
		}

		c.JSON(http.StatusOK, createRoomResponse{RoomID: newRoom.ID()})
	})

	router.GET("/ws/:roomID/:playerID", func(c *gin.Context) {
		gateway.Handle(
			c.Writer,
			c.Request,
			c.Param("roomID"),
			c.Param("playerID"),
			c.DefaultQuery("role", room.RolePlayer),
			c.Query("prefer"),
		)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
