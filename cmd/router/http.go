package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/islanddefense/w3g-platform/internal/projection"
	"github.com/islanddefense/w3g-platform/pkg/model"
)

// serveHTTP runs the two read-only endpoints from spec.md §6 until ctx
// is done. Handlers only ever block acquiring the triple buffer's
// mutex; a stale (not-yet-refreshed) snapshot is served rather than
// making the caller wait.
func serveHTTP(ctx context.Context, addr string, leaderboardBuf *projection.TripleBuffer[model.Leaderboard], lobbyBuf *projection.TripleBuffer[model.Lobby]) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/v1/lobby/island-defense", func(c *gin.Context) {
		lobby, ready := lobbyBuf.Load()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "lobby projection not ready"})
			return
		}
		c.JSON(http.StatusOK, lobby)
	})

	router.GET("/v1/leaderBoard/island-defense", func(c *gin.Context) {
		lb, ready := leaderboardBuf.Load()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "leaderboard not ready"})
			return
		}
		c.JSON(http.StatusOK, lb)
	})

	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	_ = srv.ListenAndServe()
}
