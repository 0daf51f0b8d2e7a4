// Package main is the entry point for the dirscope server.
package main

import (
	"fmt"
	"net/http"
	"os/exec"
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/dirscope/dirscope/internal/config"
	"github.com/dirscope/dirscope/internal/fs"
	"github.com/dirscope/dirscope/internal/handler"
	"github.com/dirscope/dirscope/internal/tree"
	"github.com/dirscope/dirscope/internal/util"
	"github.com/dirscope/dirscope/internal/watcher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		util.InitLogger("info")
		logger := util.Logger("main")
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	util.InitLogger(cfg.LogLevel)
	log := util.Logger("main")

	fsys := fs.NewLocalFS()
	mat := tree.New(cfg.Roots, fsys)

	if mat.Root() == "" {
		log.Warn().Msg("no workspace root configured, serving an empty tree")
	} else {
		log.Info().Str("root", mat.Root()).Msg("serving workspace")
	}

	treeHandler := handler.NewTreeHandler(mat, fsys)
	fileHandler := handler.NewFileHandler(fsys)
	wsHandler := handler.NewWSHandler()
	mat.OnRefresh(wsHandler.OnRefresh)

	if cfg.Watch && mat.Root() != "" {
		sub, err := watcher.Watch(mat.Root())
		if err != nil {
			log.Warn().Err(err).Msg("failed to start file watcher")
		} else {
			defer sub.Dispose()
			go func() {
				for event := range sub.Events() {
					wsHandler.OnFileChange(event)
				}
			}()
			log.Info().Msg("file watcher enabled")
		}
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/children", treeHandler.Children)
		api.GET("/node", treeHandler.Node)
		api.POST("/refresh", treeHandler.Refresh)
		api.POST("/reveal", treeHandler.Reveal)
		api.GET("/raw/*path", fileHandler.GetRaw)
		api.GET("/preview/*path", fileHandler.GetPreview)
		api.GET("/ws", wsHandler.HandleWS)

		// Write family: stubs only, see internal/fs.
		api.POST("/mkdir", handler.Unsupported)
		api.PUT("/file/*path", handler.Unsupported)
		api.DELETE("/file/*path", handler.Unsupported)
		api.POST("/rename", handler.Unsupported)
		api.POST("/copy", handler.Unsupported)
	}

	if cfg.Open {
		go openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Port))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func openBrowser(url string) {
	var cmd string
	var args []string

	switch runtime.GOOS {
	case "windows":
		cmd = "rundll32"
		args = []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		cmd = "open"
		args = []string{url}
	default: // linux, etc.
		cmd = "xdg-open"
		args = []string{url}
	}

	_ = exec.Command(cmd, args...).Start()
}
