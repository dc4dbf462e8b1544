package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MyOne00/portfolio/internal/logger"
	"github.com/MyOne00/portfolio/internal/typewriter"
)

// typewriterStream sends every frame of the named phrase set as a
// server-sent event until the client goes away.
func (app *App) typewriterStream(c *gin.Context) {
	phrases, ok := phraseSets[c.Param("name")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown phrase set"})
		return
	}

	ctx := c.Request.Context()
	frames := make(chan string)
	sink := typewriter.SinkFunc(func(text string) {
		select {
		case frames <- text:
		case <-ctx.Done():
		}
	})

	var opts []typewriter.Option
	if app.clock != nil {
		opts = append(opts, typewriter.WithClock(app.clock))
	}
	engine, err := typewriter.New(phrases, sink, opts...)
	if err != nil {
		logger.From(ctx).Error("failed to start typewriter", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	go func() {
		_ = engine.Run(ctx)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case text := <-frames:
			c.SSEvent("type", text)
			c.Writer.Flush()
		}
	}
}
