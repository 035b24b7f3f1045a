// FILE: example/fasthttp/main.go
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/lixenwraith/flatlog"
	"github.com/lixenwraith/flatlog/compat"
)

func main() {
	reg := flatlog.NewRegistry()
	defer reg.CloseAll()

	sink, err := flatlog.NewBuilder().
		Directory("/var/log/fasthttp").
		LevelString("info").
		BufferThreshold(200).
		Registry(reg).
		Build()
	if err != nil {
		panic(err)
	}

	// Create fasthttp adapter with custom level detection
	fasthttpAdapter := compat.NewFastHTTPAdapter(
		sink,
		compat.WithDefaultLevel(flatlog.LevelInfo),
		compat.WithLevelDetector(customLevelDetector),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  fasthttpAdapter,

		// Other server settings
		Name:              "MyServer",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customLevelDetector(msg string) flatlog.Level {
	// Specific fasthttp message patterns first
	if strings.Contains(msg, "connection cannot be served") {
		return flatlog.LevelWarning
	}
	if strings.Contains(msg, "error when serving connection") {
		return flatlog.LevelError
	}

	// Use default detection
	return compat.DetectLogLevel(msg)
}
