// FILE: example/gnet/main.go
package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/lixenwraith/flatlog"
	"github.com/lixenwraith/flatlog/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	cfg := flatlog.DefaultConfig()
	if err := cfg.ApplyOverride(
		"directory=/var/log/gnet",
		"level=debug",
	); err != nil {
		panic(err)
	}

	sink, err := flatlog.NewSink(cfg)
	if err != nil {
		panic(err)
	}
	defer sink.Close()

	gnetAdapter := compat.NewGnetAdapter(sink)

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
