/*
Quadrant previews a sprite scene in a window, or renders a headless
snapshot of it.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/quadrant/engine"
	"github.com/spaghettifunk/quadrant/engine/config"
	"github.com/spaghettifunk/quadrant/engine/core"
	"github.com/spaghettifunk/quadrant/testbed"
)

func main() {
	configPath := flag.String("config", config.DefaultFile, "path to the TOML configuration")
	snapshotPath := flag.String("snapshot", "", "render one frame to this WebP file and exit")
	writeConfig := flag.Bool("write-config", false, "write the default configuration to -config and exit")
	flag.Parse()

	if *writeConfig {
		if err := config.Write(*configPath, config.Default()); err != nil {
			core.LogFatal("writing config: %s", err)
		}
		core.LogInfo("default configuration written to %s", *configPath)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal("%s", err)
	}

	tb := testbed.NewTestGame(engine.NewApplicationConfig(cfg))

	e, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("%s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("%s", err)
	}

	if *snapshotPath != "" {
		if err := e.Snapshot(*snapshotPath); err != nil {
			core.LogError("%s", err)
		}
		if err := e.Shutdown(); err != nil {
			core.LogFatal("%s", err)
		}
		return
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		_ = e.Shutdown()
	}()

	// run engine
	if err := e.Run(); err != nil {
		core.LogFatal("%s", err)
	}
}
