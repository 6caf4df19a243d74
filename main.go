/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/meshproxy/engine"
	"github.com/spaghettifunk/meshproxy/testbed"
)

func main() {
	settingsPath := flag.String("settings", "", "render settings file (TOML)")
	watch := flag.Bool("watch", true, "reload the settings file when it changes")
	frames := flag.Uint64("frames", 0, "stop after this many frames, 0 runs until interrupted")
	logLevel := flag.String("log-level", "", "override the log level of the settings file")
	flag.Parse()

	tb := testbed.NewTestGame(&engine.ApplicationConfig{
		SettingsPath:       *settingsPath,
		WatchSettings:      *watch,
		LogLevel:           *logLevel,
		FrameLimit:         *frames,
		TargetFrameSeconds: 1.0 / 60.0,
	})

	engine, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := engine.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start stop goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		engine.Stop()
	}()

	// run engine
	if err := engine.Run(); err != nil {
		_ = engine.Shutdown()
		panic(err)
	}
	if err := engine.Shutdown(); err != nil {
		panic(err)
	}
}
