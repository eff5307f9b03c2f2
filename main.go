/*
Lumine boots a Vulkan context: window, instance, device selection, logical
device and graphics queue, then idles in the event loop until the window is
closed. Rendering is intentionally absent; the bootstrap stops at "device
ready to accept commands".
*/
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lumine-engine/lumine/engine"
	"github.com/lumine-engine/lumine/engine/core"
	"github.com/lumine-engine/lumine/engine/renderer/vulkan"
)

func main() {
	fmt.Printf("Validation layers enabled: %t\n", vulkan.ValidationLayersEnabled())

	cfg, err := engine.LoadConfig("config.toml")
	if err != nil {
		core.LogError("invalid config: %s", err)
		os.Exit(1)
	}

	e := engine.New(cfg)

	if err := e.Initialize(); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		e.Stop()
	}()

	if err := e.Run(); err != nil {
		core.LogError("%s", err)
		os.Exit(1)
	}
}
