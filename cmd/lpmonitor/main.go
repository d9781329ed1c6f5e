// Command lpmonitor connects to a Launchpad Mini, lights an exit pad,
// logs button events and runs the actions bound to pads. Pressing the
// exit pad fills the grid green and quits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/padworks/launchmini"
	"github.com/padworks/launchmini/internal/actions"
	"github.com/padworks/launchmini/internal/config"
	"github.com/padworks/launchmini/midiio"
	"github.com/padworks/launchmini/midiio/gomididrv"
	"github.com/padworks/launchmini/midiio/portmididrv"
	"github.com/padworks/launchmini/pad"
)

func main() {
	listPorts := flag.Bool("list", false, "list MIDI ports and exit")
	portName := flag.String("port", "", "MIDI device name (overrides config)")
	backendName := flag.String("backend", "", "MIDI backend: portmidi or gomidi (overrides config)")
	profileName := flag.String("profile", "", "profile name or ID to use")
	flag.Parse()

	zl, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zl.Sync()
	logger := zl.Sugar().Named("lpmonitor")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalw("Failed to load config", "error", err)
	}
	if *profileName != "" {
		cfg.CurrentProfile = *profileName
	}
	profile := cfg.Current()
	if profile == nil {
		logger.Fatal("No profile configured")
	}
	if *portName != "" {
		profile.Port = *portName
	}
	if *backendName != "" {
		profile.Backend = config.Backend(*backendName)
	}

	backend, err := openBackend(profile.Backend)
	if err != nil {
		logger.Fatalw("Failed to initialize MIDI backend", "backend", profile.Backend, "error", err)
	}
	defer backend.Close()

	if *listPorts {
		printDevices(backend)
		return
	}

	name := profile.Port
	if name == "" {
		name, err = launchmini.Discover(backend)
		if err != nil {
			logger.Fatalw("No Launchpad found", "error", err)
		}
		logger.Infow("Discovered device", "port", name)
	}

	device, err := launchmini.Open(backend, name)
	if err != nil {
		logger.Fatalw("Failed to open device", "port", name, "error", err)
	}
	defer device.Close()

	if err := device.Reset(); err != nil {
		logger.Fatalw("Failed to reset device", "error", err)
	}

	exit := pad.MatPos{Row: profile.ExitRow, Col: profile.ExitCol}
	if err := device.SetPosition(exit.Row, exit.Col, pad.MedYellow); err != nil {
		logger.Fatalw("Failed to light exit pad", "error", err)
	}
	logger.Infow("Monitoring", "port", name, "exit_pad", fmt.Sprintf("(%d,%d)", exit.Row, exit.Col))

	executor := actions.NewExecutor()

	for {
		time.Sleep(profile.PollInterval)

		pending, err := device.Poll()
		if err != nil {
			logger.Warnw("Poll failed", "error", err)
			continue
		}
		if !pending {
			continue
		}

		events, err := device.ReadEvents(midiio.BufferSize)
		if err != nil {
			logger.Warnw("Read failed", "error", err)
			continue
		}

		for _, ev := range events {
			logger.Infow("Button event",
				"row", ev.Pos.Row,
				"col", ev.Pos.Col,
				"pressed", ev.Pressed)

			if !ev.Pressed {
				continue
			}

			if ev.Pos == exit {
				shutdown(logger, device)
				return
			}

			if b := actions.FindBinding(profile.Bindings, ev.Pos.Row, ev.Pos.Col); b != nil {
				out, err := executor.Execute(&b.Action)
				if err != nil {
					logger.Warnw("Action failed", "action", b.Action.Name, "error", err)
					continue
				}
				logger.Infow("Action done", "action", b.Action.Name, "output", out)
			}
		}
	}
}

func shutdown(logger *zap.SugaredLogger, device *launchmini.Device) {
	if err := device.Blackout(); err != nil {
		logger.Warnw("Blackout failed", "error", err)
	}
	if err := device.SetAll(pad.Green); err != nil {
		logger.Warnw("Fill failed", "error", err)
	}
	logger.Info("Exit pad pressed, quitting")
}

func openBackend(name config.Backend) (midiio.Interface, error) {
	switch name {
	case config.BackendGoMidi:
		return gomididrv.New(), nil
	case config.BackendPortMidi, "":
		return portmididrv.New()
	}
	return nil, fmt.Errorf("unknown backend %q", name)
}

func printDevices(backend midiio.Interface) {
	devs, err := backend.Devices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list devices: %v\n", err)
		os.Exit(1)
	}
	for _, d := range devs {
		fmt.Printf("%3d  %-6s  %s\n", d.ID, d.Direction, d.Name)
	}
}
