package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"midikeys/config"
	"midikeys/debug"
	"midikeys/engine"
	"midikeys/host"
	"midikeys/inject"
	"midikeys/keymap"
	"midikeys/midi"
	"midikeys/surface"
	"midikeys/theme"
	"midikeys/tui"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file (default ~/.config/midikeys/config.yaml)")
		port       = flag.String("port", "", "MIDI input port name match (overrides config)")
		injector   = flag.String("injector", "", "key injector: xdotool, uinput, dry-run, none (overrides config)")
		headless   = flag.Bool("headless", false, "run without the terminal monitor")
		debugLog   = flag.Bool("debug", false, "write ~/.config/midikeys/debug.log")
		palette    = flag.String("palette", "", "GIMP palette for the monitor")
		writeCfg   = flag.Bool("write-config", false, "write the effective config and exit")
	)
	flag.Parse()

	if err := run(options{
		configPath: *configPath,
		port:       *port,
		injector:   *injector,
		headless:   *headless,
		debug:      *debugLog,
		palette:    *palette,
		writeCfg:   *writeCfg,
	}); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	port       string
	injector   string
	headless   bool
	debug      bool
	palette    string
	writeCfg   bool
}

func loadConfig(opts options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.port != "" {
		cfg.Input.Port = opts.port
	}
	if opts.injector != "" {
		cfg.Injector = opts.injector
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if opts.writeCfg {
		if opts.configPath != "" {
			return cfg.SaveFile(opts.configPath)
		}
		return cfg.Save()
	}

	if opts.debug {
		if err := debug.Enable(); err != nil {
			return fmt.Errorf("enable debug log: %w", err)
		}
		defer debug.Disable()
	} else if opts.headless {
		debug.EnableWriter(os.Stderr)
	}

	backend, err := inject.New(cfg.Injector)
	if err != nil {
		return err
	}
	if c, ok := backend.(io.Closer); ok {
		defer c.Close()
	}
	// keys leave the cycle goroutine here; the worker does the slow part
	queue := inject.NewAsync(inject.Logged{Next: backend}, inject.DefaultQueueSize)
	defer queue.Close()
	recent := &inject.Recorder{Next: queue, Limit: 8}

	inst := engine.New(cfg.KeyBindings(), recent, engine.Options{
		ForwardKey:  cfg.Seek.Forward,
		BackwardKey: cfg.Seek.Backward,
	})

	surf := surface.New(cfg.Controls())
	if cfg.Seek.Enabled {
		surf.Set(keymap.SeekEnable, 1)
	}

	events := make(chan midi.Event, 256)
	// channels are matched per control by the surface, so take everything
	deviceMgr := midi.NewDeviceManager(cfg.Input.Port, midi.AnyChannel, events)
	rt := host.New(inst, surf, events, host.Options{
		Period:      time.Duration(cfg.CycleMs) * time.Millisecond,
		Recent:      recent,
		Feedback:    cfg.Feedback,
		BendChannel: cfg.Input.Channel,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go deviceMgr.Run(ctx)
	go rt.Run(ctx)

	if opts.headless {
		return runHeadless(ctx, rt, deviceMgr, cfg)
	}

	pal := theme.DefaultPalette()
	if opts.palette != "" {
		if pal, err = theme.LoadGPL(opts.palette); err != nil {
			return err
		}
	}

	m := tui.NewModel(rt, deviceMgr, theme.New(pal))
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func runHeadless(ctx context.Context, rt *host.Runtime, deviceMgr *midi.DeviceManager, cfg *config.Config) error {
	fmt.Println("midikeys")
	fmt.Printf("Waiting for MIDI input matching %q - connect it any time\n", cfg.Input.Port)
	fmt.Printf("Injecting keys with %s, cycle %dms. Ctrl+C to exit.\n", cfg.Injector, cfg.CycleMs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-deviceMgr.Events():
			if !ok {
				return nil
			}
			fmt.Printf("[%s] %s %s\n", time.Now().Format("15:04:05"), ev.ID, ev.Type)
			if ev.Type == midi.DeviceConnected {
				rt.SetController(ev.Controller)
			} else {
				rt.SetController(nil)
			}
		}
	}
}
