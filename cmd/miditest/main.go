package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"midikeys/inject"
	"midikeys/midi"
	"midikeys/seek"
	"midikeys/surface"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		monitor(arg(2))
	case "keys":
		listKeys()
	case "send":
		sendKey(arg(2), arg(3))
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func arg(i int) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return ""
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                  - List all MIDI ports")
	fmt.Println("  monitor [port]        - Print decoded events (pitch bend with seek delay)")
	fmt.Println("  keys                  - List key names the uinput injector knows")
	fmt.Println("  send <key> [backend]  - Inject one key (xdotool, uinput, dry-run)")
	fmt.Println("  poll                  - Poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, outs, err := midi.Ports(3 * time.Second)
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}

	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func monitor(match string) {
	ins, _, err := midi.Ports(3 * time.Second)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	for _, in := range ins {
		if !midi.Matches(in.String(), match) {
			continue
		}
		fmt.Printf("Monitoring %s. Ctrl+C to exit.\n", in.String())

		stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
			ev, ok := midi.Decode(msg)
			if !ok {
				fmt.Printf("%8dms  (ignored) %s\n", timestampms, msg.String())
				return
			}
			switch ev.Type {
			case midi.PitchBend:
				fmt.Printf("%8dms  %s  %s every %s\n", timestampms, ev,
					seek.DirectionOf(ev.Bend), seek.Delay(ev.Bend).Round(time.Millisecond))
			case midi.CC:
				fmt.Printf("%8dms  %s  -> %.3f\n", timestampms, ev, surface.CCValue(ev.Velocity))
			default:
				fmt.Printf("%8dms  %s\n", timestampms, ev)
			}
		})
		if err != nil {
			fmt.Printf("Error opening port: %v\n", err)
			return
		}
		defer stop()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		<-sig
		return
	}

	fmt.Printf("No input port matching %q\n", match)
}

func listKeys() {
	for _, name := range inject.KeyNames() {
		code, _ := inject.KeyCode(name)
		fmt.Printf("  %-22s %d\n", name, code)
	}
}

func sendKey(key, backend string) {
	if key == "" {
		usage()
		return
	}
	inj, err := inject.New(backend)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if u, ok := inj.(*inject.Uinput); ok {
		defer u.Close()
		// give the desktop a moment to pick up the new device
		time.Sleep(500 * time.Millisecond)
	}
	if err := inj.SendKeysequence(key); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Sent %s\n", key)
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect a controller to test. Ctrl+C to exit.")

	lastIn := ""
	lastOut := ""

	for {
		ins := gomidi.GetInPorts()
		outs := gomidi.GetOutPorts()

		// Build current state
		var inNames, outNames []string
		for _, p := range ins {
			inNames = append(inNames, p.String())
		}
		for _, p := range outs {
			outNames = append(outNames, p.String())
		}

		currentIn := strings.Join(inNames, ",")
		currentOut := strings.Join(outNames, ",")

		if currentIn != lastIn || currentOut != lastOut {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			fmt.Printf("  Inputs: %v\n", inNames)
			fmt.Printf("  Outputs: %v\n", outNames)

			lastIn = currentIn
			lastOut = currentOut
		}

		time.Sleep(2 * time.Second)
	}
}
