package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"midikeys/host"
	"midikeys/keymap"
	"midikeys/midi"
	"midikeys/seek"
	"midikeys/theme"
	"midikeys/widgets"
)

// pulseKeys press binding i for one cycle
var pulseKeys = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "-", "=", "m"}

const meterWidth = 16

type Model struct {
	Runtime   *host.Runtime
	DeviceMgr *midi.DeviceManager
	Theme     *theme.Theme
	status    host.Status
	quitting  bool
	showHelp  bool
}

type UpdateMsg host.Status

type DeviceEventMsg midi.DeviceEvent

func NewModel(rt *host.Runtime, deviceMgr *midi.DeviceManager, th *theme.Theme) Model {
	return Model{
		Runtime:   rt,
		DeviceMgr: deviceMgr,
		Theme:     th,
	}
}

func ListenForUpdates(rt *host.Runtime) tea.Cmd {
	return func() tea.Msg {
		return UpdateMsg(<-rt.UpdateChan)
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	if deviceMgr == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ListenForUpdates(m.Runtime),
		ListenForDevices(m.DeviceMgr),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "s":
			m.Runtime.Toggle(keymap.SeekEnable)

		case "?":
			m.showHelp = !m.showHelp

		default:
			if i := pulseIndex(key); i >= 0 && i < len(m.status.Bindings) {
				m.Runtime.Press(m.status.Bindings[i].Port)
			}
		}

	case UpdateMsg:
		m.status = host.Status(msg)
		return m, ListenForUpdates(m.Runtime)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		if event.Type == midi.DeviceConnected {
			m.Runtime.SetController(event.Controller)
		} else if event.Type == midi.DeviceDisconnected {
			m.Runtime.SetController(nil)
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

func pulseIndex(key string) int {
	for i, k := range pulseKeys {
		if k == key {
			return i
		}
	}
	return -1
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.status
	sym := m.Theme.Symbols

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	activeStyle := lipgloss.NewStyle().Foreground(m.Theme.Active())

	device := st.Device
	if device == "" {
		device = "no device"
	}
	seekState := "off"
	if st.SeekEnabled {
		seekState = "on"
	}
	header := headerStyle.Render(fmt.Sprintf("midikeys  %s  seek:%s  cycles:%d", device, seekState, st.Cycles))

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")

	// Binding rows
	for i, b := range st.Bindings {
		pulse := " "
		if i < len(pulseKeys) {
			pulse = pulseKeys[i]
		}
		latch := widgets.RenderPad(m.Theme.RGB(theme.RoleMuted), sym.Unlatched)
		if b.Latched {
			latch = widgets.RenderPad(m.Theme.RGB(theme.RoleSuccess), sym.Latched)
		}
		meter := widgets.RenderMeter(float64(b.Value), meterWidth, sym.MeterFull, sym.MeterEmpty, m.Theme.RGB(theme.RoleAccent))
		out.WriteString(fmt.Sprintf(" %s %s %-13s %s %s\n",
			dimStyle.Render(pulse), latch, b.Port, meter, dimStyle.Render(b.Key)))
	}

	// Seek line
	dirSym := sym.SeekIdle
	switch st.Direction {
	case seek.Forward:
		dirSym = sym.SeekForward
	case seek.Backward:
		dirSym = sym.SeekBackward
	}
	bend := widgets.RenderBend(st.Bend, 2*meterWidth, sym.MeterFull, sym.MeterEmpty, dirSym, m.Theme.RGB(theme.RoleWarning))
	delay := "-"
	if st.Direction != seek.Idle {
		delay = st.Delay.Round(time.Millisecond).String()
	}
	seekLine := fmt.Sprintf(" bend %5d %s %s every %s", st.Bend, bend, st.Direction, delay)
	if !st.SeekEnabled {
		seekLine = dimStyle.Render(seekLine)
	}
	out.WriteString("\n")
	out.WriteString(seekLine)
	out.WriteString("\n\n")

	// Recent keys, newest first
	recent := make([]string, 0, len(st.Recent))
	for i := len(st.Recent) - 1; i >= 0; i-- {
		recent = append(recent, st.Recent[i])
	}
	out.WriteString(" sent: ")
	out.WriteString(activeStyle.Render(strings.Join(recent, " ")))
	out.WriteString("\n\n")

	if m.showHelp {
		out.WriteString(widgets.RenderKeyHelp(helpSections()))
		out.WriteString("\n")
	} else {
		out.WriteString(dimStyle.Render("1-0,-,=,m:press binding  s:seek on/off  ?:help  q:quit"))
	}

	return out.String()
}

func helpSections() []widgets.KeySection {
	return []widgets.KeySection{
		{
			Title: "Bindings",
			Keys: []widgets.KeyBinding{
				{Key: "1 .. 0 - = m", Desc: "press the binding on that row for one cycle"},
			},
		},
		{
			Title: "Seek",
			Keys: []widgets.KeyBinding{
				{Key: "s", Desc: "toggle the pitch-bend seek gate"},
			},
		},
		{
			Title: "General",
			Keys: []widgets.KeyBinding{
				{Key: "?", Desc: "toggle this help"},
				{Key: "q", Desc: "quit"},
			},
		},
	}
}
