package midi

import gomidi "gitlab.com/gomidi/midi/v2"

// Receive feeds msg as if it came from the input port
func (sc *SurfaceController) Receive(msg gomidi.Message) {
	sc.receive(msg)
}
