package f2837x

// Channel is the A or B output of an ePWM module.
type Channel byte

const (
	ChannelA Channel = 'A'
	ChannelB Channel = 'B'
)

// EPWMOutput is a routable ePWM output pin.
type EPWMOutput struct {
	Name    string
	Module  int // 1-based ePWM module number
	GPIO    int
	Channel Channel
}

// Action-qualifier settings used by the ePWM block.
const (
	CountUp     = 0
	CountDown   = 1
	CountUpDown = 2

	AQNone   = 0
	AQClear  = 1
	AQSet    = 2
	AQToggle = 3
)

// epwmOutputs lists the outputs reachable on the LaunchPad headers. ePWM7
// has no pin on mux position 1 and is absent.
var epwmOutputs = []EPWMOutput{
	{"out1a", 1, 0, ChannelA},
	{"out1b", 1, 1, ChannelB},
	{"out2a", 2, 2, ChannelA},
	{"out2b", 2, 3, ChannelB},
	{"out3a", 3, 4, ChannelA},
	{"out3b", 3, 5, ChannelB},
	{"out4a", 4, 6, ChannelA},
	{"out4b", 4, 7, ChannelB},
	{"out5a", 5, 8, ChannelA},
	{"out5b", 5, 9, ChannelB},
	{"out6a", 6, 10, ChannelA},
	{"out6b", 6, 11, ChannelB},
	{"out8a", 8, 14, ChannelA},
	{"out8b", 8, 15, ChannelB},
}

// LookupEPWMOutput resolves an output name such as "out2b".
func LookupEPWMOutput(name string) (EPWMOutput, error) {
	for _, o := range epwmOutputs {
		if o.Name == name {
			return o, nil
		}
	}
	return EPWMOutput{}, ErrInvalidOutput
}

// EPWMOutputs returns all routable outputs.
func EPWMOutputs() []EPWMOutput {
	out := make([]EPWMOutput, len(epwmOutputs))
	copy(out, epwmOutputs)
	return out
}

// CompareFromDuty returns the CMPA value for duty percent on an up-down
// counter with period TBPRD. The output is set on CAU and cleared on CAD, so
// it is high while the counter is above CMPA and the duty is inverted here.
func CompareFromDuty(period uint16, duty int) uint16 {
	if duty < 0 {
		duty = 0
	}
	if duty > 100 {
		duty = 100
	}
	inv := 100 - duty
	return uint16(float32(inv) / 100 * float32(period))
}
