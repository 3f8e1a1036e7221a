package sim

import (
	"sync"

	"dspblocks/f2837x"
)

// numEPWM is the number of ePWM modules on the device.
const numEPWM = 12

// aqCtl is an action-qualifier register: the actions on compare match
// while counting up and down.
type aqCtl struct {
	up, down int
}

type epwmModule struct {
	enabled bool
	ctrMode int
	tbprd   uint16
	cmpa    uint16
	cmpb    uint16
	aqA     aqCtl
	aqB     aqCtl
	tripped [2]bool // output forced low, per channel
}

// PWM simulates the ePWM time base, counter compare and action qualifier
// of each module.
type PWM struct {
	mu      sync.Mutex
	modules [numEPWM + 1]epwmModule // 1-based
}

func NewPWM() *PWM {
	return &PWM{}
}

// Configure sets the module to up-down count with the output set on the
// compare match counting up and cleared counting down.
func (p *PWM) Configure(out f2837x.EPWMOutput, period, compare uint16) error {
	if out.Module < 1 || out.Module > numEPWM {
		return f2837x.ErrInvalidOutput
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	m := &p.modules[out.Module]
	m.enabled = true
	m.ctrMode = f2837x.CountUpDown
	m.tbprd = period
	aq := aqCtl{up: f2837x.AQSet, down: f2837x.AQClear}
	if out.Channel == f2837x.ChannelA {
		m.cmpa = compare
		m.aqA = aq
	} else {
		m.cmpb = compare
		m.aqB = aq
	}
	m.tripped[channelIndex(out.Channel)] = false
	return nil
}

func (p *PWM) SetCompare(out f2837x.EPWMOutput, compare uint16) error {
	if out.Module < 1 || out.Module > numEPWM {
		return f2837x.ErrInvalidOutput
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	m := &p.modules[out.Module]
	if !m.enabled {
		return ErrNotConfigured
	}
	if out.Channel == f2837x.ChannelA {
		m.cmpa = compare
	} else {
		m.cmpb = compare
	}
	return nil
}

// Disable freezes the time base and forces the output low
func (p *PWM) Disable(out f2837x.EPWMOutput) error {
	if out.Module < 1 || out.Module > numEPWM {
		return f2837x.ErrInvalidOutput
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	m := &p.modules[out.Module]
	m.tripped[channelIndex(out.Channel)] = true
	return nil
}

func channelIndex(c f2837x.Channel) int {
	if c == f2837x.ChannelB {
		return 1
	}
	return 0
}

// Level returns the output level at time-base counter value ctr. Past the
// compare value the output holds the action of the match counting up,
// below it the action of the match counting down.
func (p *PWM) Level(out f2837x.EPWMOutput, ctr uint16) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	m := &p.modules[out.Module]
	if !m.enabled || m.tripped[channelIndex(out.Channel)] {
		return false
	}
	cmp, aq := m.cmpa, m.aqA
	if out.Channel == f2837x.ChannelB {
		cmp, aq = m.cmpb, m.aqB
	}
	if ctr > cmp {
		return aq.up == f2837x.AQSet
	}
	return aq.down == f2837x.AQSet
}

// DutyFraction returns the fraction of a period the output is high,
// found by stepping the counter through one up-down cycle.
func (p *PWM) DutyFraction(out f2837x.EPWMOutput) float64 {
	p.mu.Lock()
	prd := p.modules[out.Module].tbprd
	p.mu.Unlock()
	if prd == 0 {
		return 0
	}
	high := 0
	for ctr := 0; ctr < int(prd); ctr++ {
		if p.Level(out, uint16(ctr)) {
			high++
		}
	}
	for ctr := int(prd); ctr > 0; ctr-- {
		if p.Level(out, uint16(ctr)) {
			high++
		}
	}
	return float64(high) / float64(2*int(prd))
}

// Registers returns TBPRD and the compare value of out
func (p *PWM) Registers(out f2837x.EPWMOutput) (tbprd, cmp uint16, enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m := &p.modules[out.Module]
	cmp = m.cmpa
	if out.Channel == f2837x.ChannelB {
		cmp = m.cmpb
	}
	return m.tbprd, cmp, m.enabled && !m.tripped[channelIndex(out.Channel)]
}
