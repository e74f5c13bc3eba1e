// Package apu implements the DMG's four-channel sound generator: two
// square channels (one with frequency sweep), a wave-table channel, an
// LFSR noise channel, the 512 Hz frame sequencer that drives their
// length/envelope/sweep clocks, and the NR50/NR51/NR52-controlled stereo
// mixer that downsamples to a host sample-rate ring buffer.
package apu

import "nitro-core-dx/internal/debug"

// dotClock is the master 4.194304 MHz dot clock the frame sequencer and
// every channel's period divider count against.
const dotClock = 4194304

// frameSequencerPeriod is the dot-clock divisor giving the 512 Hz frame
// sequencer tick.
const frameSequencerPeriod = dotClock / 512

// APU owns the four channels, the global mixer registers, the frame
// sequencer, and the stereo sample ring buffer consumed by the host.
type APU struct {
	ch1 square
	ch2 square
	ch3 wave
	ch4 noise

	nr50, nr51 uint8
	powerOn    bool

	frameSeqCounter int
	frameSeqStep    int

	sampleRate uint32
	sampleAcc  int

	Ring      []int16
	ringWrite int

	Logger *debug.Logger
}

// New creates an APU producing stereo int16 samples into a ring buffer
// sized for ringSeconds of audio at sampleRate.
func New(sampleRate uint32, ringSeconds float64, logger *debug.Logger) *APU {
	if sampleRate == 0 {
		sampleRate = 44100
	}
	ringLen := int(float64(sampleRate)*ringSeconds)*2 + 2
	a := &APU{
		sampleRate: sampleRate,
		Ring:       make([]int16, ringLen),
		Logger:     logger,
		powerOn:    true,
	}
	a.ch1.hasSweep = true
	return a
}

// Tick advances every channel's period divider, the frame sequencer, and
// the sample-rate downsampler by cycles dot-cycles.
func (a *APU) Tick(cycles int) {
	if !a.powerOn {
		return
	}
	for i := 0; i < cycles; i++ {
		a.ch1.tickPeriod()
		a.ch2.tickPeriod()
		a.ch3.tickPeriod()
		a.ch4.tickPeriod()

		a.frameSeqCounter++
		if a.frameSeqCounter >= frameSequencerPeriod {
			a.frameSeqCounter -= frameSequencerPeriod
			a.stepFrameSequencer()
		}

		a.sampleAcc += int(a.sampleRate)
		if a.sampleAcc >= dotClock {
			a.sampleAcc -= dotClock
			a.pushSample()
		}
	}
}

// stepFrameSequencer advances the 0..7 step counter, clocking length
// counters on even steps, the channel-1 sweep on steps 2 and 6, and
// every channel's volume envelope on step 7.
func (a *APU) stepFrameSequencer() {
	switch a.frameSeqStep {
	case 0, 4:
		a.clockLength()
	case 2, 6:
		a.clockLength()
		a.ch1.clockSweep()
	case 7:
		a.ch1.clockEnvelope()
		a.ch2.clockEnvelope()
		a.ch4.clockEnvelope()
	}
	a.frameSeqStep = (a.frameSeqStep + 1) & 0x07
}

func (a *APU) clockLength() {
	a.ch1.clockLength()
	a.ch2.clockLength()
	a.ch3.clockLength()
	a.ch4.clockLength()
}

// pushSample mixes the four channel outputs per NR51's routing matrix
// and NR50's master volumes, and appends one interleaved stereo frame
// to the ring buffer.
func (a *APU) pushSample() {
	var left, right int32

	mix := func(ch int32, leftBit, rightBit uint8) {
		if a.nr51&leftBit != 0 {
			left += ch
		}
		if a.nr51&rightBit != 0 {
			right += ch
		}
	}

	mix(int32(a.ch1.output()), 0x10, 0x01)
	mix(int32(a.ch2.output()), 0x20, 0x02)
	mix(int32(a.ch3.output()), 0x40, 0x04)
	mix(int32(a.ch4.output()), 0x80, 0x08)

	leftVol := int32((a.nr50>>4)&0x07) + 1
	rightVol := int32(a.nr50&0x07) + 1

	left = (left * leftVol * 258) / 8
	right = (right * rightVol * 258) / 8

	a.Ring[a.ringWrite] = clampSample(left)
	a.Ring[a.ringWrite+1] = clampSample(right)
	a.ringWrite += 2
	if a.ringWrite >= len(a.Ring) {
		a.ringWrite = 0
	}
}

func clampSample(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}

// Pull copies the most recent min(len(buf), len(Ring)) int16 values
// (interleaved stereo frames), oldest first and ending at the current
// write position, into buf, and returns the number written. It keeps no
// read position: two calls with fewer new samples produced in between
// return overlapping samples.
func (a *APU) Pull(buf []int16) int {
	n := len(buf)
	if n > len(a.Ring) {
		n = len(a.Ring)
	}
	start := a.ringWrite - n
	for start < 0 {
		start += len(a.Ring)
	}
	for i := 0; i < n; i++ {
		buf[i] = a.Ring[(start+i)%len(a.Ring)]
	}
	return n
}

// statusByte reconstructs NR52's read value: bit 7 is master power, bits
// 0-3 are each channel's read-only enabled flag.
func (a *APU) statusByte() uint8 {
	v := uint8(0x70)
	if a.powerOn {
		v |= 0x80
	}
	if a.ch1.enabled {
		v |= 0x01
	}
	if a.ch2.enabled {
		v |= 0x02
	}
	if a.ch3.enabled {
		v |= 0x04
	}
	if a.ch4.enabled {
		v |= 0x08
	}
	return v
}

// ChannelEnabled reports channel ch's (0-3) current enabled flag, for
// trace and debug tooling.
func (a *APU) ChannelEnabled(ch int) bool {
	switch ch {
	case 0:
		return a.ch1.enabled
	case 1:
		return a.ch2.enabled
	case 2:
		return a.ch3.enabled
	case 3:
		return a.ch4.enabled
	default:
		return false
	}
}

// MasterVolume decodes NR50's left/right volume nibbles (0-7, hardware
// does not expose the VIN-enable bits here).
func (a *APU) MasterVolume() (left, right uint8) {
	return (a.nr50 >> 4) & 0x07, a.nr50 & 0x07
}

// powerOff implements writing 0 to NR52 bit 7: every register except the
// length counters and wave RAM is cleared and every channel silenced.
func (a *APU) powerOff() {
	a.powerOn = false
	a.nr50, a.nr51 = 0, 0

	ch1Length, ch2Length, ch3Length, ch4Length := a.ch1.length, a.ch2.length, a.ch3.length, a.ch4.length
	waveRAM := a.ch3.ram

	a.ch1 = square{hasSweep: true, length: ch1Length}
	a.ch2 = square{length: ch2Length}
	a.ch3 = wave{length: ch3Length, ram: waveRAM}
	a.ch4 = noise{length: ch4Length}
}

// restorePower implements the NR52 bit-7 0-to-1 transition: the frame
// sequencer restarts from step 0, matching hardware.
func (a *APU) restorePower() {
	a.powerOn = true
	a.frameSeqStep = 0
}
