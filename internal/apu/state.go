package apu

// SquareState is a serializable snapshot of one square channel (1 or 2).
type SquareState struct {
	Enabled, DacEnabled bool
	Duty, DutyPos       uint8
	Frequency           uint16
	Divider             int
	Length              uint8
	LengthEnabled       bool
	EnvelopeInitial     uint8
	EnvelopeDirection   bool
	EnvelopePeriod      uint8
	EnvelopeTimer       uint8
	Volume              uint8
	HasSweep            bool
	SweepPeriod         uint8
	SweepTimer          uint8
	SweepDirection      bool
	SweepShift          uint8
	SweepEnabled        bool
	ShadowFrequency     uint16
}

func snapshotSquare(s *square) SquareState {
	return SquareState{
		Enabled: s.enabled, DacEnabled: s.dacEnabled,
		Duty: s.duty, DutyPos: s.dutyPos,
		Frequency: s.frequency, Divider: s.divider,
		Length: s.length, LengthEnabled: s.lengthEnabled,
		EnvelopeInitial: s.envelopeInitial, EnvelopeDirection: s.envelopeDirection,
		EnvelopePeriod: s.envelopePeriod, EnvelopeTimer: s.envelopeTimer, Volume: s.volume,
		HasSweep: s.hasSweep, SweepPeriod: s.sweepPeriod, SweepTimer: s.sweepTimer,
		SweepDirection: s.sweepDirection, SweepShift: s.sweepShift,
		SweepEnabled: s.sweepEnabled, ShadowFrequency: s.shadowFrequency,
	}
}

func restoreSquare(s *square, st SquareState) {
	s.enabled, s.dacEnabled = st.Enabled, st.DacEnabled
	s.duty, s.dutyPos = st.Duty, st.DutyPos
	s.frequency, s.divider = st.Frequency, st.Divider
	s.length, s.lengthEnabled = st.Length, st.LengthEnabled
	s.envelopeInitial, s.envelopeDirection = st.EnvelopeInitial, st.EnvelopeDirection
	s.envelopePeriod, s.envelopeTimer, s.volume = st.EnvelopePeriod, st.EnvelopeTimer, st.Volume
	s.hasSweep, s.sweepPeriod, s.sweepTimer = st.HasSweep, st.SweepPeriod, st.SweepTimer
	s.sweepDirection, s.sweepShift = st.SweepDirection, st.SweepShift
	s.sweepEnabled, s.shadowFrequency = st.SweepEnabled, st.ShadowFrequency
}

// WaveState is a serializable snapshot of channel 3.
type WaveState struct {
	Enabled, DacEnabled bool
	Frequency           uint16
	Divider             int
	Position            uint8
	OutputLevel         uint8
	Length              uint16
	LengthEnabled       bool
	RAM                 [16]uint8
}

func snapshotWave(w *wave) WaveState {
	return WaveState{
		Enabled: w.enabled, DacEnabled: w.dacEnabled,
		Frequency: w.frequency, Divider: w.divider, Position: w.position,
		OutputLevel: w.outputLevel, Length: w.length, LengthEnabled: w.lengthEnabled,
		RAM: w.ram,
	}
}

func restoreWave(w *wave, st WaveState) {
	w.enabled, w.dacEnabled = st.Enabled, st.DacEnabled
	w.frequency, w.divider, w.position = st.Frequency, st.Divider, st.Position
	w.outputLevel, w.length, w.lengthEnabled = st.OutputLevel, st.Length, st.LengthEnabled
	w.ram = st.RAM
}

// NoiseState is a serializable snapshot of channel 4.
type NoiseState struct {
	Enabled, DacEnabled bool
	DivisorCode         uint8
	ShiftCode           uint8
	WidthMode           bool
	Divider             int
	LFSR                uint16
	Length              uint8
	LengthEnabled       bool
	EnvelopeInitial     uint8
	EnvelopeDirection   bool
	EnvelopePeriod      uint8
	EnvelopeTimer       uint8
	Volume              uint8
}

func snapshotNoise(n *noise) NoiseState {
	return NoiseState{
		Enabled: n.enabled, DacEnabled: n.dacEnabled,
		DivisorCode: n.divisorCode, ShiftCode: n.shiftCode, WidthMode: n.widthMode,
		Divider: n.divider, LFSR: n.lfsr,
		Length: n.length, LengthEnabled: n.lengthEnabled,
		EnvelopeInitial: n.envelopeInitial, EnvelopeDirection: n.envelopeDirection,
		EnvelopePeriod: n.envelopePeriod, EnvelopeTimer: n.envelopeTimer, Volume: n.volume,
	}
}

func restoreNoise(n *noise, st NoiseState) {
	n.enabled, n.dacEnabled = st.Enabled, st.DacEnabled
	n.divisorCode, n.shiftCode, n.widthMode = st.DivisorCode, st.ShiftCode, st.WidthMode
	n.divider, n.lfsr = st.Divider, st.LFSR
	n.length, n.lengthEnabled = st.Length, st.LengthEnabled
	n.envelopeInitial, n.envelopeDirection = st.EnvelopeInitial, st.EnvelopeDirection
	n.envelopePeriod, n.envelopeTimer, n.volume = st.EnvelopePeriod, st.EnvelopeTimer, st.Volume
}

// State is a complete, serializable snapshot of the APU: all four
// channels, the mixer registers, and the frame sequencer's phase. The
// sample ring buffer is intentionally excluded -- it holds already-
// produced audio the host is expected to have drained, not emulation
// state a restore needs to reproduce.
type State struct {
	CH1, CH2        SquareState
	CH3             WaveState
	CH4             NoiseState
	NR50, NR51      uint8
	PowerOn         bool
	FrameSeqCounter int
	FrameSeqStep    int
	SampleAcc       int
}

// Snapshot captures the APU's current state.
func (a *APU) Snapshot() State {
	return State{
		CH1: snapshotSquare(&a.ch1), CH2: snapshotSquare(&a.ch2),
		CH3: snapshotWave(&a.ch3), CH4: snapshotNoise(&a.ch4),
		NR50: a.nr50, NR51: a.nr51, PowerOn: a.powerOn,
		FrameSeqCounter: a.frameSeqCounter, FrameSeqStep: a.frameSeqStep,
		SampleAcc: a.sampleAcc,
	}
}

// Restore installs a previously captured State.
func (a *APU) Restore(s State) {
	restoreSquare(&a.ch1, s.CH1)
	restoreSquare(&a.ch2, s.CH2)
	restoreWave(&a.ch3, s.CH3)
	restoreNoise(&a.ch4, s.CH4)
	a.nr50, a.nr51, a.powerOn = s.NR50, s.NR51, s.PowerOn
	a.frameSeqCounter, a.frameSeqStep = s.FrameSeqCounter, s.FrameSeqStep
	a.sampleAcc = s.SampleAcc
}
