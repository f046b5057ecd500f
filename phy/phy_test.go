package phy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePHY is a Clause 22 PHY register model on its own MDIO bus.
type fakePHY struct {
	addr        uint8
	regs        [32]uint16
	linkable    bool // link partner attached
	stuckReset  bool
	partner     ANAR
	partner1000 STAT1000
}

func newFakePHY(addr uint8, gigabit bool) *fakePHY {
	f := &fakePHY{
		addr:        addr,
		linkable:    true,
		partner:     NewANAR().With10M().With100M() | ANARAck,
		partner1000: STAT1000PartnerFull | STAT1000PartnerHalf,
	}
	f.regs[AddrBMCR] = uint16(BMCRANEnable)
	f.regs[AddrBMSR] = uint16(BMSRANCap | BMSR10Half | BMSR10Full | BMSR100Half | BMSR100Full | BMSRExtCap)
	f.regs[regPhyId1] = 0x0007
	f.regs[regPhyId2] = 0xc0f1
	f.regs[AddrANAR] = uint16(NewANAR().With10M().With100M())
	if gigabit {
		f.regs[AddrBMSR] |= uint16(BMSRExtStatus)
		f.regs[AddrESTATUS] = uint16(ESTATUS1000TFull | ESTATUS1000THalf)
		f.regs[AddrCTRL1000] = uint16(CTRL1000AdvMask)
	}
	return f
}

func (f *fakePHY) Read(phyAddr, devAddr uint8, reg uint16) (uint16, error) {
	if devAddr != 0 {
		return 0, ErrUnsupported
	} else if phyAddr != f.addr {
		return 0xffff, nil // Pulled up bus.
	}
	return f.regs[reg&31], nil
}

func (f *fakePHY) Write(phyAddr, devAddr uint8, reg, v uint16) error {
	if devAddr != 0 {
		return ErrUnsupported
	} else if phyAddr != f.addr {
		return nil
	}
	if reg != AddrBMCR {
		f.regs[reg&31] = v
		return nil
	}
	ctl := BMCR(v)
	bmsr := BMSR(f.regs[AddrBMSR]) &^ (BMSRLinkStatus | BMSRANComplete)
	switch {
	case ctl&BMCRReset != 0 && f.stuckReset:
	case ctl&BMCRReset != 0:
		ctl = BMCRANEnable
	case ctl&BMCRPowerDown != 0 || !f.linkable:
	case ctl&BMCRANRestart != 0:
		ctl &^= BMCRANRestart
		bmsr |= BMSRLinkStatus | BMSRANComplete
		f.regs[AddrANLPAR] = uint16(f.partner)
		f.regs[AddrSTAT1000] = uint16(f.partner1000)
	case ctl&BMCRANEnable == 0:
		bmsr |= BMSRLinkStatus
	}
	f.regs[AddrBMCR] = uint16(ctl)
	f.regs[AddrBMSR] = uint16(bmsr)
	return nil
}

func newTestDevice(t *testing.T, f *fakePHY) *Device {
	t.Helper()
	var dev Device
	require.NoError(t, dev.ConfigureAs22(f, f.addr))
	return &dev
}

func TestConfigureAs22(t *testing.T) {
	var dev Device
	assert.ErrorIs(t, dev.ConfigureAs22(newFakePHY(0, false), 32), ErrInvalidAddr)
	assert.ErrorIs(t, dev.ConfigureAs22(nil, 1), ErrInvalidConfig)
	require.NoError(t, dev.ConfigureAs22(newFakePHY(7, false), 7))
	assert.EqualValues(t, 7, dev.PHYAddr())
	assert.False(t, dev.IsClause45())
	id1, err := dev.ID1()
	require.NoError(t, err)
	assert.EqualValues(t, 0x0007, id1)
}

func TestFindClause22PHYs(t *testing.T) {
	var dst [32]uint8
	n, err := FindClause22PHYs(newFakePHY(5, false), dst[:])
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.EqualValues(t, 5, dst[0])

	_, err = FindClause22PHYs(newFakePHY(5, false), dst[:4])
	assert.ErrorIs(t, err, ErrShortBuffer)

	empty := newFakePHY(5, false)
	empty.regs[AddrBMSR] = 0
	_, err = FindClause22PHYs(empty, dst[:])
	assert.ErrorIs(t, err, ErrNoPHY)
}

func TestResetPHY(t *testing.T) {
	f := newFakePHY(1, true)
	dev := newTestDevice(t, f)
	require.NoError(t, dev.ResetPHY())
	ctl, err := dev.BasicControl()
	require.NoError(t, err)
	assert.Zero(t, ctl&BMCRReset)

	f.stuckReset = true
	start := time.Now()
	assert.ErrorIs(t, dev.ResetPHY(), ErrResetTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 500*time.Millisecond)
}

func TestStartupAutoNegotiation(t *testing.T) {
	tests := []struct {
		name        string
		gigabit     bool
		maxSpeed    int
		partner1000 STAT1000
		want        LinkMode
	}{
		{name: "gigabit", gigabit: true, partner1000: STAT1000PartnerFull, want: Link1000FDX},
		{name: "gigabit-half", gigabit: true, partner1000: STAT1000PartnerHalf, want: Link1000HDX},
		{name: "partner-100", gigabit: true, want: Link100FDX},
		{name: "capped-100", gigabit: true, maxSpeed: 100, partner1000: STAT1000PartnerFull, want: Link100FDX},
		{name: "fast-ethernet-phy", partner1000: STAT1000PartnerFull, want: Link100FDX},
		{name: "capped-10", maxSpeed: 10, want: Link10FDX},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakePHY(3, tt.gigabit)
			f.partner1000 = tt.partner1000
			dev := newTestDevice(t, f)
			require.NoError(t, dev.SetMaxSpeed(tt.maxSpeed))
			link, err := dev.Startup(time.Now().Add(time.Second))
			require.NoError(t, err)
			assert.Equal(t, Link{Up: true, Mode: tt.want}, link, "got %s", link.Mode)
		})
	}
}

func TestSetMaxSpeed(t *testing.T) {
	f := newFakePHY(3, true)
	dev := newTestDevice(t, f)
	require.NoError(t, dev.SetMaxSpeed(100))
	assert.Zero(t, CTRL1000(f.regs[AddrCTRL1000])&CTRL1000AdvMask)
	assert.Equal(t, NewANAR().With10M().With100M(), ANAR(f.regs[AddrANAR]))

	require.NoError(t, dev.SetMaxSpeed(1000))
	assert.Equal(t, CTRL1000AdvMask, CTRL1000(f.regs[AddrCTRL1000])&CTRL1000AdvMask)

	require.NoError(t, dev.SetMaxSpeed(10))
	assert.Equal(t, NewANAR().With10M(), ANAR(f.regs[AddrANAR]))
	assert.ErrorIs(t, dev.SetMaxSpeed(5), ErrUnsupported)
}

func TestStartupNoLink(t *testing.T) {
	f := newFakePHY(2, true)
	f.linkable = false
	dev := newTestDevice(t, f)
	start := time.Now()
	link, err := dev.Startup(time.Now().Add(20 * time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, Link{}, link)
	assert.Less(t, time.Since(start), time.Second)
}

func TestStartupForced(t *testing.T) {
	f := newFakePHY(2, true)
	dev := newTestDevice(t, f)
	require.NoError(t, dev.SetupForced(Link100HDX))
	link, err := dev.Startup(time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, Link{Up: true, Mode: Link100HDX}, link)
	assert.ErrorIs(t, dev.SetupForced(Link2500FDX), ErrUnsupported)
}

func TestShutdown(t *testing.T) {
	f := newFakePHY(2, false)
	dev := newTestDevice(t, f)
	require.NoError(t, dev.Shutdown())
	assert.NotZero(t, BMCR(f.regs[AddrBMCR])&BMCRPowerDown)
	_, err := dev.WaitForLinkWithDeadline(time.Now().Add(10 * time.Millisecond))
	assert.ErrorIs(t, err, ErrPoweredDown)
}

func TestEnableAutoNegotiation(t *testing.T) {
	f := newFakePHY(2, false)
	dev := newTestDevice(t, f)
	require.NoError(t, dev.EnableAutoNegotiation(false))
	assert.Zero(t, BMCR(f.regs[AddrBMCR])&BMCRANEnable)
	require.NoError(t, dev.EnableAutoNegotiation(true))
	assert.NotZero(t, BMCR(f.regs[AddrBMCR])&BMCRANEnable)
}

func TestFixed(t *testing.T) {
	link, err := Fixed{}.Startup(time.Time{})
	require.NoError(t, err)
	assert.Equal(t, Link{Up: true, Mode: Link100FDX}, link)
	link, _ = Fixed{Mode: Link1000FDX}.Startup(time.Time{})
	assert.Equal(t, Link1000FDX, link.Mode)
	assert.NoError(t, Fixed{}.Shutdown())
}

func TestBMCRLinkMode(t *testing.T) {
	tests := []struct {
		ctl  BMCR
		want LinkMode
	}{
		{0, Link10HDX},
		{BMCRFullDuplex, Link10FDX},
		{BMCRSpeed100, Link100HDX},
		{BMCRSpeed100 | BMCRFullDuplex, Link100FDX},
		{BMCRSpeed1000 | BMCRFullDuplex, Link1000FDX},
		{BMCRSpeed1000 | BMCRSpeed100, LinkDown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ctl.LinkMode(), "BMCR %#04x", uint16(tt.ctl))
	}
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "1000M-F", Link1000FDX.String())
	assert.Equal(t, "down", LinkDown.String())
	assert.Equal(t, "LinkMode(99)", LinkMode(99).String())
	assert.Equal(t, "phy: no PHY found", ErrNoPHY.Error())
	assert.Equal(t, 1000, Link1000HDX.SpeedMbps())
	assert.False(t, Link1000HDX.IsFullDuplex())
}

func TestStartupAfterShutdown(t *testing.T) {
	f := newFakePHY(2, true)
	dev := newTestDevice(t, f)
	require.NoError(t, dev.Shutdown())
	link, err := dev.Startup(time.Now().Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, Link{Up: true, Mode: Link1000FDX}, link)
	assert.Zero(t, BMCR(f.regs[AddrBMCR])&BMCRPowerDown)
}
