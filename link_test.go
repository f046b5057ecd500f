package ftgmac

import (
	"testing"

	"github.com/soypat/ftgmac/dma"
	"github.com/soypat/ftgmac/phy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControlWord(t *testing.T) {
	const other = MACCRTxDMAEn | MACCRRxMACEn | MACCRCRCApd | MACCRRxBroadPkt
	tests := []struct {
		name string
		ls   LinkState
		want uint32
	}{
		{"1000-rgmii", LinkState{Up: true, SpeedMbps: 1000, FullDuplex: true, Interface: RGMII}, MACCRGigaMode | MACCRFullDup},
		{"1000-rgmii-id", LinkState{Up: true, SpeedMbps: 1000, FullDuplex: true, Interface: RGMIIID}, MACCRGigaMode | MACCRFullDup},
		{"1000-rmii", LinkState{Up: true, SpeedMbps: 1000, FullDuplex: true, Interface: RMII}, MACCRFullDup},
		{"1000-gmii", LinkState{Up: true, SpeedMbps: 1000, Interface: GMII}, 0},
		{"100-full", LinkState{Up: true, SpeedMbps: 100, FullDuplex: true, Interface: RMII}, MACCRFastMode | MACCRFullDup},
		{"100-half", LinkState{Up: true, SpeedMbps: 100, Interface: RGMII}, MACCRFastMode},
		{"10-full", LinkState{Up: true, SpeedMbps: 10, FullDuplex: true, Interface: MII}, MACCRFullDup},
		{"10-half", LinkState{Up: true, SpeedMbps: 10, Interface: MII}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Start from every link bit set to check they are all cleared.
			got := ControlWord(other|maccrLinkMask, tt.ls)
			assert.Equal(t, other|tt.want, got)
		})
	}
}

func TestControlWordIdempotent(t *testing.T) {
	ls := LinkState{Up: true, SpeedMbps: 100, FullDuplex: true, Interface: RMII}
	once := ControlWord(maccrEnable, ls)
	assert.Equal(t, once, ControlWord(once, ls))
}

func TestParseInterface(t *testing.T) {
	for _, name := range []string{"mii", "gmii", "rmii", "rgmii", "rgmii-id", "rgmii-rxid", "rgmii-txid", "NC-SI"} {
		iface, err := ParseInterface(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, iface.String())
	}
	iface, err := ParseInterface("RGMII-ID")
	require.NoError(t, err)
	assert.Equal(t, RGMIIID, iface)
	iface, err = ParseInterface("ncsi")
	assert.ErrorIs(t, err, ErrInvalidInterface)
	assert.Zero(t, iface)
}

func TestSupportsGigabit(t *testing.T) {
	for i := MII; i <= NCSI; i++ {
		want := i == RGMII || i == RGMIIID || i == RGMIIRXID || i == RGMIITXID
		assert.Equal(t, want, i.SupportsGigabit(), i.String())
	}
}

func TestLinkStateFrom(t *testing.T) {
	ls := LinkStateFrom(phy.Link{Up: true, Mode: phy.Link1000FDX}, RGMIIID)
	assert.Equal(t, LinkState{Up: true, SpeedMbps: 1000, FullDuplex: true, Interface: RGMIIID}, ls)
	ls = LinkStateFrom(phy.Link{}, RMII)
	assert.False(t, ls.Up)
	assert.Zero(t, ls.SpeedMbps)
}

func TestRegisterFields(t *testing.T) {
	mac := [6]byte{0x02, 0x11, 0x22, 0x33, 0x44, 0x55}
	madr, ladr := macWords(mac)
	assert.Equal(t, uint32(0x0211), madr)
	assert.Equal(t, uint32(0x22334455), ladr)
	assert.Equal(t, mac, MACFromWords(madr, ladr))

	phycr := PHYCRCommand(7, 0x1d)
	assert.Equal(t, uint32(0x34|7<<16|0x1d<<21), phycr)
	addr, reg := PHYCRAddr(phycr | PHYCRMIIRd)
	assert.Equal(t, uint8(7), addr)
	assert.Equal(t, uint8(0x1d), reg)
	assert.Equal(t, uint16(0xbeef), phydataRead(0xbeef_1234))

	dblac := dblacDescSize(0x00022f72, 16)
	tx, rx := DBLACDescSize(dblac)
	assert.Equal(t, 16, tx)
	assert.Equal(t, 16, rx)
	assert.Equal(t, uint32(0xf72), dblac&0xfff, "low fields preserved")
	assert.Equal(t, uint32(0x44000), dblacDescSize(0xff000, 32))
}

func TestProfile(t *testing.T) {
	p, ok := ProfileByCompatible("aspeed,ast2500-mac")
	require.True(t, ok)
	assert.Equal(t, ProfileASPEED, p)
	assert.Equal(t, uint32(1<<30), p.Layout().EndOfRing)
	assert.False(t, p.SeparateMDIO())

	p, ok = ProfileByCompatible("faraday,ftgmac100")
	require.True(t, ok)
	assert.Equal(t, uint32(1<<15), p.Layout().EndOfRing)

	p, ok = ProfileByCompatible("aspeed,ast2600-mac")
	require.True(t, ok)
	assert.True(t, p.SeparateMDIO())
	assert.Equal(t, 16, p.Layout().DescSize)

	_, ok = ProfileByCompatible("snps,dwmac")
	assert.False(t, ok)
}

func TestCheckLayout(t *testing.T) {
	for p := ProfileFaraday; p <= ProfileAST2600; p++ {
		assert.NoError(t, checkLayout(p.Layout()), p.String())
	}
	err := checkLayout(dma.Layout{EndOfRing: 1 << 30, DescSize: 24})
	assert.ErrorIs(t, err, ErrDescSize)
	assert.ErrorIs(t, err, dma.ErrDescSize)
	err = checkLayout(dma.Layout{EndOfRing: dma.TxOwn, DescSize: 16})
	assert.ErrorIs(t, err, ErrDescSize)
	assert.ErrorIs(t, err, dma.ErrEndOfRing)
}
