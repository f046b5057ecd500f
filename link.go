package ftgmac

import (
	"log/slog"
	"strings"

	"github.com/soypat/ftgmac/phy"
)

// Interface is the electrical interface between MAC and PHY.
type Interface uint8

const (
	_         Interface = iota // non-initialized interface
	MII                        // mii
	GMII                       // gmii
	RMII                       // rmii
	RGMII                      // rgmii
	RGMIIID                    // rgmii-id
	RGMIIRXID                  // rgmii-rxid
	RGMIITXID                  // rgmii-txid
	NCSI                       // NC-SI
)

// ParseInterface parses a device tree phy-mode name such as "rgmii-id".
// Matching is case insensitive.
func ParseInterface(name string) (Interface, error) {
	for i := MII; i <= NCSI; i++ {
		if strings.EqualFold(name, i.String()) {
			return i, nil
		}
	}
	return 0, ErrInvalidInterface
}

func (i Interface) valid() bool { return i >= MII && i <= NCSI }

// SupportsGigabit reports whether the MAC may run at 1000Mbps over the
// interface. Only the RGMII family qualifies.
func (i Interface) SupportsGigabit() bool {
	return i >= RGMII && i <= RGMIITXID
}

// LinkState is the negotiated link as seen by the MAC.
type LinkState struct {
	Up         bool
	SpeedMbps  int
	FullDuplex bool
	Interface  Interface
}

// LinkStateFrom converts a PHY link into the MAC's view of it.
func LinkStateFrom(l phy.Link, iface Interface) LinkState {
	return LinkState{
		Up:         l.Up,
		SpeedMbps:  l.Mode.SpeedMbps(),
		FullDuplex: l.Mode.IsFullDuplex(),
		Interface:  iface,
	}
}

func (ls LinkState) attrs() slog.Attr {
	return slog.Group("link",
		slog.Bool("up", ls.Up),
		slog.Int("mbps", ls.SpeedMbps),
		slog.Bool("fdx", ls.FullDuplex),
		slog.String("if", ls.Interface.String()),
	)
}

// ControlWord returns maccr with the speed and duplex bits set for ls. Bits
// other than GIGA_MODE, FAST_MODE and FULLDUP are preserved. Gigabit mode is
// only selected when the interface supports it.
func ControlWord(maccr uint32, ls LinkState) uint32 {
	maccr &^= maccrLinkMask
	if ls.Interface.SupportsGigabit() && ls.SpeedMbps == 1000 {
		maccr |= MACCRGigaMode
	}
	if ls.SpeedMbps == 100 {
		maccr |= MACCRFastMode
	}
	if ls.FullDuplex {
		maccr |= MACCRFullDup
	}
	return maccr
}
