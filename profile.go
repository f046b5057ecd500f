package ftgmac

import "github.com/soypat/ftgmac/dma"

// Profile identifies a hardware generation of the MAC. Profiles differ in the
// end-of-ring descriptor bit and in how the PHY is reached.
type Profile uint8

const (
	ProfileFaraday Profile = iota // faraday
	ProfileASPEED                 // aspeed
	ProfileAST2600                // ast2600
)

// descSize is the size of TX and RX descriptors of every profile.
const descSize = 16

var compatibles = [...]struct {
	name    string
	profile Profile
}{
	{"faraday,ftgmac100", ProfileFaraday},
	{"aspeed,ast2400-mac", ProfileASPEED},
	{"aspeed,ast2500-mac", ProfileASPEED},
	{"aspeed,ast2600-mac", ProfileAST2600},
}

// ProfileByCompatible returns the Profile of a device tree compatible string.
func ProfileByCompatible(compatible string) (Profile, bool) {
	for _, c := range compatibles {
		if c.name == compatible {
			return c.profile, true
		}
	}
	return 0, false
}

func (p Profile) valid() bool { return p <= ProfileAST2600 }

// Layout returns the descriptor layout shared by the TX and RX rings.
func (p Profile) Layout() dma.Layout {
	eor := uint32(1 << 15)
	if p == ProfileASPEED || p == ProfileAST2600 {
		eor = 1 << 30
	}
	return dma.Layout{EndOfRing: eor, DescSize: descSize}
}

// SeparateMDIO reports whether PHY registers are reached through a dedicated
// MDIO controller instead of the MAC's PHYCR and PHYDATA registers.
func (p Profile) SeparateMDIO() bool { return p == ProfileAST2600 }
