package gmacsim

import "github.com/soypat/ftgmac/phy"

// PHY is a Clause 22 register model of a 10/100/1000BASE-T transceiver with
// a link partner that completes auto-negotiation instantly.
type PHY struct {
	Addr uint8
	regs [32]uint16
	// NoPartner keeps the link down.
	NoPartner bool
	// Partner and Partner1000 are the link partner abilities.
	Partner     phy.ANAR
	Partner1000 phy.STAT1000
	// Reads and Writes count register accesses.
	Reads, Writes int
}

// NewPHY returns a gigabit PHY at addr with a gigabit capable link partner.
func NewPHY(addr uint8) *PHY {
	p := &PHY{
		Addr:        addr,
		Partner:     phy.NewANAR().With10M().With100M() | phy.ANARAck,
		Partner1000: phy.STAT1000PartnerFull | phy.STAT1000PartnerHalf,
	}
	p.reset()
	return p
}

func (p *PHY) reset() {
	p.regs = [32]uint16{}
	p.regs[phy.AddrBMCR] = uint16(phy.BMCRANEnable)
	p.regs[phy.AddrBMSR] = uint16(phy.BMSRExtCap | phy.BMSRANCap | phy.BMSRExtStatus |
		phy.BMSR10Half | phy.BMSR10Full | phy.BMSR100Half | phy.BMSR100Full)
	p.regs[2] = 0x001c // Realtek OUI.
	p.regs[3] = 0xc916
	p.regs[phy.AddrANAR] = uint16(phy.NewANAR().With10M().With100M())
	p.regs[phy.AddrCTRL1000] = uint16(phy.CTRL1000AdvMask)
	p.regs[phy.AddrESTATUS] = uint16(phy.ESTATUS1000TFull | phy.ESTATUS1000THalf)
}

// Reg returns the raw value of register reg.
func (p *PHY) Reg(reg uint8) uint16 { return p.regs[reg&31] }

// Read returns register reg of the PHY at addr. Absent PHYs read as all ones.
func (p *PHY) Read(addr, reg uint8) uint16 {
	if addr != p.Addr {
		return 0xffff
	}
	p.Reads++
	return p.regs[reg&31]
}

// Write writes register reg of the PHY at addr.
func (p *PHY) Write(addr, reg uint8, v uint16) {
	if addr != p.Addr {
		return
	}
	p.Writes++
	reg &= 31
	switch reg {
	case phy.AddrBMCR:
		p.writeBMCR(phy.BMCR(v))
	case phy.AddrBMSR, phy.AddrANLPAR, phy.AddrSTAT1000, phy.AddrESTATUS:
		// Read only.
	default:
		p.regs[reg] = v
	}
}

func (p *PHY) writeBMCR(ctl phy.BMCR) {
	if ctl&phy.BMCRReset != 0 {
		p.reset()
		return
	}
	bmsr := phy.BMSR(p.regs[phy.AddrBMSR]) &^ (phy.BMSRLinkStatus | phy.BMSRANComplete)
	switch {
	case ctl&phy.BMCRPowerDown != 0 || p.NoPartner:
	case ctl&phy.BMCRANRestart != 0:
		ctl &^= phy.BMCRANRestart
		bmsr |= phy.BMSRLinkStatus | phy.BMSRANComplete
		p.regs[phy.AddrANLPAR] = uint16(p.Partner)
		p.regs[phy.AddrSTAT1000] = uint16(p.Partner1000)
	case ctl&phy.BMCRANEnable == 0:
		bmsr |= phy.BMSRLinkStatus
	default:
		// Auto-negotiation enabled but not restarted keeps the previous link.
		bmsr |= phy.BMSR(p.regs[phy.AddrBMSR]) & (phy.BMSRLinkStatus | phy.BMSRANComplete)
	}
	p.regs[phy.AddrBMCR] = uint16(ctl)
	p.regs[phy.AddrBMSR] = uint16(bmsr)
}
