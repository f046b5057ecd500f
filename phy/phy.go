// Package phy provides Ethernet PHY management via MDIO.
// It supports IEEE 802.3 Clause 22 register access for configuring and
// monitoring 10/100/1000BASE-T transceivers attached to a MAC.
package phy

// Add more stringers in linecomment mode by adding them to type flag (comma separated).
//go:generate stringer -type=LinkMode,errGeneric -linecomment -output=phy_stringers.go

import (
	"time"

	"github.com/soypat/ftgmac/internal"
)

// MDIOBus is a HAL for MDIO bus access supporting both Clause 22 and Clause 45 devices.
// Implementations should use devaddr to select the framing:
//   - devaddr=0: Clause 22 framing (devaddr ignored in transaction)
//   - devaddr>=1: Clause 45 framing (PMA/PMD=1, WIS=2, PCS=3, PHY XS=4, DTE XS=5, AN=7)
//
// Register address range: Clause 22 uses 0-31, Clause 45 uses 0-65535.
// Implementations that only frame Clause 22 return [ErrUnsupported] for devAddr != 0.
type MDIOBus interface {
	// Read reads a 16-bit register from the PHY.
	Read(phyAddr, devAddr uint8, regAddr uint16) (value uint16, err error)
	// Write writes a 16-bit value to a PHY register.
	Write(phyAddr, devAddr uint8, regAddr, value uint16) error
}

// Link is the outcome of bringing up a PHY.
type Link struct {
	Up   bool
	Mode LinkMode
}

// FindClause22PHYs finds all regular non-clause45 PHYs on the MDIO bus and writes them to dst.
// FindClause22PHYs returns error only if unable to find any PHY.
func FindClause22PHYs(mdio MDIOBus, dst []uint8) (n int, err error) {
	const maxAddr = 31
	if len(dst) < 32 {
		return -1, ErrShortBuffer
	}
	for addr := uint8(0); addr <= maxAddr; addr++ {
		val, err := mdio.Read(addr, 0, AddrBMSR)
		if err != nil {
			continue
		}
		// Basic status has some bits that must be zero and one, so if this check fails then we know its a bad address.
		if val != 0xffff && val != 0x0000 {
			dst[n] = addr
			n++
		}
	}
	if n <= 0 {
		err = ErrNoPHY
	}
	return n, err
}

type Device struct {
	mdio    MDIOBus
	phyaddr uint8
	// isClause45 is 0 for clause 22 devices and 1 for clause45 devices.
	isClause45 uint8
}

// ConfigureAs22 resets all state of device to be used as a Clause22 device. Does not do a software reset.
func (phy *Device) ConfigureAs22(mdio MDIOBus, phyAddr uint8) error {
	if phyAddr > 31 {
		return ErrInvalidAddr
	} else if mdio == nil {
		return ErrInvalidConfig
	}
	phy.mdio = mdio
	phy.phyaddr = phyAddr
	phy.isClause45 = 0
	return nil
}

// IsClause45 returns true if the device uses Clause 45 MDIO addressing (extended register access).
func (phy *Device) IsClause45() bool {
	return phy.isClause45 == 1
}

// PHYAddr returns the PHY address on the MDIO bus (0-31).
func (phy *Device) PHYAddr() uint8 {
	return phy.phyaddr
}

// BasicControl reads the Basic Mode Control Register (BMCR, register 0).
func (phy *Device) BasicControl() (BMCR, error) {
	ctl, err := phy.rread(AddrBMCR)
	return BMCR(ctl), err
}

// BasicStatus reads the Basic Mode Status Register (BMSR, register 1).
func (phy *Device) BasicStatus() (BMSR, error) {
	stat, err := phy.rread(AddrBMSR)
	return BMSR(stat), err
}

// EnableAutoNegotiation enables or disables PHY auto-negotiation and verifies the change took effect.
func (phy *Device) EnableAutoNegotiation(b bool) error {
	ctl, err := phy.BasicControl()
	if err != nil {
		return err
	}
	if b {
		ctl |= BMCRANEnable
	} else {
		ctl &^= BMCRANEnable
	}
	err = phy.rwrite(AddrBMCR, uint16(ctl))
	if err != nil {
		return err
	}
	ctl, err = phy.BasicControl()
	if err != nil {
		return err
	} else if (ctl&BMCRANEnable != 0) != b {
		return ErrVerify
	}
	return nil
}

// ID1 reads the PHY Identifier 1 register (register 2), containing bits 3-18 of the OUI.
func (phy *Device) ID1() (uint16, error) {
	return phy.rread(regPhyId1)
}

// ResetPHY performs a software reset and waits for completion.
// Returns an error on IO error on MDIO bus or [ErrResetTimeout].
func (phy *Device) ResetPHY() (err error) {
	err = phy.rwrite(AddrBMCR, uint16(BMCRReset))
	if err != nil {
		return err
	}
	// Reset bit self-clears. IEEE 802.3 allows up to 500ms.
	const resetTimeout = 500 * time.Millisecond
	done := internal.PollUntil(resetTimeout, internal.BackoffCriticalPath, func() bool {
		var ctl BMCR
		ctl, err = phy.BasicControl()
		return err == nil && ctl&BMCRReset == 0
	})
	if done {
		return nil
	} else if err != nil {
		return err
	}
	return ErrResetTimeout
}

// SetupForced disables auto-negotiation and forces a specific link mode.
//
// Inspired by drivers/net/phy/phy_device.c
func (phy *Device) SetupForced(mode LinkMode) error {
	var ctl BMCR
	switch mode.SpeedMbps() {
	case 1000:
		ctl |= BMCRSpeed1000
	case 100:
		ctl |= BMCRSpeed100
	case 10:
		// No speed bits = 10Mbps
	default:
		return ErrUnsupported
	}
	if mode.IsFullDuplex() {
		ctl |= BMCRFullDuplex
	}
	// Note: BMCRANEnable is NOT set, disabling auto-negotiation
	return phy.rwrite(AddrBMCR, uint16(ctl))
}

// Advertisement reads the current Auto-Negotiation Advertisement Register.
func (phy *Device) Advertisement() (ANAR, error) {
	val, err := phy.rread(AddrANAR)
	return ANAR(val), err
}

// SetAdvertisement writes to the Auto-Negotiation Advertisement Register.
// Does NOT restart auto-negotiation; call RestartAutoNeg() after if needed.
func (phy *Device) SetAdvertisement(ad ANAR) error {
	return phy.rwrite(AddrANAR, uint16(ad))
}

// LinkPartnerAdvertisement reads what the link partner is advertising (ANLPAR).
func (phy *Device) LinkPartnerAdvertisement() (ANAR, error) {
	val, err := phy.rread(AddrANLPAR)
	return ANAR(val), err
}

// GigabitCapable reports whether the PHY implements the 1000BASE-T registers,
// as advertised through the extended status register.
func (phy *Device) GigabitCapable() (bool, error) {
	status, err := phy.BasicStatus()
	if err != nil || status&BMSRExtStatus == 0 {
		return false, err
	}
	est, err := phy.rread(AddrESTATUS)
	return ESTATUS(est)&(ESTATUS1000TFull|ESTATUS1000THalf) != 0, err
}

// SetMaxSpeed trims the 10/100 and 1000BASE-T advertisements to speeds at or
// below maxMbps. A non-positive maxMbps leaves the advertisement untouched.
// Does NOT restart auto-negotiation.
func (phy *Device) SetMaxSpeed(maxMbps int) error {
	if maxMbps <= 0 {
		return nil
	} else if maxMbps < 10 {
		return ErrUnsupported
	}
	anar, err := phy.Advertisement()
	if err != nil {
		return err
	}
	err = phy.SetAdvertisement(anar.WithMaxSpeed(maxMbps))
	if err != nil {
		return err
	}
	giga, err := phy.GigabitCapable()
	if err != nil || !giga {
		return err
	}
	ctl, err := phy.rread(AddrCTRL1000)
	if err != nil {
		return err
	}
	ctl1000 := CTRL1000(ctl) &^ CTRL1000AdvMask
	if maxMbps >= 1000 {
		ctl1000 |= CTRL1000AdvMask
	}
	return phy.rwrite(AddrCTRL1000, uint16(ctl1000))
}

// RestartAutoNeg enables auto-negotiation and restarts it.
func (phy *Device) RestartAutoNeg() error {
	ctl, err := phy.BasicControl()
	if err != nil {
		return err
	}
	ctl |= BMCRANEnable | BMCRANRestart
	return phy.rwrite(AddrBMCR, uint16(ctl))
}

// IsLinkUp returns true if link is established.
func (phy *Device) IsLinkUp() (bool, error) {
	status, err := phy.BasicStatus()
	if err != nil {
		return false, err
	}
	return status&BMSRLinkStatus != 0, nil
}

// WaitForLinkWithDeadline waits for link to establish until the deadline.
// If auto-negotiation is enabled (BMCR.ANEnable=1), waits for AN to complete first.
// Returns true if link is up, false if deadline exceeded.
//
// Per IEEE 802.3:
//   - BMSR.LinkStatus is latched-low, so first read clears any previous fault
//   - BMSR.ANComplete must be set before link parameters are valid (when AN enabled)
//   - link_fail_inhibit_timer (50-75ms) delays link indication after AN completes
func (phy *Device) WaitForLinkWithDeadline(deadline time.Time) (bool, error) {
	// Early exit: link impossible if PHY isolated or powered down.
	ctl, err := phy.BasicControl()
	if err != nil {
		return false, err
	} else if ctl&BMCRIsolate != 0 {
		return false, ErrIsolated
	} else if ctl&BMCRPowerDown != 0 {
		return false, ErrPoweredDown
	}

	// First read clears latched-low bits (LinkStatus, ANComplete).
	_, _ = phy.BasicStatus()
	anEnabled := ctl&BMCRANEnable != 0
	up := internal.PollUntil(time.Until(deadline), internal.BackoffCriticalPath, func() bool {
		var status BMSR
		status, err = phy.BasicStatus()
		if err != nil {
			return true
		}
		// No point checking link status until AN is done.
		return (!anEnabled || status.AutoNegotiationComplete()) && status.LinkUp()
	})
	if err != nil {
		return false, err
	}
	return up, nil
}

// NegotiatedLink returns the auto-negotiated link mode using standard MII registers.
// 1000BASE-T is resolved first from CTRL1000 and STAT1000 if the PHY is
// gigabit capable, then 10/100 from ANAR AND ANLPAR.
// Priority order per IEEE 802.3 Annex 28B.3.
func (phy *Device) NegotiatedLink() (LinkMode, error) {
	status, err := phy.BasicStatus()
	if err != nil {
		return LinkDown, err
	}
	if status&BMSRANComplete == 0 {
		return LinkDown, ErrANIncomplete
	}

	giga, err := phy.GigabitCapable()
	if err != nil {
		return LinkDown, err
	}
	if giga {
		ctl, err := phy.rread(AddrCTRL1000)
		if err != nil {
			return LinkDown, err
		}
		stat, err := phy.rread(AddrSTAT1000)
		if err != nil {
			return LinkDown, err
		}
		common := STAT1000(stat).Common(CTRL1000(ctl))
		if common&CTRL1000AdvFull != 0 {
			return Link1000FDX, nil
		} else if common&CTRL1000AdvHalf != 0 {
			return Link1000HDX, nil
		}
	}

	anar, err := phy.Advertisement()
	if err != nil {
		return LinkDown, err
	}
	anlpar, err := phy.LinkPartnerAdvertisement()
	if err != nil {
		return LinkDown, err
	}
	// Common capabilities = what both sides support
	common := anar & anlpar
	return common.LinkMode(), nil
}

// Startup brings the link up: it powers the PHY up if needed, restarts
// auto-negotiation when enabled, waits for link until deadline and resolves
// the link mode. A link that does not come up in time is returned as Link{}
// with a nil error.
func (phy *Device) Startup(deadline time.Time) (Link, error) {
	ctl, err := phy.BasicControl()
	if err != nil {
		return Link{}, err
	}
	if ctl&BMCRPowerDown != 0 {
		ctl &^= BMCRPowerDown
		err = phy.rwrite(AddrBMCR, uint16(ctl))
		if err != nil {
			return Link{}, err
		}
	}
	autoneg := ctl&BMCRANEnable != 0
	if autoneg {
		err = phy.RestartAutoNeg()
		if err != nil {
			return Link{}, err
		}
	}
	up, err := phy.WaitForLinkWithDeadline(deadline)
	if err != nil || !up {
		return Link{}, err
	}
	mode := ctl.LinkMode()
	if autoneg {
		mode, err = phy.NegotiatedLink()
		if err != nil {
			return Link{}, err
		}
	}
	return Link{Up: mode != LinkDown, Mode: mode}, nil
}

// Shutdown powers the PHY down.
func (phy *Device) Shutdown() error {
	ctl, err := phy.BasicControl()
	if err != nil {
		return err
	}
	return phy.rwrite(AddrBMCR, uint16(ctl|BMCRPowerDown))
}

func (phy *Device) rread(regaddr uint16) (uint16, error) {
	return phy.mdio.Read(phy.phyaddr, phy.isClause45, regaddr)
}
func (phy *Device) rwrite(regaddr, value uint16) error {
	return phy.mdio.Write(phy.phyaddr, phy.isClause45, regaddr, value)
}

// Fixed is a link that is not negotiated, such as the sideband interface to
// a management controller (NC-SI). It is always up in its configured mode.
type Fixed struct {
	// Mode is the link mode reported by Startup. Zero means 100M full duplex.
	Mode LinkMode
}

// Startup reports the fixed link as up.
func (f Fixed) Startup(time.Time) (Link, error) {
	mode := f.Mode
	if mode == LinkDown {
		mode = Link100FDX
	}
	return Link{Up: true, Mode: mode}, nil
}

// Shutdown is a no-op.
func (f Fixed) Shutdown() error { return nil }
