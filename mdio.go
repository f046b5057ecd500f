package ftgmac

import (
	"fmt"
	"time"

	"github.com/soypat/ftgmac/mmio"
	"github.com/soypat/ftgmac/phy"
)

// MDIOTimeout bounds a single MDIO read or write.
const MDIOTimeout = 10 * time.Millisecond

var (
	_ phy.MDIOBus = (*MDIO)(nil)
	_ phy.MDIOBus = (*AspeedMDIO)(nil)
)

// MDIO is the MDIO master built into the MAC, driven through the PHYCR and
// PHYDATA registers. Only Clause 22 framing is supported.
type MDIO struct {
	bus mmio.Bus
}

// NewMDIO returns the MDIO master of the MAC whose registers are on bus.
func NewMDIO(bus mmio.Bus) *MDIO { return &MDIO{bus: bus} }

// Read reads PHY register regAddr. A stuck transaction returns [ErrMDIOTimeout].
func (m *MDIO) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	if err := checkC22(phyAddr, devAddr, regAddr); err != nil {
		return 0, err
	}
	m.bus.Write32(RegPHYCR, PHYCRCommand(phyAddr, uint8(regAddr))|PHYCRMIIRd)
	_, err := mmio.WaitBits(m.bus, RegPHYCR, PHYCRMIIRd, 0, MDIOTimeout)
	if err != nil {
		return 0, fmt.Errorf("mdio read phy %d reg %#x: %w", phyAddr, regAddr, ErrMDIOTimeout)
	}
	return phydataRead(m.bus.Read32(RegPHYDATA)), nil
}

// Write writes value to PHY register regAddr.
func (m *MDIO) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	if err := checkC22(phyAddr, devAddr, regAddr); err != nil {
		return err
	}
	m.bus.Write32(RegPHYDATA, uint32(value))
	m.bus.Write32(RegPHYCR, PHYCRCommand(phyAddr, uint8(regAddr))|PHYCRMIIWr)
	_, err := mmio.WaitBits(m.bus, RegPHYCR, PHYCRMIIWr, 0, MDIOTimeout)
	if err != nil {
		return fmt.Errorf("mdio write phy %d reg %#x: %w", phyAddr, regAddr, ErrMDIOTimeout)
	}
	return nil
}

// Registers of the dedicated MDIO controller found next to AST2600 MACs.
const (
	AspeedMDIOCtrl uintptr = 0x0
	AspeedMDIOData uintptr = 0x4

	AspeedMDIOFire    uint32 = 1 << 31
	AspeedMDIOStC22   uint32 = 1 << 28
	AspeedMDIOOpWrite uint32 = 0b01 << 26
	AspeedMDIOOpRead  uint32 = 0b10 << 26
	AspeedMDIOIdle    uint32 = 1 << 16
)

// AspeedMDIOCommand returns the control word of a Clause 22 transaction
// without the FIRE bit.
func AspeedMDIOCommand(op uint32, phyAddr, reg uint8, data uint16) uint32 {
	return AspeedMDIOStC22 | op | uint32(phyAddr&0x1f)<<21 | uint32(reg&0x1f)<<16 | uint32(data)
}

// AspeedMDIO drives the AST2600 MDIO controller. Only Clause 22 framing is
// supported.
type AspeedMDIO struct {
	bus mmio.Bus
}

// NewAspeedMDIO returns the MDIO controller whose registers are on bus.
func NewAspeedMDIO(bus mmio.Bus) *AspeedMDIO { return &AspeedMDIO{bus: bus} }

// Read reads PHY register regAddr. A stuck transaction returns [ErrMDIOTimeout].
func (m *AspeedMDIO) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	if err := checkC22(phyAddr, devAddr, regAddr); err != nil {
		return 0, err
	}
	m.bus.Write32(AspeedMDIOCtrl, AspeedMDIOFire|AspeedMDIOCommand(AspeedMDIOOpRead, phyAddr, uint8(regAddr), 0))
	_, err := mmio.WaitBits(m.bus, AspeedMDIOCtrl, AspeedMDIOFire, 0, MDIOTimeout)
	if err != nil {
		return 0, fmt.Errorf("aspeed mdio read phy %d reg %#x: %w", phyAddr, regAddr, ErrMDIOTimeout)
	}
	data, err := mmio.WaitBits(m.bus, AspeedMDIOData, AspeedMDIOIdle, AspeedMDIOIdle, MDIOTimeout)
	if err != nil {
		return 0, fmt.Errorf("aspeed mdio read phy %d reg %#x: %w", phyAddr, regAddr, ErrMDIOTimeout)
	}
	return uint16(data), nil
}

// Write writes value to PHY register regAddr.
func (m *AspeedMDIO) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	if err := checkC22(phyAddr, devAddr, regAddr); err != nil {
		return err
	}
	m.bus.Write32(AspeedMDIOCtrl, AspeedMDIOFire|AspeedMDIOCommand(AspeedMDIOOpWrite, phyAddr, uint8(regAddr), value))
	_, err := mmio.WaitBits(m.bus, AspeedMDIOCtrl, AspeedMDIOFire, 0, MDIOTimeout)
	if err != nil {
		return fmt.Errorf("aspeed mdio write phy %d reg %#x: %w", phyAddr, regAddr, ErrMDIOTimeout)
	}
	return nil
}

func checkC22(phyAddr, devAddr uint8, regAddr uint16) error {
	if devAddr != 0 {
		return phy.ErrUnsupported
	} else if phyAddr > 31 || regAddr > 31 {
		return phy.ErrInvalidAddr
	}
	return nil
}
