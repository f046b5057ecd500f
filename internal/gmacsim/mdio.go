package gmacsim

import (
	"github.com/soypat/ftgmac"
	"github.com/soypat/ftgmac/mmio"
)

var _ mmio.Bus = (*AspeedMDIO)(nil)

// AspeedMDIO simulates the AST2600 MDIO controller register window.
type AspeedMDIO struct {
	PHY  *PHY
	ctrl uint32
	data uint32
	// Stuck never completes transactions.
	Stuck bool
}

// NewAspeedMDIO returns an MDIO controller attached to p.
func NewAspeedMDIO(p *PHY) *AspeedMDIO {
	return &AspeedMDIO{PHY: p, data: ftgmac.AspeedMDIOIdle}
}

// Read32 implements mmio.Bus.
func (c *AspeedMDIO) Read32(off uintptr) uint32 {
	switch off {
	case ftgmac.AspeedMDIOCtrl:
		return c.ctrl
	case ftgmac.AspeedMDIOData:
		return c.data
	}
	return 0
}

// Write32 implements mmio.Bus.
func (c *AspeedMDIO) Write32(off uintptr, v uint32) {
	if off != ftgmac.AspeedMDIOCtrl {
		return
	}
	c.ctrl = v
	if v&ftgmac.AspeedMDIOFire == 0 || c.Stuck {
		return
	}
	addr := uint8(v>>21) & 0x1f
	reg := uint8(v>>16) & 0x1f
	switch v & (0b11 << 26) {
	case ftgmac.AspeedMDIOOpRead:
		c.data = ftgmac.AspeedMDIOIdle | uint32(c.PHY.Read(addr, reg))
	case ftgmac.AspeedMDIOOpWrite:
		c.PHY.Write(addr, reg, uint16(v))
	}
	c.ctrl &^= ftgmac.AspeedMDIOFire
}
