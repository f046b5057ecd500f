// Package gmacsim simulates an FTGMAC100 class MAC, its DMA engines and an
// attached PHY behind the mmio.Bus interface. Transmit DMA runs synchronously
// when the poll demand register is written. Received frames are injected with
// [MAC.Deliver] or looped back from transmit.
package gmacsim

import (
	"encoding/binary"
	"hash/crc32"

	"github.com/soypat/ftgmac"
	"github.com/soypat/ftgmac/dma"
	"github.com/soypat/ftgmac/mmio"
)

var _ mmio.Bus = (*MAC)(nil)

// MAC is a simulated MAC register window backed by a DMA arena.
type MAC struct {
	arena  *dma.Arena
	layout dma.Layout
	regs   mmio.Mem
	PHY    *PHY

	// StuckReset keeps MACCR.SW_RST set forever.
	StuckReset bool
	// StallTx ignores transmit poll demands, leaving descriptors hardware owned.
	StallTx bool
	// StuckMDIO never completes PHYCR transactions.
	StuckMDIO bool
	// Loopback delivers transmitted frames to the receive ring, as does
	// MACCR.LOOP_EN.
	Loopback bool
	// CorruptFCS damages the FCS of looped back frames.
	CorruptFCS bool
	// OnTransmit, if set, is called with each transmitted frame including FCS
	// when CRC_APD is enabled. The slice is only valid during the call.
	OnTransmit func(frame []byte)

	txIdx, rxIdx int
	// Transmitted holds copies of transmitted frames without FCS.
	Transmitted [][]byte
	// Missed counts frames dropped because the receive ring was full or
	// receive was disabled. Filtered counts frames rejected by the address
	// filter.
	Missed, Filtered int
	// Writes logs register writes in order.
	Writes []RegWrite
}

// RegWrite is one register write performed on the simulated MAC.
type RegWrite struct {
	Off   uintptr
	Value uint32
}

// New returns a MAC whose DMA engines access arena using the descriptor layout
// of the given hardware profile. The PHY is a gigabit PHY at address 0.
func New(arena *dma.Arena, profile ftgmac.Profile) *MAC {
	m := &MAC{arena: arena, layout: profile.Layout(), PHY: NewPHY(0)}
	m.hardReset()
	return m
}

func (m *MAC) hardReset() {
	m.regs = *mmio.NewMem(ftgmac.RegWindowSize)
	m.regs.Write32(ftgmac.RegRBSR, ftgmac.RBSRDefault)
	m.regs.Write32(ftgmac.RegDBLAC, 0x00022f72) // Hardware reset value.
	m.txIdx, m.rxIdx = 0, 0
}

// Read32 implements mmio.Bus.
func (m *MAC) Read32(off uintptr) uint32 { return m.regs.Read32(off) }

// Write32 implements mmio.Bus.
func (m *MAC) Write32(off uintptr, v uint32) {
	m.Writes = append(m.Writes, RegWrite{Off: off, Value: v})
	switch off {
	case ftgmac.RegMACCR:
		if v&ftgmac.MACCRSoftwareReset != 0 {
			if m.StuckReset {
				m.regs.Write32(off, v)
				return
			}
			m.hardReset()
			return
		}
	case ftgmac.RegTXPD:
		m.transmit()
		return
	case ftgmac.RegTXRBADR:
		m.txIdx = 0
	case ftgmac.RegRXRBADR:
		m.rxIdx = 0
	case ftgmac.RegPHYCR:
		v = m.mdio(v)
	}
	m.regs.Write32(off, v)
}

// MACCR returns the current MAC control register.
func (m *MAC) MACCR() uint32 { return m.regs.Read32(ftgmac.RegMACCR) }

// StationAddr returns the address programmed in MADR and LADR.
func (m *MAC) StationAddr() [6]byte {
	return ftgmac.MACFromWords(m.regs.Read32(ftgmac.RegMADR), m.regs.Read32(ftgmac.RegLADR))
}

// WritesTo returns the values written to the register at off, in order.
func (m *MAC) WritesTo(off uintptr) []uint32 {
	var vals []uint32
	for _, w := range m.Writes {
		if w.Off == off {
			vals = append(vals, w.Value)
		}
	}
	return vals
}

func (m *MAC) mdio(phycr uint32) uint32 {
	if m.StuckMDIO {
		return phycr
	}
	addr, reg := ftgmac.PHYCRAddr(phycr)
	switch {
	case phycr&ftgmac.PHYCRMIIRd != 0:
		data := m.PHY.Read(addr, reg)
		m.regs.Write32(ftgmac.RegPHYDATA, uint32(data)<<16)
		phycr &^= ftgmac.PHYCRMIIRd
	case phycr&ftgmac.PHYCRMIIWr != 0:
		m.PHY.Write(addr, reg, uint16(m.regs.Read32(ftgmac.RegPHYDATA)))
		phycr &^= ftgmac.PHYCRMIIWr
	}
	return phycr
}

// desc returns the 16 bytes of descriptor i of the ring at base.
func (m *MAC) desc(base uint32, i int) []byte {
	r, ok := m.arena.Lookup(dma.DeviceAddr(base)+dma.DeviceAddr(i*m.layout.DescSize), m.layout.DescSize)
	if !ok {
		panic("gmacsim: descriptor outside DMA arena")
	}
	return r.Bytes()
}

func (m *MAC) advance(i int, w0 uint32) int {
	if w0&m.layout.EndOfRing != 0 {
		return 0
	}
	return i + 1
}

func (m *MAC) transmit() {
	maccr := m.MACCR()
	if m.StallTx || maccr&ftgmac.MACCRTxDMAEn == 0 {
		return
	}
	base := m.regs.Read32(ftgmac.RegTXRBADR)
	for {
		d := m.desc(base, m.txIdx)
		w0 := binary.LittleEndian.Uint32(d)
		if w0&dma.TxOwn == 0 {
			return
		}
		n := int(w0 & dma.LenMask)
		buf, ok := m.arena.Lookup(dma.DeviceAddr(binary.LittleEndian.Uint32(d[12:])), n)
		if !ok {
			panic("gmacsim: transmit buffer outside DMA arena")
		}
		frame := append([]byte(nil), buf.Bytes()...)
		m.Transmitted = append(m.Transmitted, frame)
		wire := frame
		if maccr&ftgmac.MACCRCRCApd != 0 {
			wire = binary.LittleEndian.AppendUint32(append([]byte(nil), frame...), crc32.ChecksumIEEE(frame))
		}
		if m.OnTransmit != nil {
			m.OnTransmit(wire)
		}
		binary.LittleEndian.PutUint32(d, w0&^dma.TxOwn)
		m.txIdx = m.advance(m.txIdx, w0)
		if m.Loopback || maccr&ftgmac.MACCRLoopEn != 0 {
			m.loopback(wire, maccr&ftgmac.MACCRCRCApd != 0)
		}
	}
}

func (m *MAC) loopback(wire []byte, hasFCS bool) {
	if !hasFCS {
		m.Deliver(wire, 0)
		return
	}
	if m.CorruptFCS {
		wire[len(wire)-1] ^= 0xff
	}
	m.DeliverWire(wire)
}

// DeliverWire receives a frame that ends in an FCS. A frame whose FCS does
// not match is delivered with the CRC error status.
func (m *MAC) DeliverWire(wire []byte) bool {
	if len(wire) < 4 {
		return m.Deliver(wire, dma.RxRunt|dma.RxCRCErr)
	}
	frame := wire[:len(wire)-4]
	var status uint32
	if crc32.ChecksumIEEE(frame) != binary.LittleEndian.Uint32(wire[len(frame):]) {
		status |= dma.RxCRCErr
	}
	return m.Deliver(frame, status)
}

// Deliver receives frame into the next receive descriptor with the extra
// status bits set. Frames are subject to the address filter configured in
// MACCR. It returns false if the frame was filtered or missed.
func (m *MAC) Deliver(frame []byte, status uint32) bool {
	maccr := m.MACCR()
	if maccr&ftgmac.MACCRRxDMAEn == 0 || maccr&ftgmac.MACCRRxMACEn == 0 {
		m.Missed++
		return false
	}
	if !m.accept(frame, maccr) {
		m.Filtered++
		return false
	}
	d := m.desc(m.regs.Read32(ftgmac.RegRXRBADR), m.rxIdx)
	w0 := binary.LittleEndian.Uint32(d)
	if w0&dma.RxReady != 0 {
		m.Missed++
		return false
	}
	n := len(frame)
	if bufSize := int(m.regs.Read32(ftgmac.RegRBSR)); n > bufSize {
		status |= dma.RxTooLong
		n = bufSize
	}
	if len(frame) < dma.MinFrameLen {
		status |= dma.RxRunt
	}
	if len(frame) >= 6 && frame[0]&1 != 0 {
		if isBroadcast(frame) {
			status |= dma.RxBroadcast
		} else {
			status |= dma.RxMulticast
		}
	}
	buf, ok := m.arena.Lookup(dma.DeviceAddr(binary.LittleEndian.Uint32(d[12:])), n)
	if !ok {
		panic("gmacsim: receive buffer outside DMA arena")
	}
	copy(buf.Bytes(), frame[:n])
	end := w0 & m.layout.EndOfRing
	binary.LittleEndian.PutUint32(d, end|dma.RxReady|dma.RxFirst|dma.RxLast|status|uint32(n))
	m.rxIdx = m.advance(m.rxIdx, w0)
	return true
}

func (m *MAC) accept(frame []byte, maccr uint32) bool {
	switch {
	case maccr&ftgmac.MACCRRxAll != 0:
		return true
	case len(frame) < 6:
		return false
	case isBroadcast(frame):
		return maccr&ftgmac.MACCRRxBroadPkt != 0
	case frame[0]&1 != 0:
		return maccr&ftgmac.MACCRRxMultiPkt != 0
	}
	return [6]byte(frame[:6]) == m.StationAddr()
}

func isBroadcast(frame []byte) bool {
	return [6]byte(frame[:6]) == [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}
