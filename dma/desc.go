package dma

import (
	"encoding/binary"
	"math/bits"
)

// Word 0 of transmit descriptors.
const (
	TxOwn    uint32 = 1 << 31 // TXDMA_OWN: descriptor owned by DMA engine.
	TxFirst  uint32 = 1 << 29 // FTS: first transmit segment.
	TxLast   uint32 = 1 << 28 // LTS: last transmit segment.
	TxCRCErr uint32 = 1 << 19 // CRC error reported on completion.
)

// Word 0 of receive descriptors.
const (
	RxReady       uint32 = 1 << 31 // RXPKT_RDY: packet ready, descriptor owned by software.
	RxFirst       uint32 = 1 << 29 // FRS: first receive segment.
	RxLast        uint32 = 1 << 28 // LRS: last receive segment.
	RxPauseFrame  uint32 = 1 << 25
	RxPauseOpcode uint32 = 1 << 24
	RxFIFOFull    uint32 = 1 << 23
	RxOddNibble   uint32 = 1 << 22 // RX_ODD_NB: odd nibble count.
	RxRunt        uint32 = 1 << 21 // RUNT: frame shorter than 64 bytes.
	RxTooLong     uint32 = 1 << 20 // FTL: frame too long.
	RxCRCErr      uint32 = 1 << 19
	RxErr         uint32 = 1 << 18 // RX_ERR: generic receive error.
	RxBroadcast   uint32 = 1 << 17
	RxMulticast   uint32 = 1 << 16

	// RxErrMask selects the status bits that cause a received frame to be dropped.
	RxErrMask = RxErr | RxCRCErr | RxTooLong | RxRunt | RxOddNibble
)

// LenMask selects the buffer size (TXBUF_SIZE) or received byte count (VDBC)
// field of word 0.
const LenMask uint32 = 0x3fff

// descBufWord is the index of the word holding the buffer device address.
const descBufWord = 3

// Desc is a view over the memory of one hardware descriptor. Words are
// little endian, as seen by the DMA engine.
type Desc struct {
	buf []byte
}

// Word returns descriptor word i.
func (d Desc) Word(i int) uint32 { return binary.LittleEndian.Uint32(d.buf[4*i:]) }

// SetWord sets descriptor word i.
func (d Desc) SetWord(i int, v uint32) { binary.LittleEndian.PutUint32(d.buf[4*i:], v) }

// Status returns word 0 which holds ownership, status, end-of-ring and length.
func (d Desc) Status() uint32 { return d.Word(0) }

// Length returns the length field of word 0.
func (d Desc) Length() int { return int(d.Word(0) & LenMask) }

// BufferAddr returns the device address of the buffer referenced by the descriptor.
func (d Desc) BufferAddr() DeviceAddr { return DeviceAddr(d.Word(descBufWord)) }

// SetBufferAddr sets the device address of the buffer referenced by the descriptor.
func (d Desc) SetBufferAddr(addr DeviceAddr) { d.SetWord(descBufWord, uint32(addr)) }

// Layout describes the descriptor format of a hardware generation.
type Layout struct {
	// EndOfRing is the word 0 bit that marks the last descriptor of a ring.
	EndOfRing uint32
	// DescSize is the size of one descriptor in bytes.
	DescSize int
}

// Validate checks the descriptor size is a non-zero multiple of 16 bytes and
// that EndOfRing is a single bit that does not collide with the length field
// or the ownership bit.
func (l Layout) Validate() error {
	if l.DescSize < 16 || l.DescSize%16 != 0 {
		return ErrDescSize
	}
	if bits.OnesCount32(l.EndOfRing) != 1 || l.EndOfRing&(LenMask|TxOwn) != 0 {
		return ErrEndOfRing
	}
	return nil
}
