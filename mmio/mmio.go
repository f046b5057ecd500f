// Package mmio provides 32-bit memory mapped register access for device drivers
// together with bounded polling helpers. Register offsets are byte offsets from
// the start of a device's register window.
package mmio

import (
	"errors"
	"time"

	"github.com/soypat/ftgmac/internal"
)

// ErrTimeout is returned by [WaitBits] when a register does not reach the
// expected value before the deadline.
var ErrTimeout = errors.New("mmio: register wait timeout")

// Bus is a HAL for a device register window.
// Implementations must perform exactly one bus access per call.
type Bus interface {
	// Read32 reads the 32-bit register at byte offset off.
	Read32(off uintptr) uint32
	// Write32 writes v to the 32-bit register at byte offset off.
	Write32(off uintptr, v uint32)
}

// SetBits sets bits in the register at off with a single write.
func SetBits(b Bus, off uintptr, bits uint32) {
	b.Write32(off, b.Read32(off)|bits)
}

// ClearBits clears bits in the register at off with a single write.
func ClearBits(b Bus, off uintptr, bits uint32) {
	b.Write32(off, b.Read32(off)&^bits)
}

// ReplaceBits replaces the bits selected by mask with value in a single write.
// Bits outside mask are preserved.
func ReplaceBits(b Bus, off uintptr, value, mask uint32) {
	b.Write32(off, b.Read32(off)&^mask|value&mask)
}

// WaitBits polls the register at off until reg&mask == want or timeout elapses.
// It returns the last value read and [ErrTimeout] on expiry.
func WaitBits(b Bus, off uintptr, mask, want uint32, timeout time.Duration) (uint32, error) {
	var v uint32
	ok := internal.PollUntil(timeout, internal.BackoffRegister, func() bool {
		v = b.Read32(off)
		return v&mask == want
	})
	if !ok {
		return v, ErrTimeout
	}
	return v, nil
}

// Mem is a Bus backed by plain memory. Useful as a register file in tests and
// simulations. The zero value is ready for use and grows on first write.
type Mem struct {
	regs []uint32
}

// NewMem returns a Mem sized for a register window of size bytes.
func NewMem(size int) *Mem {
	return &Mem{regs: make([]uint32, size/4)}
}

func (m *Mem) Read32(off uintptr) uint32 {
	i := int(off / 4)
	if off%4 != 0 {
		panic("mmio: unaligned register access")
	} else if i >= len(m.regs) {
		return 0
	}
	return m.regs[i]
}

func (m *Mem) Write32(off uintptr, v uint32) {
	i := int(off / 4)
	if off%4 != 0 {
		panic("mmio: unaligned register access")
	}
	if i >= len(m.regs) {
		m.regs = append(m.regs, make([]uint32, i+1-len(m.regs))...)
	}
	m.regs[i] = v
}
