package dma

import "math/bits"

// DeviceAddr is an address in the DMA engine's view of memory. It is never a
// CPU pointer and must only be produced by [Region.Addr].
type DeviceAddr uint32

// Region is a span of memory that is reachable by both the CPU and the DMA
// engine. It pairs the CPU view with the device address of its first byte.
type Region struct {
	buf  []byte
	addr DeviceAddr
}

// NewRegion returns a Region whose first byte is seen by the device at addr.
func NewRegion(buf []byte, addr DeviceAddr) Region {
	if uint64(addr)+uint64(len(buf)) > 1<<32 {
		panic("dma: region exceeds 32-bit device address space")
	}
	return Region{buf: buf, addr: addr}
}

// Bytes returns the CPU view of the region.
func (r Region) Bytes() []byte { return r.buf }

// Len returns the size of the region in bytes.
func (r Region) Len() int { return len(r.buf) }

// Addr translates a byte offset within the region into a device address.
// This is the only place CPU offsets become device addresses.
func (r Region) Addr(off int) DeviceAddr {
	if off < 0 || off > len(r.buf) {
		panic("dma: offset out of region")
	}
	return r.addr + DeviceAddr(off)
}

// Sub returns the n byte sub-region starting at off.
func (r Region) Sub(off, n int) Region {
	return Region{buf: r.buf[off : off+n : off+n], addr: r.Addr(off)}
}

// Contains reports whether the n bytes at addr lie within the region.
func (r Region) Contains(addr DeviceAddr, n int) bool {
	return addr >= r.addr && uint64(addr-r.addr)+uint64(n) <= uint64(len(r.buf))
}

// Arena carves aligned Regions out of a single DMA window. It never frees:
// drivers allocate their rings and buffers once at construction.
type Arena struct {
	mem  Region
	next int
}

// NewArena returns an Arena over buf whose first byte the device sees at base.
func NewArena(buf []byte, base DeviceAddr) *Arena {
	return &Arena{mem: NewRegion(buf, base)}
}

// Alloc returns a zeroed n byte Region whose device address is a multiple of
// align, which must be a power of two.
func (a *Arena) Alloc(n, align int) (Region, error) {
	if align <= 0 || bits.OnesCount(uint(align)) != 1 {
		panic("dma: alignment must be a power of two")
	} else if n <= 0 {
		panic("dma: non-positive allocation")
	}
	addr := uint64(a.mem.addr) + uint64(a.next)
	pad := int((uint64(align) - addr%uint64(align)) % uint64(align))
	off := a.next + pad
	if off+n > a.mem.Len() {
		return Region{}, ErrArenaFull
	}
	a.next = off + n
	r := a.mem.Sub(off, n)
	clear(r.buf)
	return r, nil
}

// Lookup resolves n bytes at a device address back into a Region of the arena.
// Intended for simulated DMA engines.
func (a *Arena) Lookup(addr DeviceAddr, n int) (Region, bool) {
	if !a.mem.Contains(addr, n) {
		return Region{}, false
	}
	return a.mem.Sub(int(addr-a.mem.addr), n), true
}

// Free returns the number of bytes not yet allocated, ignoring alignment.
func (a *Arena) Free() int { return a.mem.Len() - a.next }
