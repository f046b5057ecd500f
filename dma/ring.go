package dma

import "math/bits"

// Ring is a fixed capacity circular array of hardware descriptors with a
// cursor pointing at the next slot software will use. The driver owns the
// ring memory for its whole lifetime.
type Ring struct {
	mem    Region
	layout Layout
	n      int
	cursor int
}

// Init binds the ring to descriptor memory. capacity must be a power of two
// and mem must hold capacity descriptors. The ring is zeroed, the cursor set
// to 0 and the last slot marked as end of ring.
func (r *Ring) Init(mem Region, capacity int, layout Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	} else if capacity <= 0 || bits.OnesCount(uint(capacity)) != 1 {
		return ErrRingLength
	} else if mem.Len() < capacity*layout.DescSize {
		return ErrShortBuffer
	}
	*r = Ring{
		mem:    mem.Sub(0, capacity*layout.DescSize),
		layout: layout,
		n:      capacity,
	}
	r.Reset()
	return nil
}

// Reset zeroes all descriptors, returns the cursor to slot 0 and marks the
// end of ring. It does not flush.
func (r *Ring) Reset() {
	clear(r.mem.buf)
	r.cursor = 0
	r.MarkEnd(r.n - 1)
}

// Len returns the ring capacity.
func (r *Ring) Len() int { return r.n }

// Cursor returns the index of the next slot software will use.
func (r *Ring) Cursor() int { return r.cursor }

// Advance returns the index following i, wrapping at the ring capacity.
func (r *Ring) Advance(i int) int { return (i + 1) & (r.n - 1) }

// Slot returns the descriptor at index i.
func (r *Ring) Slot(i int) Desc {
	sz := r.layout.DescSize
	return Desc{buf: r.mem.buf[i*sz : (i+1)*sz]}
}

// SlotRegion returns the memory of the descriptor at index i for coherency
// maintenance.
func (r *Ring) SlotRegion(i int) Region {
	return r.mem.Sub(i*r.layout.DescSize, r.layout.DescSize)
}

// MarkEnd sets the end-of-ring flag on slot i.
func (r *Ring) MarkEnd(i int) {
	d := r.Slot(i)
	d.SetWord(0, d.Word(0)|r.layout.EndOfRing)
}

// EndOfRing returns the end-of-ring bit of the ring's layout.
func (r *Ring) EndOfRing() uint32 { return r.layout.EndOfRing }

// Region returns the memory of the whole ring.
func (r *Ring) Region() Region { return r.mem }

// Base returns the device address of the first descriptor, the value
// programmed into the ring base address register.
func (r *Ring) Base() DeviceAddr { return r.mem.addr }

func (r *Ring) step() { r.cursor = r.Advance(r.cursor) }
