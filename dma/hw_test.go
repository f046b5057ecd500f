package dma

import "fmt"

var (
	layoutFaraday = Layout{EndOfRing: 1 << 15, DescSize: 16}
	layoutASPEED  = Layout{EndOfRing: 1 << 30, DescSize: 16}
)

// coherencyOp records a single coherency operation.
type coherencyOp struct {
	flush bool
	addr  DeviceAddr
	n     int
}

func (op coherencyOp) String() string {
	kind := "inval"
	if op.flush {
		kind = "flush"
	}
	return fmt.Sprintf("%s(%#x+%d)", kind, op.addr, op.n)
}

// recorder is a Coherency that remembers every operation.
type recorder struct {
	ops []coherencyOp
}

func (r *recorder) Flush(reg Region) {
	r.ops = append(r.ops, coherencyOp{flush: true, addr: reg.Addr(0), n: reg.Len()})
}

func (r *recorder) Invalidate(reg Region) {
	r.ops = append(r.ops, coherencyOp{addr: reg.Addr(0), n: reg.Len()})
}

func (r *recorder) indexOf(op coherencyOp) int {
	for i := range r.ops {
		if r.ops[i] == op {
			return i
		}
	}
	return -1
}

// fakeTx emulates the transmit side of the DMA engine. On every doorbell it
// consumes hardware owned descriptors starting at its own index.
type fakeTx struct {
	arena *Arena
	ring  *Ring
	hw    int
	stall bool
	// sent holds copies of transmitted frames.
	sent [][]byte
	// slots holds the ring index each frame was read from.
	slots []int
	kicks int
}

func (f *fakeTx) Kick() {
	f.kicks++
	if f.stall {
		return
	}
	for {
		d := f.ring.Slot(f.hw)
		status := d.Status()
		if status&TxOwn == 0 {
			return
		}
		n := int(status & LenMask)
		buf, ok := f.arena.Lookup(d.BufferAddr(), n)
		if !ok {
			panic("fakeTx: descriptor points outside arena")
		}
		f.sent = append(f.sent, append([]byte(nil), buf.Bytes()...))
		f.slots = append(f.slots, f.hw)
		d.SetWord(0, status&^TxOwn)
		if status&f.ring.EndOfRing() != 0 {
			f.hw = 0
		} else {
			f.hw++
		}
	}
}

// fakeRx emulates the receive side of the DMA engine.
type fakeRx struct {
	arena *Arena
	ring  *Ring
	hw    int
}

// deliver writes frame into the next hardware owned slot with the given extra
// status bits. It returns false if the ring is full.
func (f *fakeRx) deliver(frame []byte, status uint32) bool {
	d := f.ring.Slot(f.hw)
	w0 := d.Status()
	if w0&RxReady != 0 {
		return false
	}
	buf, ok := f.arena.Lookup(d.BufferAddr(), len(frame))
	if !ok {
		panic("fakeRx: frame does not fit buffer")
	}
	copy(buf.Bytes(), frame)
	end := w0 & f.ring.EndOfRing()
	d.SetWord(0, end|RxReady|RxFirst|RxLast|status|uint32(len(frame)))
	if end != 0 {
		f.hw = 0
	} else {
		f.hw++
	}
	return true
}

func newTestArena() *Arena {
	return NewArena(make([]byte, 64*1024), 0x8000_0000)
}
