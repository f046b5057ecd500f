package dma

import (
	"log/slog"

	"github.com/soypat/ftgmac/internal"
)

// RxEngine receives frames into a descriptor ring with one fixed buffer per
// slot. Received data is handed out in place; the slot is returned to
// hardware with [RxEngine.Release].
type RxEngine struct {
	ring Ring
	coh  Coherency
	bufs []Region
	log  *slog.Logger
}

// Init binds the engine to descriptor memory and one buffer per slot, arms
// every slot for hardware and flushes the ring.
func (rx *RxEngine) Init(mem Region, capacity int, layout Layout, bufs []Region, coh Coherency, log *slog.Logger) error {
	if coh == nil {
		panic("dma: nil coherency")
	}
	err := rx.ring.Init(mem, capacity, layout)
	if err != nil {
		return err
	} else if len(bufs) != capacity {
		return ErrShortBuffer
	}
	for i := range bufs {
		if bufs[i].Len() == 0 {
			return ErrShortBuffer
		}
	}
	rx.coh = coh
	rx.bufs = bufs
	rx.log = log
	rx.Reset()
	return nil
}

// Ring returns the engine's descriptor ring.
func (rx *RxEngine) Ring() *Ring { return &rx.ring }

// Buffer returns the receive buffer bound to slot i.
func (rx *RxEngine) Buffer(i int) Region { return rx.bufs[i] }

// Reset re-arms every slot with its buffer, hands all slots to hardware and
// flushes the ring. Receive DMA must not be running.
func (rx *RxEngine) Reset() {
	rx.ring.Reset()
	for i := range rx.bufs {
		rx.ring.Slot(i).SetBufferAddr(rx.bufs[i].Addr(0))
	}
	rx.coh.Flush(rx.ring.Region())
}

// Poll returns the frame in the slot at the cursor, if hardware has filled it.
// The returned slice aliases the slot's DMA buffer and is valid until
// [RxEngine.Release]. Repeated calls return the same frame until released.
//
// Frames with error status are not returned. Poll leaves such a slot software
// owned and untouched; [RxEngine.Dropped] reports it and Release recycles it.
func (rx *RxEngine) Poll() (pkt []byte, ok bool) {
	i := rx.ring.Cursor()
	d := rx.ring.Slot(i)
	rx.coh.Invalidate(rx.ring.SlotRegion(i))
	status := d.Status()
	if status&RxReady == 0 {
		return nil, false
	}
	n := d.Length()
	if status&RxErrMask != 0 || n > rx.bufs[i].Len() {
		if internal.LogEnabled(rx.log, slog.LevelDebug) {
			internal.LogAttrs(rx.log, slog.LevelDebug, "dma:rx:drop", internal.SlogSlot(i, status))
		}
		return nil, false
	}
	payload := rx.bufs[i].Sub(0, n)
	rx.coh.Invalidate(payload)
	if internal.LogEnabled(rx.log, internal.LevelTrace) {
		internal.LogAttrs(rx.log, internal.LevelTrace, "dma:rx:poll", internal.SlogSlot(i, status), slog.Int("len", n))
	}
	return payload.Bytes(), true
}

// Dropped reports whether the slot at the cursor holds a frame that Poll
// refuses to return because of its error status.
func (rx *RxEngine) Dropped() bool {
	i := rx.ring.Cursor()
	rx.coh.Invalidate(rx.ring.SlotRegion(i))
	status := rx.ring.Slot(i).Status()
	return status&RxReady != 0 && (status&RxErrMask != 0 || int(status&LenMask) > rx.bufs[i].Len())
}

// Release returns the slot at the cursor to hardware and advances the cursor.
// The frame returned by Poll must not be accessed afterwards.
// It returns [ErrNoPacket] if the slot is not software owned.
func (rx *RxEngine) Release() error {
	i := rx.ring.Cursor()
	slot := rx.ring.SlotRegion(i)
	d := rx.ring.Slot(i)
	rx.coh.Invalidate(slot)
	if d.Status()&RxReady == 0 {
		return ErrNoPacket
	}
	d.SetWord(0, d.Status()&rx.ring.EndOfRing())
	rx.coh.Flush(slot)
	rx.ring.step()
	return nil
}
