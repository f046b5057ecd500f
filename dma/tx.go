package dma

import (
	"log/slog"
	"time"

	"github.com/soypat/ftgmac/internal"
)

const (
	// MinFrameLen is the minimum Ethernet frame length without FCS. Shorter
	// frames are padded up to it on transmit.
	MinFrameLen = 60
	// DefaultTxTimeout bounds the wait for the DMA engine to complete a transmission.
	DefaultTxTimeout = 1000 * time.Millisecond
)

// Doorbell notifies the DMA engine that transmit descriptors are ready,
// usually by writing the transmit poll demand register.
type Doorbell interface {
	Kick()
}

// TxConfig holds the collaborators of a [TxEngine].
type TxConfig struct {
	Coherency Coherency
	Doorbell  Doorbell
	// Timeout bounds the wait for completion of a single transmission.
	// Zero selects [DefaultTxTimeout].
	Timeout time.Duration
	Logger  *slog.Logger
}

// TxEngine transmits single segment frames synchronously over a descriptor
// ring. At most one frame is in flight at a time.
type TxEngine struct {
	ring    Ring
	coh     Coherency
	bell    Doorbell
	timeout time.Duration
	log     *slog.Logger
}

// Init binds the engine to descriptor memory and resets the ring so all slots
// are software owned. The ring is flushed.
func (tx *TxEngine) Init(mem Region, capacity int, layout Layout, cfg TxConfig) error {
	if cfg.Coherency == nil || cfg.Doorbell == nil {
		panic("dma: nil coherency or doorbell")
	}
	err := tx.ring.Init(mem, capacity, layout)
	if err != nil {
		return err
	}
	tx.coh = cfg.Coherency
	tx.bell = cfg.Doorbell
	tx.timeout = cfg.Timeout
	if tx.timeout <= 0 {
		tx.timeout = DefaultTxTimeout
	}
	tx.log = cfg.Logger
	tx.coh.Flush(tx.ring.Region())
	return nil
}

// Ring returns the engine's descriptor ring.
func (tx *TxEngine) Ring() *Ring { return &tx.ring }

// Reset zeroes the ring returning ownership of every slot to software and
// flushes it. Hardware must not be processing the ring, i.e. transmit DMA must
// be disabled or not yet enabled.
func (tx *TxEngine) Reset() {
	tx.ring.Reset()
	tx.coh.Flush(tx.ring.Region())
}

// Stuck reports whether the slot at the cursor is still owned by hardware,
// which is the state a timed out transmission leaves the ring in.
func (tx *TxEngine) Stuck() bool {
	i := tx.ring.Cursor()
	tx.coh.Invalidate(tx.ring.SlotRegion(i))
	return tx.ring.Slot(i).Status()&TxOwn != 0
}

// Submit transmits the first length bytes of buf and waits for the DMA engine
// to hand the descriptor back. Frames shorter than [MinFrameLen] are zero
// padded, so buf must hold at least MinFrameLen bytes for short frames.
// buf must not be modified until Submit returns.
//
// Submit returns [ErrNoDescriptor] without touching memory if the slot at the
// cursor is hardware owned and [ErrTxTimeout] if the DMA engine does not
// complete in time, in which case the slot stays hardware owned and the cursor
// does not advance. See [TxEngine.Reset].
func (tx *TxEngine) Submit(buf Region, length int) error {
	i := tx.ring.Cursor()
	slot := tx.ring.SlotRegion(i)
	d := tx.ring.Slot(i)
	tx.coh.Invalidate(slot)
	if d.Status()&TxOwn != 0 {
		return ErrNoDescriptor
	}
	if length < 0 || length > int(LenMask) {
		return ErrFrameTooLong
	}
	n := max(length, MinFrameLen)
	if n > buf.Len() {
		return ErrShortBuffer
	}
	clear(buf.buf[length:n])
	payload := buf.Sub(0, n)

	d.SetBufferAddr(payload.Addr(0))
	tx.coh.Flush(payload)
	d.SetWord(0, d.Status()&tx.ring.EndOfRing()|TxFirst|TxLast|uint32(n)|TxOwn)
	tx.coh.Flush(slot)
	if internal.LogEnabled(tx.log, internal.LevelTrace) {
		internal.LogAttrs(tx.log, internal.LevelTrace, "dma:tx:submit", internal.SlogSlot(i, d.Status()), slog.Int("len", n))
	}
	tx.bell.Kick()

	done := internal.PollUntil(tx.timeout, internal.BackoffCriticalPath, func() bool {
		tx.coh.Invalidate(slot)
		return d.Status()&TxOwn == 0
	})
	if !done {
		internal.LogAttrs(tx.log, slog.LevelError, "dma:tx:timeout", internal.SlogSlot(i, d.Status()))
		return ErrTxTimeout
	}
	tx.ring.step()
	return nil
}
