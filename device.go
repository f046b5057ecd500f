// Package ftgmac drives Faraday FTGMAC100 class Ethernet MACs, including the
// ASPEED AST2400/AST2500/AST2600 variants, by polling. Frames move through a
// pair of DMA descriptor rings, see package dma. The PHY is managed over MDIO
// with package phy.
//
// A Device is not safe for concurrent use.
package ftgmac

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soypat/ftgmac/dma"
	"github.com/soypat/ftgmac/internal"
	"github.com/soypat/ftgmac/mmio"
	"github.com/soypat/ftgmac/phy"
)

// State is the lifecycle state of a [Device].
type State uint8

const (
	StateStopped  State = iota // stopped
	StateStarting              // starting
	StateRunning               // running
	StateError                 // error
)

// PHY brings the physical link up and down. [phy.Device] and [phy.Fixed]
// implement it.
type PHY interface {
	// Startup waits until deadline for link. A link that stays down is
	// returned with a nil error.
	Startup(deadline time.Time) (phy.Link, error)
	Shutdown() error
}

// maxSpeeder is implemented by PHYs whose advertisement can be capped.
type maxSpeeder interface {
	SetMaxSpeed(mbps int) error
}

// resetter is implemented by PHYs that support a soft reset.
type resetter interface {
	ResetPHY() error
}

// Device is one MAC instance with its descriptor rings and PHY.
type Device struct {
	bus       mmio.Bus
	phy       PHY
	cfg       Config
	tx        dma.TxEngine
	rx        dma.RxEngine
	state     State
	link      LinkState
	rxPending bool
	phyReset  bool // PHY soft reset done.
	log       *slog.Logger
	metrics   deviceMetrics
}

// txPoll rings the transmit poll demand register.
type txPoll struct {
	bus mmio.Bus
}

func (p *txPoll) Kick() { p.bus.Write32(RegTXPD, 1) }

// New validates cfg and allocates the device's rings and receive buffers from
// arena. No register is accessed. p may be nil when the link is not
// negotiated, in which case a [phy.Fixed] link is used.
func New(bus mmio.Bus, arena *dma.Arena, coh dma.Coherency, p PHY, cfg Config) (*Device, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if p == nil && cfg.NoNegotiation {
		p = phy.Fixed{}
	}
	if bus == nil || arena == nil || coh == nil || p == nil {
		return nil, ErrMissingArg
	}
	reg, err := deviceRegistry(cfg.Metrics, cfg.Name)
	if err != nil {
		return nil, err
	}
	d := &Device{
		bus: bus,
		phy: p,
		cfg: cfg,
		log: cfg.Logger,
	}
	layout := cfg.Profile.Layout()
	err = checkLayout(layout)
	if err != nil {
		return nil, err
	}
	txMem, err := arena.Alloc(cfg.TxRingLen*layout.DescSize, dma.CacheLine)
	if err != nil {
		return nil, fmt.Errorf("tx ring: %w", err)
	}
	rxMem, err := arena.Alloc(cfg.RxRingLen*layout.DescSize, dma.CacheLine)
	if err != nil {
		return nil, fmt.Errorf("rx ring: %w", err)
	}
	bufs := make([]dma.Region, cfg.RxRingLen)
	for i := range bufs {
		bufs[i], err = arena.Alloc(cfg.RxBufferSize, dma.CacheLine)
		if err != nil {
			return nil, fmt.Errorf("rx buffer %d: %w", i, err)
		}
	}
	err = d.tx.Init(txMem, cfg.TxRingLen, layout, dma.TxConfig{
		Coherency: coh,
		Doorbell:  &txPoll{bus: bus},
		Timeout:   cfg.TxTimeout,
		Logger:    cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	err = d.rx.Init(rxMem, cfg.RxRingLen, layout, bufs, coh, cfg.Logger)
	if err != nil {
		return nil, err
	}
	d.metrics = newDeviceMetrics(reg)
	return d, nil
}

// State returns the lifecycle state of the device.
func (d *Device) State() State { return d.state }

// Link returns the link state last applied by [Device.AdjustLink].
func (d *Device) Link() LinkState { return d.link }

// MACAddr returns the station address.
func (d *Device) MACAddr() [6]byte { return d.cfg.MACAddr }

// Stats returns a snapshot of the device counters.
func (d *Device) Stats() Stats { return d.metrics.snapshot() }

// Start resets the MAC, programs it, re-initializes both rings, enables
// transmit and receive and brings up the link. The PHY is soft reset until a
// reset succeeds once. On failure the device is left in [StateError] and must
// be stopped or started again.
func (d *Device) Start() error {
	d.state = StateStarting
	err := d.start()
	if err != nil {
		d.state = StateError
		internal.LogAttrs(d.log, slog.LevelError, "ftgmac:start", slog.String("err", err.Error()))
		return err
	}
	d.state = StateRunning
	internal.LogAttrs(d.log, slog.LevelInfo, "ftgmac:link-up", d.link.attrs(), internal.SlogAddr6("mac", &d.cfg.MACAddr))
	return nil
}

func (d *Device) start() error {
	mmio.SetBits(d.bus, RegMACCR, MACCRSoftwareReset)
	_, err := mmio.WaitBits(d.bus, RegMACCR, MACCRSoftwareReset, 0, d.cfg.ResetTimeout)
	if err != nil {
		return ErrResetTimeout
	}
	d.writeMAC(d.cfg.MACAddr)
	d.bus.Write32(RegIER, 0)

	d.tx.Reset()
	d.rx.Reset()
	d.rxPending = false
	d.bus.Write32(RegTXRBADR, uint32(d.tx.Ring().Base()))
	d.bus.Write32(RegRXRBADR, uint32(d.rx.Ring().Base()))
	d.bus.Write32(RegAPTC, aptcRxPollCnt1)
	d.bus.Write32(RegRBSR, uint32(d.cfg.RxBufferSize)&rbsrMask)

	layout := d.cfg.Profile.Layout()
	err = checkLayout(layout)
	if err != nil {
		return err
	}
	d.bus.Write32(RegDBLAC, dblacDescSize(d.bus.Read32(RegDBLAC), layout.DescSize))
	d.bus.Write32(RegMACCR, maccrEnable)

	if rs, ok := d.phy.(resetter); ok && !d.phyReset && !d.cfg.NoNegotiation {
		err = rs.ResetPHY()
		if err != nil {
			return fmt.Errorf("phy reset: %w", err)
		}
		d.phyReset = true
	}
	if ms, ok := d.phy.(maxSpeeder); ok && d.cfg.MaxSpeedMbps > 0 {
		err = ms.SetMaxSpeed(d.cfg.MaxSpeedMbps)
		if err != nil {
			return fmt.Errorf("phy max speed: %w", err)
		}
	}
	link, err := d.phy.Startup(time.Now().Add(d.cfg.LinkTimeout))
	if err != nil {
		return fmt.Errorf("phy startup: %w", err)
	}
	return d.AdjustLink(LinkStateFrom(link, d.cfg.Interface))
}

// AdjustLink reprograms the speed and duplex bits of MACCR for ls with a
// single read and a single write. It returns [ErrNoLink] if the link is down
// and the link is negotiated.
func (d *Device) AdjustLink(ls LinkState) error {
	if d.state != StateStarting && d.state != StateRunning {
		return ErrNotRunning
	} else if !ls.Up && !d.cfg.NoNegotiation {
		return ErrNoLink
	}
	old := d.bus.Read32(RegMACCR)
	maccr := ControlWord(old, ls)
	d.bus.Write32(RegMACCR, maccr)
	d.link = ls
	if maccr != old {
		d.metrics.linkChanges.Inc(1)
		internal.LogAttrs(d.log, slog.LevelInfo, "ftgmac:adjust-link", ls.attrs(), slog.Uint64("maccr", uint64(maccr)))
	}
	return nil
}

// Stop disables the MAC and powers down the PHY unless the link is not
// negotiated. Descriptors owned by hardware are not reclaimed; the next Start
// re-initializes both rings.
func (d *Device) Stop() error {
	d.bus.Write32(RegMACCR, 0)
	d.state = StateStopped
	d.link = LinkState{}
	d.rxPending = false
	if d.cfg.NoNegotiation {
		return nil
	}
	return d.phy.Shutdown()
}

// SetMACAddress sets the station address used for receive filtering.
func (d *Device) SetMACAddress(mac [6]byte) error {
	if mac[0]&1 != 0 {
		return ErrInvalidMAC
	}
	d.cfg.MACAddr = mac
	d.writeMAC(mac)
	return nil
}

// checkLayout reports whether DBLAC can describe descriptors of layout.
func checkLayout(layout dma.Layout) error {
	err := layout.Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDescSize, err)
	}
	return nil
}

func (d *Device) writeMAC(mac [6]byte) {
	madr, ladr := macWords(mac)
	d.bus.Write32(RegMADR, madr)
	d.bus.Write32(RegLADR, ladr)
}

// Send transmits the first length bytes of buf and waits for completion.
// Frames shorter than [dma.MinFrameLen] are zero padded inside buf.
// See [dma.TxEngine.Submit] for the errors returned; after [dma.ErrTxTimeout]
// the ring is stuck until [Device.RecoverTx].
func (d *Device) Send(buf dma.Region, length int) error {
	if d.state != StateRunning {
		return ErrNotRunning
	}
	err := d.tx.Submit(buf, length)
	switch err {
	case nil:
		d.metrics.txPackets.Inc(1)
		d.metrics.txBytes.Inc(int64(max(length, dma.MinFrameLen)))
	case dma.ErrNoDescriptor:
		d.metrics.txRingFull.Inc(1)
	case dma.ErrTxTimeout:
		d.metrics.txTimeouts.Inc(1)
	}
	return err
}

// RecoverTx returns a stuck transmit ring to software. Transmit DMA is
// disabled while the ring is reset and its base address reprogrammed.
func (d *Device) RecoverTx() error {
	if d.state != StateRunning {
		return ErrNotRunning
	}
	mmio.ClearBits(d.bus, RegMACCR, MACCRTxDMAEn)
	d.tx.Reset()
	d.bus.Write32(RegTXRBADR, uint32(d.tx.Ring().Base()))
	mmio.SetBits(d.bus, RegMACCR, MACCRTxDMAEn)
	internal.LogAttrs(d.log, slog.LevelWarn, "ftgmac:recover-tx")
	return nil
}

// Receive returns the next received frame, if any. The frame aliases a
// receive buffer and is valid until [Device.Release], which must be called
// before the next frame can be received. Frames received with errors are
// recycled and counted as dropped.
func (d *Device) Receive() ([]byte, bool) {
	if d.state != StateRunning {
		return nil, false
	}
	for i, n := 0, d.rx.Ring().Len(); i < n; i++ {
		pkt, ok := d.rx.Poll()
		if ok {
			if !d.rxPending {
				d.rxPending = true
				d.metrics.rxPackets.Inc(1)
				d.metrics.rxBytes.Inc(int64(len(pkt)))
			}
			return pkt, true
		} else if !d.rx.Dropped() {
			break
		}
		if d.rx.Release() != nil {
			break
		}
		d.metrics.rxDropped.Inc(1)
	}
	return nil, false
}

// Release returns the buffer of the frame returned by Receive to hardware.
func (d *Device) Release() error {
	if d.state != StateRunning {
		return ErrNotRunning
	}
	err := d.rx.Release()
	if err == nil {
		d.rxPending = false
	}
	return err
}
