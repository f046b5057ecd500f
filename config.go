package ftgmac

import (
	"log/slog"
	"math/bits"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/soypat/ftgmac/dma"
	"github.com/soypat/ftgmac/phy"
)

// Defaults applied to zero valued [Config] fields.
const (
	DefaultRingLen      = 4
	DefaultRxBufferSize = RBSRDefault
	DefaultTxTimeout    = dma.DefaultTxTimeout
	DefaultResetTimeout = 100 * time.Millisecond
	DefaultLinkTimeout  = 5 * time.Second
)

// Config holds the static configuration of a [Device].
type Config struct {
	Profile   Profile
	Interface Interface
	MACAddr   [6]byte
	// PHYAddr is the address of the PHY on the MDIO bus.
	PHYAddr uint8
	// MaxSpeedMbps caps the advertised link speed. Zero means no cap.
	MaxSpeedMbps int
	// NoNegotiation is set when the link is not negotiated, as with NC-SI.
	// Start then proceeds without link and Stop leaves the PHY alone.
	// Implied by Interface == NCSI.
	NoNegotiation bool

	TxRingLen int
	RxRingLen int
	// RxBufferSize is the size of each receive buffer and the value
	// programmed in RBSR.
	RxBufferSize int

	TxTimeout    time.Duration
	ResetTimeout time.Duration
	// LinkTimeout bounds the wait for link during Start.
	LinkTimeout time.Duration

	Logger *slog.Logger
	// Metrics receives the device counters. A private registry is used if nil.
	Metrics metrics.Registry
	// Name prefixes the counter names as "<Name>.tx.packets". Devices sharing
	// a Metrics registry need distinct names.
	Name string
}

func (cfg *Config) setDefaults() {
	if cfg.TxRingLen == 0 {
		cfg.TxRingLen = DefaultRingLen
	}
	if cfg.RxRingLen == 0 {
		cfg.RxRingLen = DefaultRingLen
	}
	if cfg.RxBufferSize == 0 {
		cfg.RxBufferSize = DefaultRxBufferSize
	}
	if cfg.TxTimeout == 0 {
		cfg.TxTimeout = DefaultTxTimeout
	}
	if cfg.ResetTimeout == 0 {
		cfg.ResetTimeout = DefaultResetTimeout
	}
	if cfg.LinkTimeout == 0 {
		cfg.LinkTimeout = DefaultLinkTimeout
	}
	if cfg.Interface == NCSI {
		cfg.NoNegotiation = true
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewRegistry()
	}
}

// Validate checks cfg after applying defaults and reports every invalid
// field. Errors wrap the package's configuration errors.
func (cfg Config) Validate() error {
	cfg.setDefaults()
	var v validator
	if !cfg.Profile.valid() {
		v.addField("Profile", ErrInvalidProfile)
	}
	if !cfg.Interface.valid() {
		v.addField("Interface", ErrInvalidInterface)
	}
	if cfg.MACAddr[0]&1 != 0 {
		v.addField("MACAddr", ErrInvalidMAC)
	}
	if cfg.PHYAddr > 31 {
		v.addField("PHYAddr", phy.ErrInvalidAddr)
	}
	if cfg.MaxSpeedMbps < 0 || cfg.MaxSpeedMbps > 1000 || (cfg.MaxSpeedMbps > 0 && cfg.MaxSpeedMbps < 10) {
		v.addField("MaxSpeedMbps", phy.ErrUnsupported)
	}
	if !isPow2(cfg.TxRingLen) {
		v.addField("TxRingLen", ErrRingLength)
	}
	if !isPow2(cfg.RxRingLen) {
		v.addField("RxRingLen", ErrRingLength)
	}
	if cfg.RxBufferSize < dma.MinFrameLen || cfg.RxBufferSize > rbsrMask || cfg.RxBufferSize%8 != 0 {
		v.addField("RxBufferSize", ErrBufferSize)
	}
	if cfg.TxTimeout < 0 || cfg.ResetTimeout < 0 || cfg.LinkTimeout < 0 {
		v.addField("Timeout", ErrTimeout)
	}
	return v.err()
}

func isPow2(n int) bool { return n > 0 && bits.OnesCount(uint(n)) == 1 }
