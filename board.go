package ftgmac

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// BoardConfig describes a MAC instance on a board, the information a device
// tree node would carry. It is read from YAML:
//
//	name: eth0
//	compatible: aspeed,ast2600-mac
//	phy-mode: rgmii-id
//	phy-address: 0
//	max-speed: 1000
//	mac-address: "02:00:00:12:34:56"
//	registers: 0x1e660000
//	mdio: 0x1e650000
//	dma: {base: 0x9f000000, size: 0x100000}
//	timeouts: {tx: 1s, reset: 100ms, link: 5s}
type BoardConfig struct {
	Name         string `yaml:"name"`
	Compatible   string `yaml:"compatible"`
	PHYMode      string `yaml:"phy-mode"`
	PHYAddress   uint8  `yaml:"phy-address"`
	MaxSpeed     int    `yaml:"max-speed"`
	UseNCSI      bool   `yaml:"use-ncsi"`
	MACAddress   string `yaml:"mac-address"`
	Registers    uint64 `yaml:"registers"`
	MDIO         uint64 `yaml:"mdio"`
	TxRing       int    `yaml:"tx-ring"`
	RxRing       int    `yaml:"rx-ring"`
	RxBufferSize int    `yaml:"rx-buffer-size"`
	DMA          struct {
		Base uint64 `yaml:"base"`
		Size int    `yaml:"size"`
	} `yaml:"dma"`
	Timeouts struct {
		Tx    time.Duration `yaml:"tx"`
		Reset time.Duration `yaml:"reset"`
		Link  time.Duration `yaml:"link"`
	} `yaml:"timeouts"`
}

// ParseBoardConfig decodes a YAML board description. Unknown keys are errors.
func ParseBoardConfig(data []byte) (BoardConfig, error) {
	var bc BoardConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(&bc)
	if err != nil {
		return BoardConfig{}, fmt.Errorf("board config: %w", err)
	}
	return bc, nil
}

// LoadBoardConfig reads and decodes the YAML board description at path.
func LoadBoardConfig(path string) (BoardConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return BoardConfig{}, err
	}
	return ParseBoardConfig(b)
}

// Config resolves the board description into a device [Config]. Logger and
// Metrics are left for the caller to set.
func (bc *BoardConfig) Config() (Config, error) {
	var v validator
	cfg := Config{
		Name:          bc.Name,
		PHYAddr:       bc.PHYAddress,
		MaxSpeedMbps:  bc.MaxSpeed,
		NoNegotiation: bc.UseNCSI,
		TxRingLen:     bc.TxRing,
		RxRingLen:     bc.RxRing,
		RxBufferSize:  bc.RxBufferSize,
		TxTimeout:     bc.Timeouts.Tx,
		ResetTimeout:  bc.Timeouts.Reset,
		LinkTimeout:   bc.Timeouts.Link,
	}
	profile, ok := ProfileByCompatible(bc.Compatible)
	if !ok {
		v.addField("compatible", ErrInvalidProfile)
	}
	cfg.Profile = profile
	iface, err := ParseInterface(bc.PHYMode)
	if err != nil {
		v.addField("phy-mode", err)
	}
	cfg.Interface = iface
	if bc.MACAddress != "" {
		hw, err := net.ParseMAC(bc.MACAddress)
		if err != nil || len(hw) != 6 {
			v.addField("mac-address", ErrInvalidMAC)
		} else {
			copy(cfg.MACAddr[:], hw)
		}
	}
	if bc.Registers == 0 {
		v.addField("registers", ErrMissingArg)
	}
	if profile.SeparateMDIO() && bc.MDIO == 0 && !cfg.NoNegotiation && cfg.Interface != NCSI {
		v.addField("mdio", ErrMissingArg)
	}
	if v.hasError() {
		return Config{}, v.err()
	}
	return cfg, cfg.Validate()
}
