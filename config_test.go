package ftgmac

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soypat/ftgmac/phy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Interface: RGMII}
	require.NoError(t, cfg.Validate())
	cfg.setDefaults()
	assert.Equal(t, DefaultRingLen, cfg.TxRingLen)
	assert.Equal(t, DefaultRingLen, cfg.RxRingLen)
	assert.Equal(t, RBSRDefault, cfg.RxBufferSize)
	assert.Equal(t, DefaultTxTimeout, cfg.TxTimeout)
	assert.Equal(t, DefaultResetTimeout, cfg.ResetTimeout)
	assert.Equal(t, DefaultLinkTimeout, cfg.LinkTimeout)
	assert.False(t, cfg.NoNegotiation)
	assert.NotNil(t, cfg.Metrics)

	cfg = Config{Interface: NCSI}
	cfg.setDefaults()
	assert.True(t, cfg.NoNegotiation)
}

func TestConfigValidateReportsEveryField(t *testing.T) {
	cfg := Config{
		Profile:      Profile(7),
		MACAddr:      [6]byte{0x01, 0, 0x5e, 0, 0, 1},
		PHYAddr:      32,
		MaxSpeedMbps: 2500,
		TxRingLen:    3,
		RxRingLen:    -4,
		RxBufferSize: 0x641,
		LinkTimeout:  -time.Second,
	}
	err := cfg.Validate()
	require.Error(t, err)
	for _, target := range []error{ErrInvalidProfile, ErrInvalidInterface, ErrInvalidMAC, ErrRingLength, ErrBufferSize, phy.ErrInvalidAddr, phy.ErrUnsupported, ErrTimeout} {
		assert.ErrorIs(t, err, target)
	}
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Profile", fe.Field)
	assert.ErrorContains(t, err, "TxRingLen: ")
	assert.ErrorContains(t, err, "RxRingLen: ")
}

func TestConfigValidateSingleField(t *testing.T) {
	err := Config{Interface: RMII, RxBufferSize: 32}.Validate()
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "RxBufferSize", fe.Field)
	assert.ErrorIs(t, err, ErrBufferSize)
}

func TestConfigNegativeTimeout(t *testing.T) {
	for _, cfg := range []Config{
		{Interface: RGMII, TxTimeout: -1},
		{Interface: RGMII, ResetTimeout: -time.Millisecond},
		{Interface: RGMII, LinkTimeout: -time.Second},
	} {
		err := cfg.Validate()
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "Timeout", fe.Field)
		assert.Equal(t, ErrTimeout, fe.Err)
		assert.NotErrorIs(t, err, phy.ErrInvalidConfig)
	}
	assert.Equal(t, "ftgmac: negative timeout", ErrTimeout.Error())
}

const ast2600Board = `
name: eth1
compatible: aspeed,ast2600-mac
phy-mode: rgmii-id
phy-address: 1
max-speed: 100
mac-address: "02:00:00:12:34:56"
registers: 0x1e660000
mdio: 0x1e650000
rx-ring: 8
rx-buffer-size: 0x600
dma: {base: 0x9f000000, size: 0x100000}
timeouts: {tx: 250ms, reset: 50ms, link: 3s}
`

func TestParseBoardConfig(t *testing.T) {
	bc, err := ParseBoardConfig([]byte(ast2600Board))
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1e660000), bc.Registers)
	assert.Equal(t, uint64(0x1e650000), bc.MDIO)
	assert.Equal(t, uint64(0x9f000000), bc.DMA.Base)
	assert.Equal(t, 0x100000, bc.DMA.Size)
	assert.Equal(t, 250*time.Millisecond, bc.Timeouts.Tx)

	cfg, err := bc.Config()
	require.NoError(t, err)
	assert.Equal(t, "eth1", cfg.Name)
	assert.Equal(t, ProfileAST2600, cfg.Profile)
	assert.Equal(t, RGMIIID, cfg.Interface)
	assert.Equal(t, [6]byte{0x02, 0, 0, 0x12, 0x34, 0x56}, cfg.MACAddr)
	assert.Equal(t, uint8(1), cfg.PHYAddr)
	assert.Equal(t, 100, cfg.MaxSpeedMbps)
	assert.Equal(t, 8, cfg.RxRingLen)
	assert.Zero(t, cfg.TxRingLen, "defaults are applied by New")
	assert.Equal(t, 0x600, cfg.RxBufferSize)
	assert.Equal(t, 50*time.Millisecond, cfg.ResetTimeout)
	assert.Equal(t, 3*time.Second, cfg.LinkTimeout)
	assert.False(t, cfg.NoNegotiation)
}

func TestParseBoardConfigUnknownKey(t *testing.T) {
	_, err := ParseBoardConfig([]byte("compatible: faraday,ftgmac100\nphy-handle: 3\n"))
	assert.ErrorContains(t, err, "phy-handle")
}

func TestBoardConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
		err   error
	}{
		{"no-registers", "compatible: faraday,ftgmac100\nphy-mode: rgmii", "registers", ErrMissingArg},
		{"no-mdio", "compatible: aspeed,ast2600-mac\nphy-mode: rgmii\nregisters: 0x1e660000", "mdio", ErrMissingArg},
		{"bad-compatible", "compatible: acme,mac\nphy-mode: rgmii\nregisters: 1", "compatible", ErrInvalidProfile},
		{"bad-mode", "compatible: aspeed,ast2500-mac\nphy-mode: sgmii\nregisters: 1", "phy-mode", ErrInvalidInterface},
		{"bad-mac", "compatible: aspeed,ast2500-mac\nphy-mode: rmii\nregisters: 1\nmac-address: \"02:00\"", "mac-address", ErrInvalidMAC},
		{"bad-ring", "compatible: aspeed,ast2500-mac\nphy-mode: rmii\nregisters: 1\ntx-ring: 6", "TxRingLen", ErrRingLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bc, err := ParseBoardConfig([]byte(tt.yaml))
			require.NoError(t, err)
			_, err = bc.Config()
			require.ErrorIs(t, err, tt.err)
			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.field, fe.Field)
		})
	}
}

func TestBoardConfigNCSI(t *testing.T) {
	// NC-SI boards reach no PHY so the MDIO controller is optional.
	for _, src := range []string{
		"compatible: aspeed,ast2600-mac\nphy-mode: NC-SI\nregisters: 0x1e670000",
		"compatible: aspeed,ast2600-mac\nphy-mode: rmii\nuse-ncsi: true\nregisters: 0x1e670000",
	} {
		bc, err := ParseBoardConfig([]byte(src))
		require.NoError(t, err)
		cfg, err := bc.Config()
		require.NoError(t, err)
		cfg.setDefaults()
		assert.True(t, cfg.NoNegotiation)
	}
}

func TestLoadBoardConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(ast2600Board), 0o644))
	bc, err := LoadBoardConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "aspeed,ast2600-mac", bc.Compatible)

	_, err = LoadBoardConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
