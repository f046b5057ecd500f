package ftgmac

//go:generate stringer -type=errGeneric,Interface,Profile,State -linecomment -output stringers.go .

type errGeneric uint8

// Configuration errors. Returned by [New] and [BoardConfig.Config] before any
// register access.
const (
	_                   errGeneric = iota // non-initialized err
	ErrInvalidInterface                   // invalid PHY interface
	ErrInvalidProfile                     // unknown hardware profile
	ErrDescSize                           // descriptor size must be 16 bytes aligned
	ErrRingLength                         // ring length not a power of two
	ErrBufferSize                         // invalid receive buffer size
	ErrInvalidMAC                         // invalid MAC address
	ErrMissingArg                         // missing collaborator
	ErrTimeout                            // negative timeout
	ErrMetricsInUse                       // metrics name in use
)

// Runtime errors.
const (
	ErrMDIOTimeout  errGeneric = iota + ErrMetricsInUse + 1 // MDIO operation timeout
	ErrNoLink                                               // no link
	ErrResetTimeout                                         // MAC reset timeout
	ErrNotRunning                                           // device not running
)

func (err errGeneric) Error() string {
	return "ftgmac: " + err.String()
}
