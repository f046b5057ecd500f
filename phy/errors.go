package phy

type errGeneric uint8

const (
	_                errGeneric = iota // non-initialized err
	ErrInvalidAddr                     // invalid PHY address
	ErrInvalidConfig                   // invalid PHY configuration
	ErrUnsupported                     // unsupported link mode
	ErrShortBuffer                     // buffer too short
	ErrNoPHY                           // no PHY found
	ErrResetTimeout                    // PHY reset timeout
	ErrANIncomplete                    // auto-negotiation not complete
	ErrIsolated                        // PHY isolated from MII
	ErrPoweredDown                     // PHY powered down
	ErrVerify                          // register write did not take effect
)

func (err errGeneric) Error() string {
	return "phy: " + err.String()
}
