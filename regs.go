package ftgmac

// Register offsets from the base of the MAC register window.
const (
	RegISR       uintptr = 0x00 // Interrupt status.
	RegIER       uintptr = 0x04 // Interrupt enable.
	RegMADR      uintptr = 0x08 // MAC address, 2 most significant bytes.
	RegLADR      uintptr = 0x0c // MAC address, 4 least significant bytes.
	RegMAHT0     uintptr = 0x10 // Multicast hash table.
	RegMAHT1     uintptr = 0x14
	RegTXPD      uintptr = 0x18 // Transmit poll demand.
	RegRXPD      uintptr = 0x1c // Receive poll demand.
	RegTXRBADR   uintptr = 0x20 // Transmit ring base address.
	RegRXRBADR   uintptr = 0x24 // Receive ring base address.
	RegHPTXPD    uintptr = 0x28 // High priority transmit poll demand.
	RegHPTXRBADR uintptr = 0x2c // High priority transmit ring base address.
	RegITC       uintptr = 0x30 // Interrupt timer control.
	RegAPTC      uintptr = 0x34 // Automatic polling timer control.
	RegDBLAC     uintptr = 0x38 // DMA burst length and arbitration control.
	RegDMAFIFOS  uintptr = 0x3c
	RegREVR      uintptr = 0x40
	RegFEAR      uintptr = 0x44
	RegTPAFCR    uintptr = 0x48
	RegRBSR      uintptr = 0x4c // Receive buffer size.
	RegMACCR     uintptr = 0x50 // MAC control.
	RegMACSR     uintptr = 0x54
	RegTM        uintptr = 0x58
	RegPHYCR     uintptr = 0x60 // PHY control (MDIO).
	RegPHYDATA   uintptr = 0x64 // PHY data (MDIO).
	RegFCR       uintptr = 0x68 // Flow control.
	RegBPR       uintptr = 0x6c // Back pressure.

	// RegWindowSize is the size of the register window to map.
	RegWindowSize = 0x100
)

// MACCR bits.
const (
	MACCRTxDMAEn       uint32 = 1 << 0
	MACCRRxDMAEn       uint32 = 1 << 1
	MACCRTxMACEn       uint32 = 1 << 2
	MACCRRxMACEn       uint32 = 1 << 3
	MACCRRmVLAN        uint32 = 1 << 4
	MACCRHPTxREn       uint32 = 1 << 5
	MACCRLoopEn        uint32 = 1 << 6
	MACCREnRxInHalfTx  uint32 = 1 << 7
	MACCRFullDup       uint32 = 1 << 8
	MACCRGigaMode      uint32 = 1 << 9
	MACCRCRCApd        uint32 = 1 << 10
	MACCRRxRunt        uint32 = 1 << 12
	MACCRJumboLF       uint32 = 1 << 13
	MACCRRxAll         uint32 = 1 << 14
	MACCRHTMultiEn     uint32 = 1 << 15
	MACCRRxMultiPkt    uint32 = 1 << 16
	MACCRRxBroadPkt    uint32 = 1 << 17
	MACCRDiscardCRCErr uint32 = 1 << 18
	MACCRFastMode      uint32 = 1 << 19
	MACCRSoftwareReset uint32 = 1 << 31

	// maccrEnable is written by Start to bring up both directions.
	maccrEnable = MACCRTxMACEn | MACCRRxMACEn | MACCRTxDMAEn | MACCRRxDMAEn |
		MACCRCRCApd | MACCRFullDup | MACCRRxRunt | MACCRRxBroadPkt

	maccrLinkMask = MACCRGigaMode | MACCRFastMode | MACCRFullDup
)

// PHYCR and PHYDATA fields.
const (
	PHYCRMIIRd uint32 = 1 << 26
	PHYCRMIIWr uint32 = 1 << 27

	// mdcCycThr is the MDC clock cycle threshold. 20us * 100 = 2ms > (1 / 2.5Mhz) * 0x34
	mdcCycThr = 0x34
)

// PHYCRCommand returns the PHYCR value addressing register reg of the PHY at
// phyAddr, without the read or write trigger bits.
func PHYCRCommand(phyAddr, reg uint8) uint32 {
	return mdcCycThr&0x3f | uint32(phyAddr&0x1f)<<16 | uint32(reg&0x1f)<<21
}

// PHYCRAddr extracts the PHY and register addresses from a PHYCR value.
func PHYCRAddr(phycr uint32) (phyAddr, reg uint8) {
	return uint8(phycr>>16) & 0x1f, uint8(phycr>>21) & 0x1f
}

// PHYDATA holds write data in the low half and read data in the high half.
func phydataRead(v uint32) uint16 { return uint16(v >> 16) }

// APTC, RBSR and DBLAC fields.
const (
	aptcRxPollCnt1 uint32 = 1 & 0xf

	// RBSRDefault is the hardware default receive buffer size.
	RBSRDefault = 0x640
	rbsrMask    = 0x3fff
)

// dblacDescSize programs the TX and RX descriptor size fields of DBLAC in
// units of 8 bytes.
func dblacDescSize(dblac uint32, size int) uint32 {
	sz := uint32(size >> 3)
	dblac &^= 0xff << 12
	return dblac | sz<<16 | sz<<12
}

// DBLACDescSize returns the descriptor size in bytes programmed in DBLAC.
func DBLACDescSize(dblac uint32) (tx, rx int) {
	return int(dblac>>16&0xf) << 3, int(dblac>>12&0xf) << 3
}

// macWords splits a MAC address into the MADR and LADR register values.
func macWords(mac [6]byte) (madr, ladr uint32) {
	madr = uint32(mac[0])<<8 | uint32(mac[1])
	ladr = uint32(mac[2])<<24 | uint32(mac[3])<<16 | uint32(mac[4])<<8 | uint32(mac[5])
	return madr, ladr
}

// MACFromWords is the inverse of the MADR/LADR layout.
func MACFromWords(madr, ladr uint32) (mac [6]byte) {
	return [6]byte{byte(madr >> 8), byte(madr), byte(ladr >> 24), byte(ladr >> 16), byte(ladr >> 8), byte(ladr)}
}
