package protocol

// crc16Update folds one byte into a CRC16-CCITT (0x8408 reflected) checksum
func crc16Update(crc uint16, b byte) uint16 {
	b ^= uint8(crc & 0xFF)
	b ^= b << 4
	w := uint16(b)
	return (w<<8 | crc>>8) ^ (w >> 4) ^ (w << 3)
}

// CRC16 calculates the frame checksum
func CRC16(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = crc16Update(crc, b)
	}
	return crc
}

// AppendCRC16 appends the checksum of data to dst, high byte first
func AppendCRC16(dst, data []byte) []byte {
	crc := CRC16(data)
	return append(dst, byte(crc>>8), byte(crc))
}
