// Package protocol implements the status frame codec used to report
// scheduler health over a serial link.
//
// Frame layout:
//
//	[len][seq][msg id][payload VLQs ...][crc hi][crc lo][0x7E]
//
// len counts the whole frame. seq carries MessageDest in the high nibble and
// a rolling 4-bit counter in the low nibble. The CRC covers everything before it.
package protocol

// Version represents the status protocol version
const Version = "1"

// Frame constants
const (
	MessageMax         = 512 // Output buffer size (several frames)
	MessageHeaderSize  = 2
	MessageTrailerSize = 3
	MessageLengthMin   = MessageHeaderSize + MessageTrailerSize
	MessageLengthMax   = 64
	MessagePositionLen = 0
	MessagePositionSeq = 1
	MessageTrailerCRC  = 3
	MessageTrailerSync = 1
	MessageValueSync   = 0x7E
	MessageDest        = 0x10

	MessageSeqMask = 0x0F
)

// Message IDs
const (
	MsgStatus = 1
)
