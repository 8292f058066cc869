package protocol

// ErrorCode classifies a reported error.
type ErrorCode uint16

const (
	ErrUnknown      ErrorCode = 0x0000
	ErrBadFrame     ErrorCode = 0x0001 // Malformed frame
	ErrBadEvent     ErrorCode = 0x0002 // Malformed event payload
	ErrStalePath    ErrorCode = 0x0003 // Event path resolved to nothing
	ErrServerError  ErrorCode = 0x0100 // Internal failure
	ErrSessionGone  ErrorCode = 0x0101 // Session expired or evicted
	ErrTooManyOpen  ErrorCode = 0x0102 // Connection limit reached
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrUnknown:
		return "Unknown"
	case ErrBadFrame:
		return "BadFrame"
	case ErrBadEvent:
		return "BadEvent"
	case ErrStalePath:
		return "StalePath"
	case ErrServerError:
		return "ServerError"
	case ErrSessionGone:
		return "SessionGone"
	case ErrTooManyOpen:
		return "TooManyOpen"
	default:
		return "Unknown"
	}
}

// ErrorMessage is a structured error sent over the wire.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
}

// EncodeError encodes em to bytes.
func EncodeError(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	return e.Bytes()
}

// DecodeError decodes an error message.
func DecodeError(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	msg, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: msg}, nil
}
