package protocol

// Version is the protocol version carried in the hello exchange. Bump
// on any incompatible wire change.
const Version uint16 = 1

// HelloStatus is the server's verdict on a client hello.
type HelloStatus uint8

const (
	HelloOK              HelloStatus = 0x00
	HelloVersionMismatch HelloStatus = 0x01
	HelloSessionUnknown  HelloStatus = 0x02
	HelloServerBusy      HelloStatus = 0x03
)

// String returns the string representation of the hello status.
func (hs HelloStatus) String() string {
	switch hs {
	case HelloOK:
		return "OK"
	case HelloVersionMismatch:
		return "VersionMismatch"
	case HelloSessionUnknown:
		return "SessionUnknown"
	case HelloServerBusy:
		return "ServerBusy"
	default:
		return "Unknown"
	}
}

// Hello is the client's opening message. SessionID is empty for a
// fresh session; set, the client is asking to resume and LastSeq is
// the last patch set it applied.
type Hello struct {
	Version   uint16
	SessionID string
	LastSeq   uint64
}

// EncodeHello encodes h to bytes.
func EncodeHello(h *Hello) []byte {
	e := NewEncoder()
	e.WriteUint16(h.Version)
	e.WriteString(h.SessionID)
	e.WriteUvarint(h.LastSeq)
	return e.Bytes()
}

// DecodeHello decodes a client hello.
func DecodeHello(data []byte) (*Hello, error) {
	d := NewDecoder(data)
	version, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	sessionID, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	lastSeq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return &Hello{Version: version, SessionID: sessionID, LastSeq: lastSeq}, nil
}

// HelloAck is the server's reply. On HelloOK the SessionID is
// authoritative and Seq is the server's current patch sequence.
type HelloAck struct {
	Status    HelloStatus
	SessionID string
	Seq       uint64
}

// EncodeHelloAck encodes a to bytes.
func EncodeHelloAck(a *HelloAck) []byte {
	e := NewEncoder()
	e.WriteByte(byte(a.Status))
	e.WriteString(a.SessionID)
	e.WriteUvarint(a.Seq)
	return e.Bytes()
}

// DecodeHelloAck decodes a server hello ack.
func DecodeHelloAck(data []byte) (*HelloAck, error) {
	d := NewDecoder(data)
	status, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	sessionID, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	return &HelloAck{Status: HelloStatus(status), SessionID: sessionID, Seq: seq}, nil
}
