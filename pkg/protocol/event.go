package protocol

import "io"

// Event is a client event bound for the server: which node it fired on,
// what kind it was, and whatever payload fields the client captured.
type Event struct {
	Seq  uint64
	Name string // Event type, e.g. "click" or "input"
	Path []int  // Target node, child indices from the root
	Data map[string]any
}

// valueType tags a data value on the wire.
type valueType uint8

const (
	valueNull   valueType = 0x00
	valueBool   valueType = 0x01
	valueInt    valueType = 0x02
	valueFloat  valueType = 0x03
	valueString valueType = 0x04
	valueArray  valueType = 0x05
	valueObject valueType = 0x06
)

// EncodeEvent encodes ev to bytes.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	EncodeEventTo(e, ev)
	return e.Bytes()
}

// EncodeEventTo encodes ev using the provided encoder.
func EncodeEventTo(e *Encoder, ev *Event) {
	e.WriteUvarint(ev.Seq)
	e.WriteString(ev.Name)
	e.WritePath(ev.Path)
	e.WriteUvarint(uint64(len(ev.Data)))
	for k, v := range ev.Data {
		e.WriteString(k)
		encodeValue(e, v)
	}
}

func encodeValue(e *Encoder, v any) {
	switch val := v.(type) {
	case nil:
		e.WriteByte(byte(valueNull))
	case bool:
		e.WriteByte(byte(valueBool))
		e.WriteBool(val)
	case int:
		e.WriteByte(byte(valueInt))
		e.WriteSvarint(int64(val))
	case int64:
		e.WriteByte(byte(valueInt))
		e.WriteSvarint(val)
	case float64:
		e.WriteByte(byte(valueFloat))
		e.WriteFloat64(val)
	case string:
		e.WriteByte(byte(valueString))
		e.WriteString(val)
	case []any:
		e.WriteByte(byte(valueArray))
		e.WriteUvarint(uint64(len(val)))
		for _, item := range val {
			encodeValue(e, item)
		}
	case map[string]any:
		e.WriteByte(byte(valueObject))
		e.WriteUvarint(uint64(len(val)))
		for k, item := range val {
			e.WriteString(k)
			encodeValue(e, item)
		}
	default:
		// Unknown types degrade to null rather than failing the frame.
		e.WriteByte(byte(valueNull))
	}
}

// DecodeEvent decodes an event from bytes.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	return DecodeEventFrom(d)
}

// DecodeEventFrom decodes an event from a decoder.
func DecodeEventFrom(d *Decoder) (*Event, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	name, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	path, err := d.ReadPath()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if count > 0 {
		data = make(map[string]any, count)
		for i := 0; i < count; i++ {
			k, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			v, err := decodeValue(d, 0)
			if err != nil {
				return nil, err
			}
			data[k] = v
		}
	}
	return &Event{Seq: seq, Name: name, Path: path, Data: data}, nil
}

func decodeValue(d *Decoder, depth int) (any, error) {
	if depth > MaxValueDepth {
		return nil, ErrValueTooDeep
	}
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch valueType(tag) {
	case valueNull:
		return nil, nil
	case valueBool:
		return d.ReadBool()
	case valueInt:
		return d.ReadSvarint()
	case valueFloat:
		return d.ReadFloat64()
	case valueString:
		return d.ReadString()
	case valueArray:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		arr := make([]any, count)
		for i := range arr {
			arr[i], err = decodeValue(d, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return arr, nil
	case valueObject:
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		obj := make(map[string]any, count)
		for i := 0; i < count; i++ {
			k, err := d.ReadString()
			if err != nil {
				return nil, err
			}
			obj[k], err = decodeValue(d, depth+1)
			if err != nil {
				return nil, err
			}
		}
		return obj, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}
