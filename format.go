package sensorproto

// FormatKind identifies which variant of Format is present.
type FormatKind byte

const (
	FormatValueOnly         FormatKind = 0x00
	FormatAddressOnly       FormatKind = 0x01
	FormatAddressValuePairs FormatKind = 0x02
	FormatEmpty             FormatKind = 0xFF
)

// Format describes the shape of a Response's payload.
type Format struct {
	Kind FormatKind
	// T1 is the element type for ValueOnly/AddressOnly, and the address
	// type for AddressValuePairs.
	T1 Type
	// T2 is the value type for AddressValuePairs; unused otherwise.
	T2 Type
}

// ValueOnly builds a Format for a bare value payload of type t.
func ValueOnly(t Type) Format {
	return Format{Kind: FormatValueOnly, T1: t}
}

// AddressOnly builds a Format for a bare address payload of type t.
func AddressOnly(t Type) Format {
	return Format{Kind: FormatAddressOnly, T1: t}
}

// AddressValuePairs builds a Format for a stream of (address, value) pairs.
func AddressValuePairs(address, value Type) Format {
	return Format{Kind: FormatAddressValuePairs, T1: address, T2: value}
}

// EmptyFormat is the Format for a response with no payload.
var EmptyFormat = Format{Kind: FormatEmpty}

// Write encodes f, returning the number of bytes produced.
func (f Format) Write(w Writer) (int, error) {
	switch f.Kind {
	case FormatValueOnly, FormatAddressOnly:
		if _, err := w.WriteU8(byte(f.Kind)); err != nil {
			return 0, err
		}
		n, err := f.T1.Write(w)
		if err != nil {
			return 0, err
		}
		return 1 + n, nil
	case FormatAddressValuePairs:
		if _, err := w.WriteU8(byte(f.Kind)); err != nil {
			return 0, err
		}
		n1, err := f.T1.Write(w)
		if err != nil {
			return 0, err
		}
		n2, err := f.T2.Write(w)
		if err != nil {
			return 0, err
		}
		return 1 + n1 + n2, nil
	case FormatEmpty:
		if _, err := w.WriteU8(byte(FormatEmpty)); err != nil {
			return 0, err
		}
		return 1, nil
	default:
		return 0, ErrUnknownTypeIdentifier
	}
}

// ReadFormat decodes a Format from r.
func ReadFormat(r Reader) (Format, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Format{}, err
	}
	switch FormatKind(tag) {
	case FormatValueOnly, FormatAddressOnly:
		t, err := ReadType(r)
		if err != nil {
			return Format{}, err
		}
		return Format{Kind: FormatKind(tag), T1: t}, nil
	case FormatAddressValuePairs:
		t1, err := ReadType(r)
		if err != nil {
			return Format{}, err
		}
		t2, err := ReadType(r)
		if err != nil {
			return Format{}, err
		}
		return Format{Kind: FormatAddressValuePairs, T1: t1, T2: t2}, nil
	case FormatEmpty:
		return Format{Kind: FormatEmpty}, nil
	default:
		return Format{}, ErrUnknownTypeIdentifier
	}
}
