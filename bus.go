package sensorproto

// BusKind identifies the physical device-attachment family addressed by a
// Request.
type BusKind byte

const (
	BusOneWire BusKind = 0x00
	BusI2C     BusKind = 0x01
	BusCustom  BusKind = 0xFF
)

// Bus is OneWire, I2C, or a Custom bus identified by a single id byte. The
// I2C lane is preserved here for wire compatibility even though no request-
// building helper in this module currently exercises it.
type Bus struct {
	Kind BusKind
	// ID is meaningful only for BusCustom.
	ID byte
}

var (
	OneWire = Bus{Kind: BusOneWire}
	I2C     = Bus{Kind: BusI2C}
)

// Custom builds a Bus for a custom bus kind identified by id.
func Custom(id byte) Bus {
	return Bus{Kind: BusCustom, ID: id}
}

// Write encodes b, returning the number of bytes produced.
func (b Bus) Write(w Writer) (int, error) {
	switch b.Kind {
	case BusOneWire, BusI2C:
		if _, err := w.WriteU8(byte(b.Kind)); err != nil {
			return 0, err
		}
		return 1, nil
	case BusCustom:
		if _, err := w.WriteU8(byte(BusCustom)); err != nil {
			return 0, err
		}
		if _, err := w.WriteU8(b.ID); err != nil {
			return 0, err
		}
		return 2, nil
	default:
		return 0, ErrUnknownTypeIdentifier
	}
}

// ReadBus decodes a Bus from r.
func ReadBus(r Reader) (Bus, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Bus{}, err
	}
	switch BusKind(tag) {
	case BusOneWire, BusI2C:
		return Bus{Kind: BusKind(tag)}, nil
	case BusCustom:
		id, err := r.ReadU8()
		if err != nil {
			return Bus{}, err
		}
		return Bus{Kind: BusCustom, ID: id}, nil
	default:
		return Bus{}, ErrUnknownTypeIdentifier
	}
}
