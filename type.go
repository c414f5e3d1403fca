package sensorproto

// TypeKind identifies which variant of Type is present.
type TypeKind byte

const (
	TypeF32                     TypeKind = 0x00
	TypeBytes                   TypeKind = 0x01
	TypeString                  TypeKind = 0x02
	TypePropertyID              TypeKind = 0x03
	TypeDynString               TypeKind = 0x04
	TypeDynBytes                TypeKind = 0x05
	TypeDynListPropertyReportV1 TypeKind = 0xC0
	TypeU128                    TypeKind = 0xF6
	TypeI128                    TypeKind = 0xF7
	TypeU64                     TypeKind = 0xF8
	TypeI64                     TypeKind = 0xF9
	TypeU32                     TypeKind = 0xFA
	TypeI32                     TypeKind = 0xFB
	TypeU16                     TypeKind = 0xFC
	TypeI16                     TypeKind = 0xFD
	TypeU8                      TypeKind = 0xFE
	TypeI8                      TypeKind = 0xFF
)

// Type is the wire element-type tag. Bytes/String carry an inline element
// width; all other variants are fixed-shape.
type Type struct {
	Kind TypeKind
	// Size is meaningful only for TypeBytes and TypeString: it describes
	// the element width in a pair stream, not a total payload length.
	Size byte
}

// F32Type, DynBytesType, etc. are convenience constructors for the
// fixed-shape variants.
var (
	F32Type                     = Type{Kind: TypeF32}
	PropertyIDType              = Type{Kind: TypePropertyID}
	DynStringType               = Type{Kind: TypeDynString}
	DynBytesType                = Type{Kind: TypeDynBytes}
	DynListPropertyReportV1Type = Type{Kind: TypeDynListPropertyReportV1}
	U128Type                    = Type{Kind: TypeU128}
	I128Type                    = Type{Kind: TypeI128}
	U64Type                     = Type{Kind: TypeU64}
	I64Type                     = Type{Kind: TypeI64}
	U32Type                     = Type{Kind: TypeU32}
	I32Type                     = Type{Kind: TypeI32}
	U16Type                     = Type{Kind: TypeU16}
	I16Type                     = Type{Kind: TypeI16}
	U8Type                      = Type{Kind: TypeU8}
	I8Type                      = Type{Kind: TypeI8}
)

// BytesType builds a Bytes(n) type with the given element width.
func BytesType(size byte) Type {
	return Type{Kind: TypeBytes, Size: size}
}

// StringType builds a String(n) type with the given element width.
func StringType(size byte) Type {
	return Type{Kind: TypeString, Size: size}
}

// Write encodes t, returning the number of bytes produced.
func (t Type) Write(w Writer) (int, error) {
	switch t.Kind {
	case TypeBytes, TypeString:
		if _, err := w.WriteU8(byte(t.Kind)); err != nil {
			return 0, err
		}
		if _, err := w.WriteU8(t.Size); err != nil {
			return 0, err
		}
		return 2, nil
	case TypeF32, TypePropertyID, TypeDynString, TypeDynBytes,
		TypeDynListPropertyReportV1,
		TypeU128, TypeI128, TypeU64, TypeI64, TypeU32, TypeI32,
		TypeU16, TypeI16, TypeU8, TypeI8:
		if _, err := w.WriteU8(byte(t.Kind)); err != nil {
			return 0, err
		}
		return 1, nil
	default:
		return 0, ErrUnknownTypeIdentifier
	}
}

// ReadType decodes a Type from r.
func ReadType(r Reader) (Type, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Type{}, err
	}
	switch TypeKind(tag) {
	case TypeF32, TypePropertyID, TypeDynString, TypeDynBytes,
		TypeDynListPropertyReportV1,
		TypeU128, TypeI128, TypeU64, TypeI64, TypeU32, TypeI32,
		TypeU16, TypeI16, TypeU8, TypeI8:
		return Type{Kind: TypeKind(tag)}, nil
	case TypeBytes, TypeString:
		size, err := r.ReadU8()
		if err != nil {
			return Type{}, err
		}
		return Type{Kind: TypeKind(tag), Size: size}, nil
	default:
		return Type{}, ErrUnknownTypeIdentifier
	}
}
