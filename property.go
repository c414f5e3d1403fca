package sensorproto

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ComponentRoot is the top-level namespace byte of a PropertyID path.
type ComponentRoot byte

const (
	ComponentDevice   ComponentRoot = 0x10
	ComponentSystem   ComponentRoot = 0x20
	ComponentPlatform ComponentRoot = 0x30
	ComponentModule   ComponentRoot = 0x40
)

// Path-builder constants for the concrete sub-components devices expose.
// These are address-space vocabulary, not device drivers: building
// []byte{byte(ComponentDevice), DeviceCpu, CpuID} addresses a CPU id
// property; actually reading a CPU id register is the device's concern.
const (
	DeviceCpu       byte = 0x00
	DeviceFrequency byte = 0x01
	DeviceUptime    byte = 0x02

	CpuID           byte = 0x00
	CpuImplementer  byte = 0x01
	CpuVariant      byte = 0x02
	CpuPartNumber   byte = 0x03
	CpuRevision     byte = 0x04

	PlatformMeta        byte = 0x00
	PlatformEeeProm     byte = 0x10
	PlatformNetwork     byte = 0x11
	PlatformTemperature byte = 0x12
	PlatformSntp        byte = 0x13

	NetworkMac     byte = 0x10
	NetworkIP      byte = 0x11
	NetworkSubnet  byte = 0x12
	NetworkGateway byte = 0x13

	TemperatureValue byte = 0x00

	SntpCurrentTimeMillis byte = 0x00
	SntpLastOffsetMillis  byte = 0x01
	SntpLastUpdateMillis  byte = 0x02
)

// CpuIDPath returns the canonical [Device, Cpu, id-sub-component] path for
// a CPU property, e.g. CpuIDPath(CpuID) addresses the CPU identifier.
func CpuIDPath(cpuComponent byte) []byte {
	return []byte{byte(ComponentDevice), DeviceCpu, cpuComponent}
}

// ModuleID identifies a pluggable subsystem whose properties live under the
// Module component root. A module's properties are addressed on the wire
// as [Module, group, id, ext, ...local suffix].
type ModuleID struct {
	Group byte
	ID    byte
	Ext   byte
}

// PropertyID is a hierarchical, length-prefixed byte path addressing a
// readable/writable attribute. Paths longer than 255 bytes are clipped by
// Write, never by construction.
type PropertyID []byte

// Write encodes id as a 1-byte length prefix followed by up to 255 path
// bytes.
func (id PropertyID) Write(w Writer) (int, error) {
	n := len(id)
	if n > 255 {
		n = 255
	}
	if _, err := w.WriteU8(byte(n)); err != nil {
		return 0, err
	}
	wn, err := WriteAll(w, id[:n])
	if err != nil {
		return 0, err
	}
	return 1 + wn, nil
}

// ReadPropertyID decodes a length-prefixed PropertyID from r.
func ReadPropertyID(r Reader) (PropertyID, error) {
	length, err := r.ReadU8()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := ReadAll(r, buf); err != nil {
		return nil, err
	}
	return PropertyID(buf), nil
}

// ComplexityKind identifies which variant of QueryComplexity is present.
type ComplexityKind byte

const (
	ComplexityUnknown ComplexityKind = 0x00
	ComplexityLow     ComplexityKind = 0x10
	ComplexityHigh    ComplexityKind = 0x20
)

// QueryComplexity is a cost hint annotating a property. EstimatedMillis is
// 0 when unspecified (meaningless for ComplexityUnknown).
type QueryComplexity struct {
	Kind            ComplexityKind
	EstimatedMillis uint16
}

// UnknownComplexity is the zero-information cost hint.
var UnknownComplexity = QueryComplexity{Kind: ComplexityUnknown}

// LowComplexity builds a Low hint, optionally carrying an estimate in
// milliseconds (0 means unspecified).
func LowComplexity(estimatedMillis uint16) QueryComplexity {
	return QueryComplexity{Kind: ComplexityLow, EstimatedMillis: estimatedMillis}
}

// HighComplexity builds a High hint, optionally carrying an estimate in
// milliseconds (0 means unspecified).
func HighComplexity(estimatedMillis uint16) QueryComplexity {
	return QueryComplexity{Kind: ComplexityHigh, EstimatedMillis: estimatedMillis}
}

// Write encodes q, returning the number of bytes produced.
func (q QueryComplexity) Write(w Writer) (int, error) {
	switch q.Kind {
	case ComplexityUnknown:
		if _, err := w.WriteU8(byte(ComplexityUnknown)); err != nil {
			return 0, err
		}
		return 1, nil
	case ComplexityLow, ComplexityHigh:
		if _, err := w.WriteU8(byte(q.Kind)); err != nil {
			return 0, err
		}
		millis := [2]byte{byte(q.EstimatedMillis >> 8), byte(q.EstimatedMillis)}
		if _, err := WriteAll(w, millis[:]); err != nil {
			return 0, err
		}
		return 3, nil
	default:
		return 0, ErrUnknownTypeIdentifier
	}
}

// ReadQueryComplexity decodes a QueryComplexity from r.
func ReadQueryComplexity(r Reader) (QueryComplexity, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return QueryComplexity{}, err
	}
	switch ComplexityKind(tag) {
	case ComplexityUnknown:
		return QueryComplexity{Kind: ComplexityUnknown}, nil
	case ComplexityLow, ComplexityHigh:
		var millis [2]byte
		if _, err := ReadAll(r, millis[:]); err != nil {
			return QueryComplexity{}, err
		}
		return QueryComplexity{
			Kind:            ComplexityKind(tag),
			EstimatedMillis: uint16(millis[0])<<8 | uint16(millis[1]),
		}, nil
	default:
		return QueryComplexity{}, ErrUnknownTypeIdentifier
	}
}

// Property is a static registry entry addressing one attribute. P is the
// platform context shared by every property; T is the target specific to
// this one. Read/Write are nil when the property doesn't support that
// direction.
type Property[P, T any] struct {
	ID          []byte
	TypeHint    *Type
	Description *string
	Complexity  QueryComplexity
	Read        func(platform *P, target *T, w Writer) (int, error)
	Write       func(platform *P, target *T, r Reader) (int, error)
}

// PropertyReportV1 is the self-describing record used to answer
// list-components in report-v1 mode.
type PropertyReportV1 struct {
	ID          []byte
	TypeHint    *Type
	Description *string
	Complexity  QueryComplexity
	ReadFlag    bool
	WriteFlag   bool
}

// ReportV1Of builds a PropertyReportV1 describing p.
func ReportV1Of[P, T any](p *Property[P, T]) PropertyReportV1 {
	return PropertyReportV1{
		ID:          p.ID,
		TypeHint:    p.TypeHint,
		Description: p.Description,
		Complexity:  p.Complexity,
		ReadFlag:    p.Read != nil,
		WriteFlag:   p.Write != nil,
	}
}

const (
	reportHeaderTypeHint    byte = 1 << 7
	reportHeaderDescription byte = 1 << 6
	reportHeaderRead        byte = 1 << 5
	reportHeaderWrite       byte = 1 << 4
)

// Write encodes the full report: id length-prefix, then WriteNoID.
func (rep PropertyReportV1) Write(w Writer) (int, error) {
	idLen := len(rep.ID)
	if idLen > 255 {
		idLen = 255
	}
	if _, err := w.WriteU8(byte(idLen)); err != nil {
		return 0, err
	}
	n, err := WriteAll(w, rep.ID[:idLen])
	if err != nil {
		return 0, err
	}
	bn, err := rep.WriteNoID(w)
	if err != nil {
		return 0, err
	}
	return 1 + n + bn, nil
}

// WriteNoID encodes the feature header, optional type hint, optional
// description, and complexity — everything but the id itself. Used by the
// list-components v1 responder for module properties, whose id is a
// synthetic prefix the responder builds itself.
func (rep PropertyReportV1) WriteNoID(w Writer) (int, error) {
	header := byte(0)
	if rep.TypeHint != nil {
		header |= reportHeaderTypeHint
	}
	if rep.Description != nil {
		header |= reportHeaderDescription
	}
	if rep.ReadFlag {
		header |= reportHeaderRead
	}
	if rep.WriteFlag {
		header |= reportHeaderWrite
	}
	if _, err := w.WriteU8(header); err != nil {
		return 0, err
	}
	n := 1

	if rep.TypeHint != nil {
		tn, err := rep.TypeHint.Write(w)
		if err != nil {
			return 0, err
		}
		n += tn
	}

	if rep.Description != nil {
		desc := *rep.Description
		descLen := len(desc)
		if descLen > 255 {
			descLen = 255
		}
		desc = desc[:descLen]
		if _, err := w.WriteU8(byte(descLen)); err != nil {
			return 0, err
		}
		dn, err := WriteAll(w, []byte(desc))
		if err != nil {
			return 0, err
		}
		n += 1 + dn
	}

	cn, err := rep.Complexity.Write(w)
	if err != nil {
		return 0, err
	}
	n += cn

	return n, nil
}

// ReadPropertyReportV1 decodes a full PropertyReportV1 (id + WriteNoID
// fields) from r. Descriptions are decoded as lossy UTF-8: invalid byte
// sequences become the Unicode replacement character rather than failing
// the read.
func ReadPropertyReportV1(r Reader) (PropertyReportV1, error) {
	idLen, err := r.ReadU8()
	if err != nil {
		return PropertyReportV1{}, err
	}
	id := make([]byte, idLen)
	if _, err := ReadAll(r, id); err != nil {
		return PropertyReportV1{}, err
	}

	header, err := r.ReadU8()
	if err != nil {
		return PropertyReportV1{}, err
	}

	rep := PropertyReportV1{
		ID:        id,
		ReadFlag:  header&reportHeaderRead != 0,
		WriteFlag: header&reportHeaderWrite != 0,
	}

	if header&reportHeaderTypeHint != 0 {
		t, err := ReadType(r)
		if err != nil {
			return PropertyReportV1{}, err
		}
		rep.TypeHint = &t
	}

	if header&reportHeaderDescription != 0 {
		descLen, err := r.ReadU8()
		if err != nil {
			return PropertyReportV1{}, err
		}
		raw := make([]byte, descLen)
		if _, err := ReadAll(r, raw); err != nil {
			return PropertyReportV1{}, err
		}
		desc := toValidUTF8Lossy(raw)
		rep.Description = &desc
	}

	complexity, err := ReadQueryComplexity(r)
	if err != nil {
		return PropertyReportV1{}, err
	}
	rep.Complexity = complexity

	return rep, nil
}

// toValidUTF8Lossy decodes raw as UTF-8, substituting the replacement
// character for any invalid sequence, mirroring the original
// String::from_utf8_lossy used by the std-mode report decoder.
func toValidUTF8Lossy(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var b strings.Builder
	b.Grow(len(raw))
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		b.WriteRune(r)
		raw = raw[size:]
	}
	return b.String()
}

// IDFormatted renders the report's id path as colon-separated hex bytes,
// e.g. "10:00:03". Host/debug tooling only — no wire weight.
func (rep PropertyReportV1) IDFormatted() string {
	parts := make([]string, len(rep.ID))
	for i, b := range rep.ID {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ":")
}

func (rep PropertyReportV1) String() string {
	return rep.IDFormatted()
}
