package sensorproto

// PIDPathMaxDepth bounds the stack buffer RetrieveProperty uses to read a
// property-id path: deeper paths are clipped, never heap-allocated.
const PIDPathMaxDepth = 8

// Registry pairs a base property table with an optional module property
// table, and answers the two request kinds the property handling engine
// supports: list-components and retrieve-property. P is the shared
// platform context; T is the per-base-property target; M is the
// per-module-property target.
type Registry[P, T, M any] struct {
	Properties       []Property[P, T]
	Module           *ModuleID
	ModuleProperties []Property[P, M]
}

// ListComponents answers a list-components request, writing a framed
// Response followed by one entry per registered property (base, then
// module, if any). v1 selects the report-v1 listing (Format
// ValueOnly(DynListPropertyReportV1), PropertyReportV1 entries) over the v0
// listing (Format AddressOnly(PropertyId), bare PropertyId entries). It
// returns the total number of bytes written.
func (reg *Registry[P, T, M]) ListComponents(w Writer, requestID byte, v1 bool) (int, error) {
	availableBefore := w.Available()

	var format Format
	if v1 {
		format = ValueOnly(DynListPropertyReportV1Type)
	} else {
		format = AddressOnly(PropertyIDType)
	}
	if _, err := Ok(requestID, format).Write(w); err != nil {
		return 0, err
	}

	for i := range reg.Properties {
		p := &reg.Properties[i]
		if v1 {
			if _, err := ReportV1Of(p).Write(w); err != nil {
				return 0, err
			}
		} else {
			if _, err := PropertyID(p.ID).Write(w); err != nil {
				return 0, err
			}
		}
	}

	if reg.Module != nil {
		for i := range reg.ModuleProperties {
			p := &reg.ModuleProperties[i]
			localLen := len(p.ID)
			if localLen > 255-4 {
				localLen = 255 - 4
			}
			total := 4 + localLen
			if _, err := w.WriteU8(byte(total)); err != nil {
				return 0, err
			}
			prefix := [4]byte{byte(ComponentModule), reg.Module.Group, reg.Module.ID, reg.Module.Ext}
			if _, err := WriteAll(w, prefix[:]); err != nil {
				return 0, err
			}
			if _, err := WriteAll(w, p.ID[:localLen]); err != nil {
				return 0, err
			}

			if v1 {
				report := ReportV1Of(p)
				if _, err := report.WriteNoID(w); err != nil {
					return 0, err
				}
			}
		}
	}

	return availableBefore - w.Available(), nil
}

// RetrieveProperty answers a retrieve-property request. r must be
// positioned at the start of the propIDLen-byte property-id path that
// follows the request frame. On an exact id match with a present Read
// callback, it writes Ok(requestID, ValueOnly(type-hint-or-DynBytes))
// followed by the callback's payload; otherwise it writes NotAvailable.
// Matching is exact-equality only — no prefix or wildcard matching.
func (reg *Registry[P, T, M]) RetrieveProperty(
	w Writer,
	requestID byte,
	propIDLen byte,
	r Reader,
	platform *P,
	target *T,
	moduleTarget *M,
) (int, error) {
	availableBefore := w.Available()

	length := int(propIDLen)
	if length > PIDPathMaxDepth {
		length = PIDPathMaxDepth
	}
	var buf [PIDPathMaxDepth]byte
	for i := 0; i < length; i++ {
		b, err := r.ReadU8()
		if err != nil {
			return 0, err
		}
		buf[i] = b
	}
	path := buf[:length]

	if reg.Module != nil && length >= 4 &&
		path[0] == byte(ComponentModule) &&
		path[1] == reg.Module.Group &&
		path[2] == reg.Module.ID &&
		path[3] == reg.Module.Ext {
		suffix := path[4:]
		for i := range reg.ModuleProperties {
			p := &reg.ModuleProperties[i]
			if bytesEqual(p.ID, suffix) {
				if p.Read != nil {
					if err := writeRetrieveOk(w, requestID, p.TypeHint); err != nil {
						return 0, err
					}
					if _, err := p.Read(platform, moduleTarget, w); err != nil {
						return 0, err
					}
				}
				break
			}
		}
	} else {
		for i := range reg.Properties {
			p := &reg.Properties[i]
			if bytesEqual(p.ID, path) {
				if p.Read != nil {
					if err := writeRetrieveOk(w, requestID, p.TypeHint); err != nil {
						return 0, err
					}
					if _, err := p.Read(platform, target, w); err != nil {
						return 0, err
					}
				}
				break
			}
		}
	}

	if availableBefore == w.Available() {
		if _, err := NotAvailable(requestID).Write(w); err != nil {
			return 0, err
		}
	}

	return availableBefore - w.Available(), nil
}

func writeRetrieveOk(w Writer, requestID byte, typeHint *Type) error {
	t := DynBytesType
	if typeHint != nil {
		t = *typeHint
	}
	_, err := Ok(requestID, ValueOnly(t)).Write(w)
	return err
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
