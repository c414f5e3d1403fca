package sensorproto

// RequestKind identifies which of the 14 Request variants is present.
type RequestKind byte

const (
	RequestReadSpecified                RequestKind = 0x00
	RequestReadAll                      RequestKind = 0x01
	RequestReadAllOnBus                 RequestKind = 0x02
	RequestDiscoverAll                  RequestKind = 0x10
	RequestDiscoverAllOnBus             RequestKind = 0x11
	RequestSetNetworkMac                RequestKind = 0xA0
	RequestSetNetworkIPSubnetGateway    RequestKind = 0xA1
	RequestListComponents               RequestKind = 0xD0
	RequestListComponentsWithReportV1   RequestKind = 0xD1
	RequestRetrieveProperty             RequestKind = 0xFB
	RequestErrorDump                    RequestKind = 0xFC
	RequestDeviceInfo                   RequestKind = 0xFD
	RequestRetrieveNetworkConfiguration RequestKind = 0xFE
	RequestRetrieveVersionInformation   RequestKind = 0xFF
)

// Request is the tagged union of all 14 frames an initiator can send. Every
// variant carries a correlation RequestID that the matching Response echoes
// verbatim. Fields unused by the active Kind are zero.
type Request struct {
	Kind      RequestKind
	RequestID byte

	Bus Bus // ReadSpecified, ReadAllOnBus, DiscoverAllOnBus

	Mac [6]byte // SetNetworkMac

	IP, Subnet, Gateway [4]byte // SetNetworkIPSubnetGateway

	// PropIDLen is the declared length, in bytes, of the property-id path
	// that follows this frame in the same datagram. RetrieveProperty only.
	PropIDLen byte
}

// ReadSpecified builds a ReadSpecified request.
func ReadSpecified(id byte, bus Bus) Request {
	return Request{Kind: RequestReadSpecified, RequestID: id, Bus: bus}
}

// ReadAllRequest builds a ReadAll request.
func ReadAllRequest(id byte) Request {
	return Request{Kind: RequestReadAll, RequestID: id}
}

// ReadAllOnBus builds a ReadAllOnBus request.
func ReadAllOnBus(id byte, bus Bus) Request {
	return Request{Kind: RequestReadAllOnBus, RequestID: id, Bus: bus}
}

// DiscoverAll builds a DiscoverAll request.
func DiscoverAll(id byte) Request {
	return Request{Kind: RequestDiscoverAll, RequestID: id}
}

// DiscoverAllOnBus builds a DiscoverAllOnBus request.
func DiscoverAllOnBus(id byte, bus Bus) Request {
	return Request{Kind: RequestDiscoverAllOnBus, RequestID: id, Bus: bus}
}

// SetNetworkMac builds a SetNetworkMac request.
func SetNetworkMac(id byte, mac [6]byte) Request {
	return Request{Kind: RequestSetNetworkMac, RequestID: id, Mac: mac}
}

// SetNetworkIPSubnetGateway builds a SetNetworkIPSubnetGateway request.
func SetNetworkIPSubnetGateway(id byte, ip, subnet, gateway [4]byte) Request {
	return Request{
		Kind:      RequestSetNetworkIPSubnetGateway,
		RequestID: id,
		IP:        ip,
		Subnet:    subnet,
		Gateway:   gateway,
	}
}

// ListComponents builds a v0 list-components request.
func ListComponents(id byte) Request {
	return Request{Kind: RequestListComponents, RequestID: id}
}

// ListComponentsWithReportV1 builds a v1 list-components request.
func ListComponentsWithReportV1(id byte) Request {
	return Request{Kind: RequestListComponentsWithReportV1, RequestID: id}
}

// RetrieveProperty builds a retrieve-property request. propIDLen declares
// the length of the property-id path that follows this frame on the wire;
// the caller is responsible for appending those bytes after Write.
func RetrieveProperty(id byte, propIDLen byte) Request {
	return Request{Kind: RequestRetrieveProperty, RequestID: id, PropIDLen: propIDLen}
}

// ErrorDump builds an error-dump request.
func ErrorDump(id byte) Request {
	return Request{Kind: RequestErrorDump, RequestID: id}
}

// DeviceInfo builds a device-info request.
func DeviceInfo(id byte) Request {
	return Request{Kind: RequestDeviceInfo, RequestID: id}
}

// RetrieveNetworkConfiguration builds a net-config request.
func RetrieveNetworkConfiguration(id byte) Request {
	return Request{Kind: RequestRetrieveNetworkConfiguration, RequestID: id}
}

// RetrieveVersionInformation builds a version request.
func RetrieveVersionInformation(id byte) Request {
	return Request{Kind: RequestRetrieveVersionInformation, RequestID: id}
}

// Write encodes req, returning the number of bytes produced.
func (req Request) Write(w Writer) (int, error) {
	if _, err := w.WriteU8(byte(req.Kind)); err != nil {
		return 0, err
	}
	if _, err := w.WriteU8(req.RequestID); err != nil {
		return 0, err
	}
	n := 2
	switch req.Kind {
	case RequestReadSpecified, RequestReadAllOnBus, RequestDiscoverAllOnBus:
		bn, err := req.Bus.Write(w)
		if err != nil {
			return 0, err
		}
		n += bn
	case RequestReadAll, RequestDiscoverAll,
		RequestListComponents, RequestListComponentsWithReportV1,
		RequestErrorDump, RequestDeviceInfo,
		RequestRetrieveNetworkConfiguration, RequestRetrieveVersionInformation:
		// no further fields
	case RequestSetNetworkMac:
		wn, err := WriteAll(w, req.Mac[:])
		if err != nil {
			return 0, err
		}
		n += wn
	case RequestSetNetworkIPSubnetGateway:
		for _, part := range [][4]byte{req.IP, req.Subnet, req.Gateway} {
			wn, err := WriteAll(w, part[:])
			if err != nil {
				return 0, err
			}
			n += wn
		}
	case RequestRetrieveProperty:
		if _, err := w.WriteU8(req.PropIDLen); err != nil {
			return 0, err
		}
		n++
	default:
		return 0, ErrUnknownTypeIdentifier
	}
	return n, nil
}

// ReadRequest decodes a Request from r. For RequestRetrieveProperty, the
// property-id path bytes themselves are NOT consumed here; r is left
// positioned at the start of that path, per the handler's contract in
// handler.go.
func ReadRequest(r Reader) (Request, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return Request{}, err
	}
	id, err := r.ReadU8()
	if err != nil {
		return Request{}, err
	}
	kind := RequestKind(tag)
	switch kind {
	case RequestReadSpecified, RequestReadAllOnBus, RequestDiscoverAllOnBus:
		bus, err := ReadBus(r)
		if err != nil {
			return Request{}, err
		}
		return Request{Kind: kind, RequestID: id, Bus: bus}, nil
	case RequestReadAll, RequestDiscoverAll,
		RequestListComponents, RequestListComponentsWithReportV1,
		RequestErrorDump, RequestDeviceInfo,
		RequestRetrieveNetworkConfiguration, RequestRetrieveVersionInformation:
		return Request{Kind: kind, RequestID: id}, nil
	case RequestSetNetworkMac:
		var mac [6]byte
		if _, err := ReadAll(r, mac[:]); err != nil {
			return Request{}, err
		}
		return Request{Kind: kind, RequestID: id, Mac: mac}, nil
	case RequestSetNetworkIPSubnetGateway:
		var ip, subnet, gateway [4]byte
		if _, err := ReadAll(r, ip[:]); err != nil {
			return Request{}, err
		}
		if _, err := ReadAll(r, subnet[:]); err != nil {
			return Request{}, err
		}
		if _, err := ReadAll(r, gateway[:]); err != nil {
			return Request{}, err
		}
		return Request{Kind: kind, RequestID: id, IP: ip, Subnet: subnet, Gateway: gateway}, nil
	case RequestRetrieveProperty:
		propLen, err := r.ReadU8()
		if err != nil {
			return Request{}, err
		}
		return Request{Kind: kind, RequestID: id, PropIDLen: propLen}, nil
	default:
		return Request{}, ErrUnknownTypeIdentifier
	}
}
