package proxyprotocol

import (
	"net"

	proxyproto "github.com/pires/go-proxyproto"
)

// newAddr returns the net.Addr described by an address taken from a PROXY
// protocol header.
func newAddr(afp proxyproto.AddressFamilyAndProtocol, ip net.IP, port uint16) net.Addr {
	switch {
	case afp.IsUnix():
		network := "unix"
		if !afp.IsStream() {
			network = "unixgram"
		}
		return &net.UnixAddr{Net: network, Name: ip.String()}
	case !afp.IsStream() && (afp.IsIPv4() || afp.IsIPv6()):
		return &net.UDPAddr{IP: ip, Port: int(port)}
	default:
		return &net.TCPAddr{IP: ip, Port: int(port)}
	}
}
