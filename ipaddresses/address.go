// Package ipaddresses parses the address lists taken by the @ipMatch operator.
package ipaddresses

import (
	"fmt"
	"net/netip"
	"strings"

	"go.uber.org/multierr"
)

const errInvalidIPAddrFmt = "invalid IP address: %s"
const errInvalidCIDRFmt = "invalid CIDR notation: %s"

// ParseIPAddress parses an IPv4 address in dotted octet notation or an IPv6 address.
// Abbreviated IPv4 forms such as "192.168.1" are rejected.
func ParseIPAddress(ipAddr string) (netip.Addr, error) {
	ip, err := netip.ParseAddr(ipAddr)
	if err != nil || ip.Zone() != "" {
		return netip.Addr{}, fmt.Errorf(errInvalidIPAddrFmt, ipAddr)
	}
	return ip, nil
}

// ParseCIDR parses an address range in CIDR notation. Host bits are cleared, so "10.1.0.0/8" is 10.0.0.0/8.
func ParseCIDR(cidr string) (netip.Prefix, error) {
	addr, bits, ok := strings.Cut(cidr, "/")
	if !ok || strings.Contains(bits, "/") {
		return netip.Prefix{}, fmt.Errorf(errInvalidCIDRFmt, cidr)
	}

	if _, err := ParseIPAddress(addr); err != nil {
		return netip.Prefix{}, fmt.Errorf(errInvalidCIDRFmt, cidr)
	}

	p, err := netip.ParsePrefix(cidr)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf(errInvalidCIDRFmt, cidr)
	}
	return p.Masked(), nil
}

// ParseMatchList parses the comma separated addresses and CIDR ranges of an @ipMatch argument.
// A plain address becomes a single address range. Every bad entry is reported.
func ParseMatchList(list string) (ranges []netip.Prefix, err error) {
	for _, entry := range strings.Split(list, ",") {
		entry = strings.TrimSpace(entry)

		if !strings.Contains(entry, "/") {
			ip, perr := ParseIPAddress(entry)
			if perr != nil {
				err = multierr.Append(err, perr)
				continue
			}
			ranges = append(ranges, netip.PrefixFrom(ip, ip.BitLen()))
			continue
		}

		p, perr := ParseCIDR(entry)
		if perr != nil {
			err = multierr.Append(err, perr)
			continue
		}
		ranges = append(ranges, p)
	}

	if err != nil {
		return nil, err
	}
	return ranges, nil
}
