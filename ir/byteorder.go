package ir

import (
	"encoding/binary"

	"github.com/vishvananda/netlink/nl"
)

// defaultByteOrder resolves the wire byte-order tag a scalar attribute
// carries when its YAML entry has no explicit `byte-order:` check: the
// kernel's real nlattr payloads are host-order unless
// NLA_F_NET_BYTEORDER is set, so absent an explicit tag the default
// tracks the build host's native order rather than always being
// little-endian.
func defaultByteOrder() string {
	if nl.NativeEndian() == binary.BigEndian {
		return "big-endian"
	}
	return ""
}
