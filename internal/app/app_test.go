package app

import (
	"net"
	"testing"
)

// fakeInterface implements networkInterface for testing
type fakeInterface struct {
	flags net.Flags
	addrs []net.Addr
}

func (f fakeInterface) Flags() net.Flags          { return f.flags }
func (f fakeInterface) Addrs() ([]net.Addr, error) { return f.addrs, nil }

// fakeProvider implements networkProvider for testing
type fakeProvider struct {
	ifaces []networkInterface
	err    error
}

func (f fakeProvider) Interfaces() ([]networkInterface, error) {
	return f.ifaces, f.err
}

func ipNet(cidr string) *net.IPNet {
	ip, n, _ := net.ParseCIDR(cidr)
	n.IP = ip
	return n
}

func TestGetPreferredIPPrivateAddress(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{
			flags: net.FlagUp,
			addrs: []net.Addr{ipNet("203.0.113.5/24"), ipNet("192.168.1.50/24")},
		},
	}}

	if got := getPreferredIP(provider); got != "192.168.1.50" {
		t.Errorf("got %q, want the private address", got)
	}
}

func TestGetPreferredIPSkipsDownAndLoopback(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{
			flags: 0, // down
			addrs: []net.Addr{ipNet("192.168.1.10/24")},
		},
		fakeInterface{
			flags: net.FlagUp | net.FlagLoopback,
			addrs: []net.Addr{ipNet("127.0.0.1/8")},
		},
		fakeInterface{
			flags: net.FlagUp,
			addrs: []net.Addr{ipNet("10.0.0.7/8")},
		},
	}}

	if got := getPreferredIP(provider); got != "10.0.0.7" {
		t.Errorf("got %q, want 10.0.0.7", got)
	}
}

func TestGetPreferredIPFallsBackToPublic(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{
			flags: net.FlagUp,
			addrs: []net.Addr{ipNet("203.0.113.5/24")},
		},
	}}

	if got := getPreferredIP(provider); got != "203.0.113.5" {
		t.Errorf("got %q, want the public address", got)
	}
}

func TestGetPreferredIPNoInterfaces(t *testing.T) {
	if got := getPreferredIP(fakeProvider{}); got != "localhost" {
		t.Errorf("got %q, want localhost", got)
	}
	if got := getPreferredIP(fakeProvider{err: net.ErrClosed}); got != "localhost" {
		t.Errorf("got %q, want localhost on error", got)
	}
}

func TestGetPreferredIPIgnoresIPv6(t *testing.T) {
	provider := fakeProvider{ifaces: []networkInterface{
		fakeInterface{
			flags: net.FlagUp,
			addrs: []net.Addr{ipNet("fd00::1/64")},
		},
	}}

	if got := getPreferredIP(provider); got != "localhost" {
		t.Errorf("got %q, want localhost", got)
	}
}

func TestIsPrivate172(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"172.16.0.1", true},
		{"172.31.255.254", true},
		{"172.15.0.1", false},
		{"172.32.0.1", false},
		{"192.168.1.1", false},
	}
	for _, tt := range tests {
		if got := isPrivate172(net.ParseIP(tt.ip)); got != tt.want {
			t.Errorf("isPrivate172(%s) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}
