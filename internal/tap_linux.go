//go:build linux && !baremetal

package internal

import (
	"errors"
	"fmt"
	"net/netip"
	"os/exec"

	"golang.org/x/sys/unix"
)

// Tap is a Linux TAP interface carrying raw Ethernet frames without FCS.
// It lets a simulated MAC exchange frames with the host network stack.
type Tap struct {
	fd   int // /dev/net/tun
	name string
}

// NewTap creates the TAP interface name. If prefix is valid the interface is
// brought up with that address using the ip command.
func NewTap(name string, prefix netip.Prefix) (*Tap, error) {
	if len(name) >= unix.IFNAMSIZ {
		return nil, errors.New("tap: name too long")
	}
	fd, err := unix.Open("/dev/net/tun", unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("tap: open tun device: %w", err)
	}
	ifr, err := unix.NewIfreq(name)
	if err != nil {
		unix.Close(fd)
		return nil, err
	}
	ifr.SetUint16(unix.IFF_TAP | unix.IFF_NO_PI)
	err = unix.IoctlIfreq(fd, unix.TUNSETIFF, ifr)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("tap: create %s: %w", name, err)
	}
	if prefix.IsValid() {
		for _, args := range [][]string{
			{"link", "set", "dev", name, "up"},
			{"addr", "add", prefix.String(), "dev", name},
		} {
			err = exec.Command("ip", args...).Run()
			if err != nil {
				unix.Close(fd)
				return nil, fmt.Errorf("tap: ip %v: %w", args, err)
			}
		}
	}
	return &Tap{fd: fd, name: name}, nil
}

// Name returns the interface name.
func (tap *Tap) Name() string { return tap.name }

// Read reads a single frame.
func (tap *Tap) Read(b []byte) (int, error) { return unix.Read(tap.fd, b) }

// Write writes a single frame.
func (tap *Tap) Write(b []byte) (int, error) { return unix.Write(tap.fd, b) }

func (tap *Tap) Close() error { return unix.Close(tap.fd) }

// MTU returns the interface MTU as seen by the host.
func (tap *Tap) MTU() (int, error) {
	sock, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return 0, fmt.Errorf("tap: socket: %w", err)
	}
	defer unix.Close(sock)
	ifr, err := unix.NewIfreq(tap.name)
	if err != nil {
		return 0, err
	}
	err = unix.IoctlIfreq(sock, unix.SIOCGIFMTU, ifr)
	if err != nil {
		return 0, err
	}
	return int(ifr.Uint32()), nil
}
