//go:build !linux || baremetal

package internal

import (
	"errors"
	"net/netip"
)

type Tap struct{}

func NewTap(name string, prefix netip.Prefix) (*Tap, error) { return nil, errors.ErrUnsupported }

func (tap *Tap) Name() string                { return "" }
func (tap *Tap) Read(b []byte) (int, error)  { return 0, errors.ErrUnsupported }
func (tap *Tap) Write(b []byte) (int, error) { return 0, errors.ErrUnsupported }
func (tap *Tap) Close() error                { return errors.ErrUnsupported }
func (tap *Tap) MTU() (int, error)           { return 0, errors.ErrUnsupported }
