//go:build linux || darwin

package ttycat

import (
	"fmt"
	"strconv"

	"golang.org/x/sys/unix"
)

// BaudRate is a nominal line speed in symbols per second.
type BaudRate int

func (b BaudRate) Int() int {
	return int(b)
}

// Speed is the platform termios speed code for a BaudRate (one of unix.B*).
type Speed uint32

const (
	Baud50     BaudRate = 50
	Baud75     BaudRate = 75
	Baud110    BaudRate = 110
	Baud134    BaudRate = 134
	Baud150    BaudRate = 150
	Baud200    BaudRate = 200
	Baud300    BaudRate = 300
	Baud600    BaudRate = 600
	Baud1200   BaudRate = 1200
	Baud1800   BaudRate = 1800
	Baud2400   BaudRate = 2400
	Baud4800   BaudRate = 4800
	Baud9600   BaudRate = 9600
	Baud19200  BaudRate = 19200
	Baud38400  BaudRate = 38400
	Baud57600  BaudRate = 57600
	Baud115200 BaudRate = 115200
	Baud230400 BaudRate = 230400
)

type baudEntry struct {
	rate  BaudRate
	speed Speed
}

// baudTable holds no duplicate rates, so scan order does not matter.
var baudTable = [...]baudEntry{
	{Baud50, unix.B50},
	{Baud75, unix.B75},
	{Baud110, unix.B110},
	{Baud134, unix.B134},
	{Baud150, unix.B150},
	{Baud200, unix.B200},
	{Baud300, unix.B300},
	{Baud600, unix.B600},
	{Baud1200, unix.B1200},
	{Baud1800, unix.B1800},
	{Baud2400, unix.B2400},
	{Baud4800, unix.B4800},
	{Baud9600, unix.B9600},
	{Baud19200, unix.B19200},
	{Baud38400, unix.B38400},
	{Baud57600, unix.B57600},
	{Baud115200, unix.B115200},
	{Baud230400, unix.B230400},
}

// Resolve returns the speed code for rate, or an error wrapping
// ErrUnsupportedBaudRate when rate is not in the supported table.
func Resolve(rate int) (Speed, error) {
	for _, e := range baudTable {
		if e.rate.Int() == rate {
			return e.speed, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBaudRate, rate)
}

// ParseBaudRate parses a decimal rate as given on a command line and resolves it.
func ParseBaudRate(s string) (Speed, error) {
	rate, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedBaudRate, s)
	}
	return Resolve(rate)
}

// SupportedBaudRates lists the accepted rates in ascending order.
func SupportedBaudRates() []BaudRate {
	rates := make([]BaudRate, 0, len(baudTable))
	for _, e := range baudTable {
		rates = append(rates, e.rate)
	}
	return rates
}
