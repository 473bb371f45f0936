// Package ttycat bridges a serial tty to an output stream.
//
// Open puts a character device into raw 8N1 mode at one of the classic
// termios speeds (see SupportedBaudRates), and a Bridge then copies every
// byte the device delivers to an io.Writer, unmodified and in arrival order:
//
//	speed, err := ttycat.Resolve(115200)
//	port, err := ttycat.Open("/dev/ttyUSB0", speed)
//	bridge, err := ttycat.NewBridge(port, os.Stdout)
//	err = bridge.Run(ctx)
//
// The device is read through the Go runtime poller with a per-read deadline,
// so Run returns promptly once its context is cancelled.
package ttycat
