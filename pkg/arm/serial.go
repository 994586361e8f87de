package arm

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// SerialChannel talks to the ESP32 servo controller: one JSON frame per
// line out, one acknowledgment line back ("ok", or "err <reason>" when
// the controller rejects a parse or range).
type SerialChannel struct {
	port    serial.Port // nil when wrapping a raw stream in tests
	rw      io.ReadWriter
	scanner *bufio.Scanner
	timeout time.Duration
}

const (
	serialBaudRate = 115200
	ackTimeout     = 2 * time.Second
)

// DialSerial opens the controller's serial port. An empty port name
// autodetects via FindPort.
func DialSerial(portName string) (*SerialChannel, error) {
	if portName == "" {
		found, err := FindPort()
		if err != nil {
			return nil, err
		}
		portName = found
	}

	port, err := serial.Open(portName, &serial.Mode{BaudRate: serialBaudRate})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", portName)
	}
	if err := port.SetReadTimeout(ackTimeout); err != nil {
		port.Close()
		return nil, errors.Wrap(err, "set read timeout")
	}

	return &SerialChannel{
		port:    port,
		rw:      port,
		scanner: bufio.NewScanner(port),
		timeout: ackTimeout,
	}, nil
}

// newSerialChannel wraps an already-open stream.
func newSerialChannel(rw io.ReadWriter) *SerialChannel {
	return &SerialChannel{
		rw:      rw,
		scanner: bufio.NewScanner(rw),
		timeout: ackTimeout,
	}
}

// Send writes one command frame and waits for the controller's
// acknowledgment. The kernel only cares whether the send succeeded, not
// what the ack carries beyond ok/err.
func (c *SerialChannel) Send(ctx context.Context, cmd Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frame, err := json.Marshal(cmd)
	if err != nil {
		return errors.Wrap(err, "encode frame")
	}
	frame = append(frame, '\n')

	if _, err := c.rw.Write(frame); err != nil {
		return errors.Wrap(err, "write frame")
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return errors.Wrap(err, "read ack")
		}
		return errors.New("no ack from controller")
	}
	ack := strings.TrimSpace(strings.ToLower(c.scanner.Text()))
	if !strings.HasPrefix(ack, "ok") {
		return errors.Errorf("controller rejected frame: %s", ack)
	}
	return nil
}

// Close closes the serial port.
func (c *SerialChannel) Close() error {
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}

// FindPort scans the system serial ports for a plausible controller.
func FindPort() (string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return "", errors.Wrap(err, "list ports")
	}

	var candidates []string
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}
		candidates = append(candidates, port)
	}
	for _, port := range candidates {
		if strings.Contains(port, "usbserial") || strings.Contains(port, "ttyUSB") ||
			strings.Contains(port, "usbmodem") || strings.Contains(port, "ttyACM") {
			return port, nil
		}
	}
	if len(candidates) > 0 {
		return candidates[0], nil
	}
	return "", errors.New("no serial ports found")
}
