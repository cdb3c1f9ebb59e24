package main

import (
	"bytes"
	"fmt"
	"io"
)

// CommandByte maps a command name to the single console key the firmware
// understands.
func CommandByte(name string) (byte, error) {
	switch name {
	case "status":
		return 's', nil
	case "verbosity":
		return 'v', nil
	case "reset":
		return 'r', nil
	case "help":
		return 'h', nil
	default:
		return 0, fmt.Errorf("unknown command %q (want status, verbosity, reset or help)", name)
	}
}

// Stream copies console output from the board to w until EOF, normalizing
// the firmware's CRLF line endings to the host convention. Read timeouts
// surface as zero-byte reads from tarm/serial and are simply retried.
func Stream(r io.Reader, w io.Writer) error {
	buf := make([]byte, 256)
	pending := false // trailing CR held back across reads
	for {
		n, err := r.Read(buf)
		chunk := buf[:n]
		if pending {
			chunk = append([]byte{'\r'}, chunk...)
			pending = false
		}
		if err == nil && len(chunk) > 0 && chunk[len(chunk)-1] == '\r' {
			chunk = chunk[:len(chunk)-1]
			pending = true
		}
		if len(chunk) > 0 {
			out := bytes.ReplaceAll(chunk, []byte("\r\n"), []byte("\n"))
			if _, werr := w.Write(out); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
