// safemon is the host-side companion for a board running the safe mode
// firmware. It opens the board's USB serial console, streams the firmware's
// output to stdout, and can inject one of the single-key console commands.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"github.com/tarm/serial"
)

var (
	portName string
	baudRate int
	logLevel string
	sendCmd  string
	rootCmd  *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "safemon",
		Short: "Monitor a board running the safe mode firmware",
		Long: `safemon attaches to the USB serial console of a board running the
safe mode firmware, streams its output, and can send the single-key
console commands (status, verbosity, reset, help).`,
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&portName, "port", "p", "", "Serial device (e.g. /dev/ttyACM0) (required)")
	rootCmd.Flags().IntVarP(&baudRate, "baud", "b", 115200, "Baud rate (USB CDC ignores this)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().StringVar(&sendCmd, "send", "", "Send one command before streaming (status, verbosity, reset, help)")

	if err := rootCmd.MarkFlagRequired("port"); err != nil {
		panic(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "safemon",
		Level: hclog.LevelFromString(logLevel),
	})

	var key byte
	if sendCmd != "" {
		b, err := CommandByte(sendCmd)
		if err != nil {
			return err
		}
		key = b
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        portName,
		Baud:        baudRate,
		ReadTimeout: 100 * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", portName, err)
	}
	defer port.Close()
	logger.Info("attached", "port", portName, "baud", baudRate)

	if key != 0 {
		if _, err := port.Write([]byte{key}); err != nil {
			return fmt.Errorf("send %q: %w", sendCmd, err)
		}
		logger.Debug("command sent", "command", sendCmd)
	}

	if err := Stream(port, os.Stdout); err != nil {
		return fmt.Errorf("stream: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
