// cmd/blink/main.go
//
// Blink an LED wired to a header pin. Assumes the anode sits on the chosen
// physical pin, with a resistor in series.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"c2gpio-go/device"
	"c2gpio-go/pinmap"
)

func main() {
	phy := flag.Int("pin", 7, "physical header position of the LED pin")
	interval := flag.Duration("interval", 500*time.Millisecond, "time between level changes")
	flag.Parse()

	id, ok := pinmap.FromPhysical(*phy)
	if !ok {
		slog.Error("no GPIO at physical position", "pin", *phy)
		os.Exit(1)
	}

	dev, err := device.Open()
	if err != nil {
		slog.Error("open gpio device", "err", err)
		os.Exit(1)
	}
	defer dev.Close()

	led, err := dev.OutputPin(id)
	if err != nil {
		slog.Error("lease output pin", "pin", id.String(), "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := led.Close(); err != nil {
			slog.Error("release pin", "pin", id.String(), "err", err)
		}
	}()

	for {
		led.Set(device.High)
		time.Sleep(*interval)
		led.Set(device.Low)
		time.Sleep(*interval)
	}
}
