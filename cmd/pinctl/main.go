// cmd/pinctl/main.go
//
// One-shot pin control:
//
//	pinctl -pin 7 get
//	pinctl -pin 7 set high
//	pinctl list
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"c2gpio-go/device"
	"c2gpio-go/pinmap"
)

func main() {
	pin := flag.String("pin", "", "physical header position (e.g. 7 or phy7)")
	flag.Parse()

	if flag.Arg(0) == "list" {
		list()
		return
	}

	id, err := pinmap.Parse(*pin)
	if err != nil {
		slog.Error("bad pin", "err", err)
		os.Exit(1)
	}

	dev, err := device.Open()
	if err != nil {
		slog.Error("open gpio device", "err", err)
		os.Exit(1)
	}
	defer dev.Close()

	switch cmd := flag.Arg(0); cmd {
	case "get":
		if err := get(dev, id); err != nil {
			slog.Error("get", "pin", id.String(), "err", err)
			os.Exit(1)
		}
	case "set":
		if err := set(dev, id, flag.Arg(1)); err != nil {
			slog.Error("set", "pin", id.String(), "err", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "usage: pinctl [-pin N] get|set high|low  or  pinctl list\n")
		os.Exit(2)
	}
}

func get(dev *device.Device, id pinmap.PinID) error {
	in, err := dev.InputPin(id)
	if err != nil {
		return err
	}
	l := in.Read()
	if err := in.Close(); err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", id, l)
	return nil
}

func set(dev *device.Device, id pinmap.PinID, level string) error {
	var l device.Level
	switch level {
	case "high", "1":
		l = device.High
	case "low", "0":
		l = device.Low
	default:
		return fmt.Errorf("bad level %q (want high or low)", level)
	}
	out, err := dev.OutputPin(id)
	if err != nil {
		return err
	}
	out.Set(l)
	return out.Close()
}

func list() {
	for _, id := range pinmap.All() {
		phy, _ := pinmap.Physical(id)
		fmt.Printf("phy%-3d id %d\n", phy, int(id))
	}
}
