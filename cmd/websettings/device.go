package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/goliatone/go-websettings/pkg/panel"
	"github.com/goliatone/go-websettings/pkg/setting"
)

// device is the demo device behind the binary.
type device struct {
	startedAt time.Time
	panels    []*panel.Panel
	offset    *setting.Float
}

var timezones = []string{"UTC", "Europe/London", "Europe/Berlin", "America/New_York", "America/Los_Angeles", "Asia/Tokyo"}

func newDevice(now time.Time) *device {
	d := &device{startedAt: now}

	ssid := setting.NewText("WiFi network name", "ssid")
	wifiPass := setting.NewPassword("WiFi password", "wifipass")
	dhcp := setting.NewToggle("Obtain address with DHCP", "dhcp")
	dhcp.Set(true)
	address := setting.NewText("Static address", "address")
	mode := setting.NewOption("WiFi mode", "mode", []string{"Station", "Access point", "Station + access point"})

	network := panel.MustNew("Network", "network",
		setting.NewNote("<p>Changes apply after a reboot.</p>"),
		ssid, wifiPass, dhcp, address, mode,
	)

	hostname := setting.NewText("Hostname", "hostname")
	hostname.Set(defaultHostname())
	port := setting.NewUint("HTTP port", "port")
	port.Set(8080)
	tz := setting.NewOption("Time zone", "timezone", timezones)
	uptime := setting.NewInfo("Uptime", "uptime", func(i *setting.Info) {
		i.Set(time.Since(d.startedAt).Truncate(time.Second).String())
	})
	goroutines := setting.NewInfo("Goroutines", "goroutines", func(i *setting.Info) {
		i.Set(fmt.Sprint(runtime.NumGoroutine()))
	})

	devicePanel := panel.MustNew("Device", "device", hostname, port, tz, uptime, goroutines)

	enabled := setting.NewToggle("Sampling enabled", "enabled")
	enabled.Set(true)
	interval := setting.NewUint("Sample interval (s)", "interval")
	interval.Set(30)
	d.offset = setting.NewFloat("Calibration offset", "offset")
	threshold := setting.NewInt("Alarm threshold", "threshold")
	threshold.Set(-5)
	reading := setting.NewInfo("Last reading", "reading", func(i *setting.Info) {
		i.Set(fmt.Sprintf("%.2f", 21.5+d.offset.Get()))
	})

	sensor := panel.MustNew("Sensor", "sensor", enabled, interval, d.offset, threshold, reading)

	d.panels = []*panel.Panel{network, devicePanel, sensor}
	return d
}

func defaultHostname() string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return "websettings"
}
