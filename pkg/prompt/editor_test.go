package prompt

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-websettings/pkg/panel"
	"github.com/goliatone/go-websettings/pkg/setting"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	confirms     []bool
	selects      []int
	infoMessages []string
	inputConfigs []InputConfig

	inputPos   int
	passPos    int
	confirmPos int
	selectPos  int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	s.inputConfigs = append(s.inputConfigs, cfg)
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirms) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirms[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selects) {
		return -1, errors.New("no select scripted")
	}
	val := s.selects[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

type network struct {
	ssid  *setting.Text
	pass  *setting.Password
	port  *setting.Int
	dhcp  *setting.Toggle
	mode  *setting.Option
	panel *panel.Panel
}

func newNetwork() network {
	n := network{
		ssid: setting.NewText("<b>WiFi</b> network", "ssid"),
		pass: setting.NewPassword("Password", "pass"),
		port: setting.NewInt("Port", "port"),
		dhcp: setting.NewToggle("DHCP", "dhcp"),
		mode: setting.NewOption("Mode", "mode", []string{"Station", "Access point"}),
	}
	n.ssid.Set("home")
	n.pass.Set("old")
	n.dhcp.Set(true)
	uptime := setting.NewInfo("Uptime", "uptime", func(i *setting.Info) { i.Set("5s") })
	n.panel = panel.MustNew("Network", "net",
		setting.NewNote("<p>Radio &amp; link</p>"), n.ssid, n.pass, n.port, n.dhcp, n.mode, uptime)
	return n
}

func TestCollectBuildsPostedFields(t *testing.T) {
	n := newNetwork()
	driver := &stubDriver{
		inputs:    []string{"office", "8080"},
		confirms:  []bool{true, false},
		passwords: []string{"new"},
		selects:   []int{1},
	}

	fields, err := NewEditor(WithDriver(driver)).Collect(context.Background(), n.panel)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := map[string]string{
		"net$ssid": "office",
		"net$pass": "new",
		"net$port": "8080",
		"net$mode": "Access point",
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{"== Network ==", "Radio & link", "Uptime: 5s"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info mismatch (-want +got):\n%s", diff)
	}
	if driver.inputConfigs[0].Message != "WiFi network" || driver.inputConfigs[0].Default != "home" {
		t.Fatalf("unexpected first prompt %+v", driver.inputConfigs[0])
	}
	if driver.inputConfigs[0].Validator != nil || driver.inputConfigs[1].Validator == nil {
		t.Fatalf("expected validator only on numeric prompt")
	}
}

func TestEditAppliesLikeAFormPost(t *testing.T) {
	n := newNetwork()
	driver := &stubDriver{
		inputs:   []string{"cafe", "-3"},
		confirms: []bool{false, false},
		selects:  []int{0},
	}

	if err := NewEditor(WithDriver(driver)).Edit(context.Background(), n.panel); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if n.ssid.Get() != "cafe" || n.port.Get() != -3 || n.mode.Get() != 0 {
		t.Fatalf("unexpected values %q %d %d", n.ssid.Get(), n.port.Get(), n.mode.Get())
	}
	if n.dhcp.Get() {
		t.Fatalf("expected declined toggle to turn off")
	}
	if n.pass.Get() != "old" {
		t.Fatalf("expected unchanged password, got %q", n.pass.Get())
	}
}

func TestEditAllStopsOnDone(t *testing.T) {
	n := newNetwork()
	device := panel.MustNew("Device", "dev", setting.NewText("Hostname", "hostname"))
	driver := &stubDriver{
		selects: []int{1, 2},
		inputs:  []string{"probe"},
	}

	if err := NewEditor(WithDriver(driver)).EditAll(context.Background(), []*panel.Panel{n.panel, device}); err != nil {
		t.Fatalf("edit all: %v", err)
	}
	snap := device.Snapshot()
	if diff := cmp.Diff([]panel.Entry{{Name: "hostname", Value: "probe"}}, snap); diff != "" {
		t.Fatalf("device mismatch (-want +got):\n%s", diff)
	}
	if n.ssid.Get() != "home" {
		t.Fatalf("network panel should not have been edited")
	}
}

func TestCollectPropagatesAbort(t *testing.T) {
	n := newNetwork()
	driver := &abortDriver{stubDriver: stubDriver{}}

	_, err := NewEditor(WithDriver(driver)).Collect(context.Background(), n.panel)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
	if n.ssid.Get() != "home" {
		t.Fatalf("aborted edit changed settings")
	}
}

type abortDriver struct {
	stubDriver
}

func (a *abortDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestValidatorFor(t *testing.T) {
	tests := []struct {
		kind  setting.Kind
		input string
		ok    bool
	}{
		{setting.KindInt, "-12", true},
		{setting.KindInt, "1.5", false},
		{setting.KindUint, "-1", false},
		{setting.KindUint, " 7 ", true},
		{setting.KindFloat, "1e3", true},
		{setting.KindFloat, "abc", false},
	}
	for _, tt := range tests {
		err := validatorFor(tt.kind)(tt.input)
		if (err == nil) != tt.ok {
			t.Fatalf("%s %q: unexpected error %v", tt.kind, tt.input, err)
		}
	}
	if validatorFor(setting.KindText) != nil {
		t.Fatalf("expected no validator for text")
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("  <script>alert(1)</script><b>Fast</b>\n &lt;mode&gt; ")
	if got != "Fast <mode>" {
		t.Fatalf("unexpected plain text %q", got)
	}
}
