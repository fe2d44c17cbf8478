// Package autostart registers the application to launch at user login.
package autostart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// Manager enables, disables and queries launch at login.
type Manager interface {
	IsEnabled() (bool, error)
	Enable() error
	Disable() error
}

// Entry describes what the OS launches at login.
type Entry struct {
	// ID is the reverse-DNS application id; it names the entry.
	ID   string
	Name string
	Exe  string
	Args []string
}

// ErrNotSupported is returned on platforms without a login item mechanism.
var ErrNotSupported = errors.New("autostart not supported on this platform")

// New returns the Manager for the current platform.
func New(e Entry) Manager {
	return newPlatformManager(e)
}

// commandLine quotes exe and args for a desktop entry or a Run value.
func commandLine(exe string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, quote(exe))
	for _, a := range args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"\\") {
		return s
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func desktopEntry(e Entry) string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", e.Name)
	fmt.Fprintf(&b, "Exec=%s\n", commandLine(e.Exe, e.Args))
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.String()
}

func launchAgentPlist(e Entry) string {
	esc := func(s string) string {
		var buf bytes.Buffer
		_ = xml.EscapeText(&buf, []byte(s))
		return buf.String()
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString(`<plist version="1.0">` + "\n<dict>\n")
	fmt.Fprintf(&b, "  <key>Label</key>\n  <string>%s</string>\n", esc(e.ID))
	b.WriteString("  <key>ProgramArguments</key>\n  <array>\n")
	for _, a := range append([]string{e.Exe}, e.Args...) {
		fmt.Fprintf(&b, "    <string>%s</string>\n", esc(a))
	}
	b.WriteString("  </array>\n")
	b.WriteString("  <key>RunAtLoad</key>\n  <true/>\n")
	b.WriteString("</dict>\n</plist>\n")
	return b.String()
}
