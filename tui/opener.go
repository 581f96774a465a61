// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: tui/opener.go
// Summary: Hands URLs to the system browser.

package tui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// URLOpener opens a URL outside the terminal.
type URLOpener interface {
	Open(url string) error
}

// URLOpenerFunc adapts a function to URLOpener.
type URLOpenerFunc func(url string) error

// Open calls f.
func (f URLOpenerFunc) Open(url string) error { return f(url) }

// BrowserOpener launches the platform's default browser.
type BrowserOpener struct{}

// Open starts the browser without waiting for it.
func (BrowserOpener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go cmd.Wait()
	return nil
}
