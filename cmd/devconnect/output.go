package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/devconnect-io/devconnect/pkg/client"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorBold  = "\033[1m"
)

func colorize(color, text string) string {
	if noColor {
		return text
	}
	return color + text + colorReset
}

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorGreen, "✓ "+msg))
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, colorize(colorRed, "✗ "+msg))
}

// printAlerts shows the notifications an action produced. Expiry is
// irrelevant here, the process exits right after.
func printAlerts(alerts *client.AlertQueue) {
	for _, a := range alerts.Alerts() {
		if a.Severity == client.SeverityDanger {
			printError("%s", a.Msg)
		} else {
			printSuccess("%s", a.Msg)
		}
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
