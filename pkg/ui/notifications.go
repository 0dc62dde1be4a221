package ui

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Notifier sends a desktop notification when a long scrape finishes. It
// stays silent unless enabled and on platforms it has no sender for;
// delivery failures are ignored because a missing notification daemon must
// never affect the run.
type Notifier struct {
	enabled bool
	send    func(title, message string) error
}

// NewNotifier creates a Notifier for the current platform.
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: platformSender()}
}

// Notify delivers a desktop notification if the notifier is enabled.
func (n *Notifier) Notify(title, message string) {
	if !n.enabled || n.send == nil {
		return
	}
	_ = n.send(title, message)
}

func platformSender() func(title, message string) error {
	switch runtime.GOOS {
	case "linux":
		return func(title, message string) error {
			return exec.Command("notify-send", title, message).Run()
		}
	case "darwin":
		return func(title, message string) error {
			script := fmt.Sprintf(`display notification %q with title %q`, message, title)
			return exec.Command("osascript", "-e", script).Run()
		}
	case "windows":
		return func(title, message string) error {
			script := fmt.Sprintf(toastScript, title, message)
			return exec.Command("powershell", "-NoProfile", "-NonInteractive", "-Command", script).Run()
		}
	}
	return nil
}

// toastScript raises a toast via the WinRT notification API. The two %s
// verbs are the title and message lines.
const toastScript = `
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$xml = @"
<toast><visual><binding template="ToastText02">
  <text id="1">%s</text>
  <text id="2">%s</text>
</binding></visual></toast>
"@
$doc = [Windows.Data.Xml.Dom.XmlDocument]::new()
$doc.LoadXml($xml)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("redscraper").Show(
  [Windows.UI.Notifications.ToastNotification]::new($doc))
`
