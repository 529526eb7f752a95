package audit

import (
	"strings"

	"github.com/mssola/useragent"
)

type Device struct {
	Type    string
	Browser string
	OS      string
}

// ParseUserAgent reduces a User-Agent header to a device class, browser and
// OS family for the audit log.
func ParseUserAgent(raw string) Device {
	if strings.TrimSpace(raw) == "" {
		return Device{Type: "unknown", Browser: "unknown", OS: "unknown"}
	}

	ua := useragent.New(raw)
	d := Device{Browser: "unknown", OS: osFamily(ua)}
	if name, _ := ua.Browser(); name != "" {
		d.Browser = name
	}

	lower := strings.ToLower(raw)
	switch {
	case ua.Bot():
		d.Type = "bot"
	case ua.Platform() == "iPad" || strings.Contains(lower, "tablet"):
		d.Type = "tablet"
	// Android tablets drop the "Mobile" token that phones send.
	case d.OS == "Android" && !strings.Contains(lower, "mobile"):
		d.Type = "tablet"
	case ua.Mobile():
		d.Type = "mobile"
	default:
		d.Type = "desktop"
	}
	return d
}

func osFamily(ua *useragent.UserAgent) string {
	switch ua.Platform() {
	case "Windows":
		return "Windows"
	case "iPhone", "iPad", "iPod":
		return "iOS"
	case "Macintosh":
		return "macOS"
	}

	name := ua.OSInfo().Name
	switch {
	case strings.HasPrefix(name, "Android"):
		return "Android"
	case strings.HasPrefix(name, "Windows"):
		return "Windows"
	case strings.Contains(name, "Linux"):
		return "Linux"
	}
	return "unknown"
}
