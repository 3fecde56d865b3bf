package platform

import "time"

// DefaultAppName identifies the sender to notification daemons.
const DefaultAppName = "KidsPaint"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is reported as the sending application. Empty means
	// DefaultAppName.
	AppName string
	// IconPath, when non-empty, points to an image the notification center
	// should show next to the text.
	IconPath string
	// Timeout is how long the notification stays up. Zero lets the server
	// decide.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
