// Package platform wraps the host desktop's notification service.
package platform

import "time"

// AppName is reported to notification centres as the sending application.
const AppName = "shapepad"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file shown next to the
	// message where the notification centre supports it.
	IconPath string
	// Timeout is how long the message stays visible. Zero lets the server
	// decide.
	Timeout time.Duration
}

func (o Options) expireMillis() int32 {
	if o.Timeout <= 0 {
		return -1
	}
	return int32(o.Timeout / time.Millisecond)
}
