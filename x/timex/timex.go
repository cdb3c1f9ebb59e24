package timex

import "time"

var bootAt = time.Now()

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// UptimeSeconds returns whole seconds since process start.
func UptimeSeconds() int64 { return int64(time.Since(bootAt) / time.Second) }
