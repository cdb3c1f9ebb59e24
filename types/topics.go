package types

import "safemode-go/bus"

// Bus topics shared between services.
var (
	TopicSafemodeState   = bus.T("safemode", "state")
	TopicSafemodeReport  = bus.T("safemode", "report")
	TopicSafemodeControl = bus.T("safemode", "control")
	TopicConsoleOut      = bus.T("console", "out")
	TopicConfigHeartbeat = bus.T("config", "heartbeat")
)
