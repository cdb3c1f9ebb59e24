package safemode

import "time"

// Hooks for the external test package.

func (s *Securer) SetSleep(fn func(time.Duration)) { s.sleep = fn }

func (s *Securer) SecurePin(pin int, pull Pull, pulled bool) { s.securePin(pin, pull, pulled) }
