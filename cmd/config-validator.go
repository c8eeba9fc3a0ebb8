package main

import "log"

// configValidator collects required config values by group so every
// missing setting is reported before the pool gives up on startup.
type configValidator struct {
	group   string
	values  []string
	invalid bool
}

func (v *configValidator) requireValue(value string, label string) {
	if value == "" {
		log.Printf("[VALIDATE] %s: missing %s", v.group, label)
		v.invalid = true
		return
	}

	v.values = append(v.values, value)
}

func (v *configValidator) Values() []string {
	return v.values
}

func (v *configValidator) Invalid() bool {
	return v.invalid
}
