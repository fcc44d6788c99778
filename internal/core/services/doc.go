// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services never talk to vendor SDKs directly; every external call goes
// through a driven port so tests can substitute it.
package services
