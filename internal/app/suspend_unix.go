//go:build unix

package app

import "syscall"

// stopProcess stops only this process; signalling the whole process group
// would also stop a wrapper shell function and break `fg`.
var stopProcess = func() error {
	return syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

// suspendToShell returns the terminal to the shell until the job is
// continued.
func (app *Application) suspendToShell() error {
	return app.handoff(func() {
		if err := stopProcess(); err != nil {
			app.state.Status.Error = err.Error()
		}
	})
}
