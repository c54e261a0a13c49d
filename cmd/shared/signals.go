package shared

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

// SetupSignalHandling cancels the exchange on the first interrupt. A second
// signal, or an exchange that does not wind down within the grace period,
// ends the process.
func SetupSignalHandling(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 2)

	// always handle Interrupt (portable)
	sigs := []os.Signal{os.Interrupt}

	// add Unix-only signals
	if runtime.GOOS != "windows" {
		sigs = append(sigs, syscall.SIGTERM, syscall.SIGHUP)
		// a peer resetting the connection must not kill the process mid-write
		signal.Ignore(syscall.SIGPIPE)
	}

	signal.Notify(sigCh, sigs...)

	go func() {
		<-sigCh
		cancel()

		select {
		case s := <-sigCh:
			os.Exit(signalExitCode(s))
		case <-time.After(5 * time.Second):
			os.Exit(-1)
		}
	}()
}

// signalExitCode is the shell convention for a process killed by s.
func signalExitCode(s os.Signal) int {
	if ss, ok := s.(syscall.Signal); ok {
		return 128 + int(ss)
	}
	return 1
}
