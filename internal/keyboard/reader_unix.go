//go:build !windows

package keyboard

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// unixSource reads raw bytes from stdin using a poll-with-timeout loop,
// a read-with-deadline loop over a raw-mode file descriptor.
type unixSource struct {
	fd      int
	file    *os.File
	oldState *term.State
}

func newPlatformSource() (byteSource, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, ErrTerminalUnavailable
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, ErrTerminalUnavailable
	}
	return &unixSource{fd: fd, file: os.Stdin, oldState: state}, nil
}

func (s *unixSource) Close() error {
	if s.oldState == nil {
		return nil
	}
	return term.Restore(s.fd, s.oldState)
}

func (s *unixSource) ReadByte(timeout time.Duration) (byte, bool, error) {
	pollTimeout := int(timeout / time.Millisecond)
	if timeout < 0 {
		pollTimeout = -1
	}
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, pollTimeout)
	if err != nil {
		if err == unix.EINTR {
			return 0, false, nil
		}
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	var buf [1]byte
	read, err := s.file.Read(buf[:])
	if err != nil || read == 0 {
		return 0, false, err
	}
	return buf[0], true, nil
}
