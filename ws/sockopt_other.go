//go:build !unix

package ws

import (
	"syscall"

	"github.com/wsbridge/wsbridge-go/logging"
)

func setReuseAddr(raw syscall.RawConn) error {
	logging.Log().Debug("SO_REUSEADDR is not supported on this platform")
	return nil
}
