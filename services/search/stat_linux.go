//go:build linux

package search

import (
	"os"
	"syscall"
	"time"
)

// Linux exposes no birth time through os.Stat; inode change time is the
// closest available stand-in.
func createdTime(info os.FileInfo) int64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec)).UnixMilli()
}
