//go:build darwin

package search

import (
	"os"
	"syscall"
	"time"
)

func createdTime(info os.FileInfo) int64 {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return time.Unix(int64(stat.Birthtimespec.Sec), int64(stat.Birthtimespec.Nsec)).UnixMilli()
}
