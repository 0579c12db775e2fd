package search

import "os"

// statTimes returns the modified and created instants for path in epoch
// milliseconds, best effort: 0 means unavailable. A failed stat never
// suppresses the match it belongs to.
func statTimes(path string) (modified, created int64) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, 0
	}

	return info.ModTime().UnixMilli(), createdTime(info)
}
