package util

import (
	"strconv"
	"strings"
)

// sizeUnits lists the suffixes ParseSize understands, largest first so
// "MB" is never matched as a bare "B".
var sizeUnits = []struct {
	suffix string
	bytes  int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize converts a human-readable size such as "10MB" or "512KB" into
// bytes. Plain numbers are taken as bytes. Empty, negative, or unparseable
// input yields defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	multiplier := int64(1)
	for _, unit := range sizeUnits {
		if strings.HasSuffix(s, unit.suffix) {
			multiplier = unit.bytes
			s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			break
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return defaultBytes
	}
	return n * multiplier
}

// MaskSecret returns s safe for logging: at most visiblePrefix leading
// characters followed by "***". Values no longer than the prefix are fully
// masked so nothing leaks through the length.
func MaskSecret(s string, visiblePrefix int) string {
	if visiblePrefix < 0 {
		visiblePrefix = 0
	}
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
