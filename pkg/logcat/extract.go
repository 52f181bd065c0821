package logcat

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// timestampLayout matches the month-day time prefix both logcat layouts
// share. There is no year field; parsed timestamps land in year zero of the
// local calendar.
const timestampLayout = "01-02 15:04:05.000"

// minKeyLength is the shortest line that can carry a timestamp plus process
// and thread ids.
const minKeyLength = 30

// spaceRuns splits the remainder of a line after its timestamp prefix.
var spaceRuns = regexp.MustCompile(" +")

// ExtractKey derives the sort key for line. Restart markers inherit prev
// unchanged. Lines long enough to carry the timestamp/process/thread prefix
// get a fresh unresolved key; anything that fails to parse falls back to
// the default key, so no line is ever dropped for its shape.
func ExtractKey(line string, prev Key) Key {
	if IsRestartMarker(line) {
		return prev
	}
	if len(line) < minKeyLength {
		return DefaultKey()
	}

	ts, err := time.ParseInLocation(timestampLayout, line[:len(timestampLayout)], time.Local)
	if err != nil {
		return DefaultKey()
	}

	process, thread, ok := parseProcessThread(line[len(timestampLayout):])
	if !ok {
		// Old-layout lines ("02-19 11:40:49.125 I/FIRST   (11806): ...")
		// land here: the tag token is not numeric.
		return DefaultKey()
	}
	return NewKey(ts, process, thread)
}

// parseProcessThread reads the two integer ids that follow the timestamp.
func parseProcessThread(rest string) (process, thread int, ok bool) {
	tokens := spaceRuns.Split(strings.TrimSpace(rest), -1)
	if len(tokens) < 2 {
		return 0, 0, false
	}
	process, err := strconv.Atoi(tokens[0])
	if err != nil {
		return 0, 0, false
	}
	thread, err = strconv.Atoi(tokens[1])
	if err != nil {
		return 0, 0, false
	}
	return process, thread, true
}
