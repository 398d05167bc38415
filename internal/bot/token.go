package bot

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Correction tokens are the entire state of the two-step category
// correction flow; nothing is held server-side. They ride in Telegram
// callback data, which caps out at 64 bytes, so the encoding is terse:
//
//	cc|<row>|<fp>            prompt: offer the category keyboard
//	sc|<row>|<idx>|<fp>      commit: set catalog[idx] on the row
//
// fp is a fingerprint of the row's date and amount cells, checked again at
// commit time so a token that now addresses a different transaction (after
// a delete shifted rows) is rejected as stale instead of silently updating
// the wrong row.
const (
	actionPrompt = "cc"
	actionCommit = "sc"
)

var ErrBadToken = errors.New("malformed interaction token")

type token struct {
	action   string
	row      int
	catIndex int
	fp       string
}

func encodePrompt(row int, fp string) string {
	return fmt.Sprintf("%s|%d|%s", actionPrompt, row, fp)
}

func encodeCommit(row, catIndex int, fp string) string {
	return fmt.Sprintf("%s|%d|%d|%s", actionCommit, row, catIndex, fp)
}

func parseToken(data string) (token, error) {
	parts := strings.Split(data, "|")
	if len(parts) < 3 {
		return token{}, ErrBadToken
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil || row < 2 {
		return token{}, ErrBadToken
	}
	switch parts[0] {
	case actionPrompt:
		if len(parts) != 3 {
			return token{}, ErrBadToken
		}
		return token{action: actionPrompt, row: row, fp: parts[2]}, nil
	case actionCommit:
		if len(parts) != 4 {
			return token{}, ErrBadToken
		}
		idx, err := strconv.Atoi(parts[2])
		if err != nil || idx < 0 {
			return token{}, ErrBadToken
		}
		return token{action: actionCommit, row: row, catIndex: idx, fp: parts[3]}, nil
	default:
		return token{}, ErrBadToken
	}
}

// fingerprint hashes the identity-bearing cells of a row. FNV-32a keeps the
// token well under the callback-data size cap.
func fingerprint(date, amount string) string {
	h := fnv.New32a()
	h.Write([]byte(date))
	h.Write([]byte{0})
	h.Write([]byte(amount))
	return fmt.Sprintf("%08x", h.Sum32())
}
