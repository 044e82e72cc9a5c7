package term

import "github.com/pkg/errors"

// ErrNoCursorReport is returned when the terminal never answers a cursor
// position request, e.g. when it is not a real terminal.
var ErrNoCursorReport = errors.New("terminal did not report cursor position")

type reportState uint8

const (
	reportSeekEscape reportState = iota
	reportSeekBracket
	reportRow
	reportCol
)

// maxReportScan caps how many stray bytes are discarded while looking for
// the report.
const maxReportScan = 256

// ScanCursorReport consumes bytes from next until it sees ESC [ row ; col R.
// Anything that starts like a report and then diverges is discarded and the
// scan starts over.
func ScanCursorReport(next func() (byte, error)) (row, col int, err error) {
	state := reportSeekEscape
	for scanned := 0; scanned < maxReportScan; scanned++ {
		b, err := next()
		if err != nil {
			return 0, 0, err
		}

		switch state {
		case reportSeekEscape:
			if b == 0x1b {
				state = reportSeekBracket
			}
		case reportSeekBracket:
			switch b {
			case '[':
				row, col = 0, 0
				state = reportRow
			case 0x1b:
			default:
				state = reportSeekEscape
			}
		case reportRow:
			switch {
			case b >= '0' && b <= '9':
				row = row*10 + int(b-'0')
			case b == ';':
				state = reportCol
			case b == 0x1b:
				state = reportSeekBracket
			default:
				state = reportSeekEscape
			}
		case reportCol:
			switch {
			case b >= '0' && b <= '9':
				col = col*10 + int(b-'0')
			case b == 'R':
				return row, col, nil
			case b == 0x1b:
				state = reportSeekBracket
			default:
				state = reportSeekEscape
			}
		}
	}
	return 0, 0, ErrNoCursorReport
}
