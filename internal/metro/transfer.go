package metro

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedTransfer is returned for transfer columns that do not follow the
// bracketed list grammar.
var ErrMalformedTransfer = errors.New("malformed transfer data")

// TransferInfo marks an egress as a good place to change onto other lines.
type TransferInfo struct {
	// Station is the raw transfer indicator from the egress table.
	Station string
	// Lines the egress is a transfer point for. Empty when only the indicator
	// was recorded.
	Lines LineSet
	// Termini names the termini of the onward trains the egress suits, as
	// recorded. Nil means trains in either direction.
	Termini []string
}

// Matches reports whether the egress is a transfer point onto line for trains
// heading to terminus.
func (t *TransferInfo) Matches(line LineCode, terminus string) bool {
	if t == nil || !t.Lines.Has(line) {
		return false
	}
	if t.Termini == nil {
		return true
	}
	for _, name := range t.Termini {
		if name == terminus {
			return true
		}
	}
	return false
}

// ParseTransferInfo interprets the three raw transfer columns of an egress row.
// Empty strings mean the column was absent. Precedence:
//
//	indicator absent            -> nil
//	lines absent                -> indicator only, no lines
//	direction absent or "both"  -> lines, any direction
//	"[a, b]"                    -> lines, trains heading to termini a or b
func ParseTransferInfo(indicator, lines, direction string) (*TransferInfo, error) {
	indicator = strings.TrimSpace(indicator)
	if indicator == "" {
		return nil, nil
	}
	info := &TransferInfo{Station: indicator}

	lines = strings.TrimSpace(lines)
	if lines == "" {
		return info, nil
	}
	codes, err := parseBracketedList(lines)
	if err != nil {
		return nil, errors.Wrapf(err, "transfer lines %q", lines)
	}
	for _, c := range codes {
		code, err := ParseLineCode(c)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedTransfer, err.Error())
		}
		info.Lines = info.Lines.Add(code)
	}

	direction = strings.TrimSpace(direction)
	if direction == "" || direction == "both" {
		return info, nil
	}
	termini, err := parseBracketedList(direction)
	if err != nil {
		return nil, errors.Wrapf(err, "transfer direction %q", direction)
	}
	info.Termini = termini
	return info, nil
}

// parseBracketedList splits "[a, 'b', c]" into its trimmed, unquoted items.
func parseBracketedList(s string) ([]string, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, ErrMalformedTransfer
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return nil, ErrMalformedTransfer
	}
	var items []string
	for _, part := range strings.Split(body, ",") {
		item := strings.Trim(strings.TrimSpace(part), `'"`)
		if item == "" {
			return nil, ErrMalformedTransfer
		}
		items = append(items, item)
	}
	return items, nil
}
