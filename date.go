package txt2epub

import (
	"time"

	"github.com/alnah/go-txt2epub/internal/dateutil"
)

// ResolveDate handles "auto" and "auto:FORMAT" date values.
//   - "auto" → t as YYYY-MM-DD
//   - "auto:FORMAT" → t with tokens YYYY, YY, MMMM, MMM, MM, M, DD, D
//   - "auto:preset" → iso, year, european, us or long
//   - anything else → returned unchanged
func ResolveDate(value string, t time.Time) (string, error) {
	out, err := dateutil.Resolve(value, t)
	if err != nil {
		return "", wrapError(ErrInvalidDate, err)
	}
	return out, nil
}
