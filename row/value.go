package row

import (
	"time"

	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/internal/codec"
	"github.com/kadekirby/sas7bdat/internal/textenc"
	"github.com/kadekirby/sas7bdat/metadata"
)

// sasEpoch is the zero point for every date/time value in the file (§4.1, GLOSSARY).
var sasEpoch = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// secondsPerDay converts a day count to the equivalent second count when
// computing date values (§4.1 read_as "date").
const secondsPerDay = 86400

// maxPlausibleDays bounds what a date-as-days value can reasonably be
// (roughly the year 3000); values beyond this are retried as datetime
// seconds, since some producers mislabel datetime-valued columns as date.
const maxPlausibleDays = 400000

// DecodeColumn converts one column's raw row bytes into its Go value,
// dispatching on the column's semantic type and, for numbers, its format
// string (§4.5).
func DecodeColumn(col metadata.Column, raw []byte, engine endian.EndianEngine, formats *FormatSets, dec *textenc.Decoder) (any, error) {
	if col.Type == format.ColumnString {
		return dec.Decode(codec.ReadText(raw, len(raw))), nil
	}

	if len(raw) <= 2 {
		return int64(codec.ReadInt(raw, len(raw), engine)), nil
	}

	switch {
	case formats.Time[col.Format]:
		return decodeTime(raw, engine)
	case formats.DateTime[col.Format]:
		return decodeDatetime(raw, engine)
	case formats.Date[col.Format]:
		return decodeDate(raw, engine)
	default:
		v, ok := codec.ReadDouble(raw, len(raw), engine)
		if !ok {
			return nil, nil
		}
		return v, nil
	}
}

func decodeDatetime(raw []byte, engine endian.EndianEngine) (any, error) {
	seconds, ok := codec.ReadDouble(raw, len(raw), engine)
	if !ok {
		return nil, nil
	}

	t := sasEpoch.Add(time.Duration(seconds * float64(time.Second)))
	return t.Format(time.RFC3339), nil
}

func decodeTime(raw []byte, engine endian.EndianEngine) (any, error) {
	seconds, ok := codec.ReadDouble(raw, len(raw), engine)
	if !ok {
		return nil, nil
	}

	midnight := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	t := midnight.Add(time.Duration(seconds * float64(time.Second)))
	return t.Format("15:04:05"), nil
}

// decodeDate implements the days-with-datetime-fallback rule (§4.1, §8 Laws).
func decodeDate(raw []byte, engine endian.EndianEngine) (any, error) {
	days, ok := codec.ReadDouble(raw, len(raw), engine)
	if !ok {
		return nil, nil
	}

	if days < 0 || days > maxPlausibleDays {
		return decodeDatetime(raw, engine)
	}

	t := time.Unix(sasEpoch.Unix()+int64(days*secondsPerDay), 0).UTC()
	return t.Format("2006-01-02"), nil
}
