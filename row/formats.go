package row

// FormatSets classifies a column's SAS format string into one of three
// temporal kinds, or "plain number" if it matches none (§4.5). The default
// members are the well-known SAS format names; callers may extend each set
// via the reader's ReaderOption layer to recognize site-specific formats.
type FormatSets struct {
	Time     map[string]bool
	DateTime map[string]bool
	Date     map[string]bool
}

// NewDefaultFormatSets returns the format classification required by §4.5.
func NewDefaultFormatSets() *FormatSets {
	return &FormatSets{
		Time: map[string]bool{
			"TIME": true,
		},
		DateTime: map[string]bool{
			"DATETIME": true,
		},
		Date: map[string]bool{
			"YYMMDD":   true,
			"MMDDYY":   true,
			"DDMMYY":   true,
			"DATE":     true,
			"JULIAN":   true,
			"MONYY":    true,
			"WEEKDATE": true,
		},
	}
}

// AddTime registers additional time format names.
func (f *FormatSets) AddTime(names ...string) {
	for _, n := range names {
		f.Time[n] = true
	}
}

// AddDateTime registers additional datetime format names.
func (f *FormatSets) AddDateTime(names ...string) {
	for _, n := range names {
		f.DateTime[n] = true
	}
}

// AddDate registers additional date format names.
func (f *FormatSets) AddDate(names ...string) {
	for _, n := range names {
		f.Date[n] = true
	}
}
