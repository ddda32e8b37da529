package sas7bdat

import (
	"github.com/kadekirby/sas7bdat/internal/logging"
	"github.com/kadekirby/sas7bdat/internal/options"
)

// config holds the fully-resolved reader configuration after options apply.
type config struct {
	logLevel        logging.Level
	skipHeader      bool
	encoding        string
	alignCorrection bool
	extraTimeFormats     []string
	extraDateTimeFormats []string
	extraDateFormats     []string
	rowFormat string // "slice" (default) or "map"
}

func defaultConfig() *config {
	return &config{
		logLevel:        logging.LevelWarn,
		skipHeader:      false,
		alignCorrection: true,
		rowFormat:       "slice",
	}
}

// ReaderOption configures a Reader at construction time.
type ReaderOption = options.Option[*config]

// WithLogLevel sets the minimum severity reported through the Reader's logger.
func WithLogLevel(level logging.Level) ReaderOption {
	return options.NoError(func(c *config) {
		c.logLevel = level
	})
}

// WithSkipHeader controls whether NextRow begins with a synthetic header
// row of column names before emitting data rows.
func WithSkipHeader(skip bool) ReaderOption {
	return options.NoError(func(c *config) {
		c.skipHeader = skip
	})
}

// WithEncoding selects the codepage string columns are decoded from (an
// IANA name such as "windows-1252" or "utf-8"). Defaults to windows-1252.
func WithEncoding(name string) ReaderOption {
	return options.NoError(func(c *config) {
		c.encoding = name
	})
}

// WithAlignCorrection toggles the 8-byte alignment pad inserted before
// MIX-page rows (§4.5, §8 "Idempotence of alignment" law). Defaults to true;
// disabling it is only useful to reproduce a known-buggy producer's layout.
func WithAlignCorrection(enabled bool) ReaderOption {
	return options.NoError(func(c *config) {
		c.alignCorrection = enabled
	})
}

// WithExtraTimeFormats extends the set of format strings classified as
// time-of-day columns beyond the default {"TIME"}.
func WithExtraTimeFormats(names ...string) ReaderOption {
	return options.NoError(func(c *config) {
		c.extraTimeFormats = append(c.extraTimeFormats, names...)
	})
}

// WithExtraDateTimeFormats extends the set of format strings classified as
// datetime columns beyond the default {"DATETIME"}.
func WithExtraDateTimeFormats(names ...string) ReaderOption {
	return options.NoError(func(c *config) {
		c.extraDateTimeFormats = append(c.extraDateTimeFormats, names...)
	})
}

// WithExtraDateFormats extends the set of format strings classified as date
// columns beyond the default SAS date formats.
func WithExtraDateFormats(names ...string) ReaderOption {
	return options.NoError(func(c *config) {
		c.extraDateFormats = append(c.extraDateFormats, names...)
	})
}

// WithRowFormat selects NextRow's return shape: "slice" (default, []any in
// column order) or "map" (map[string]any keyed by column name).
func WithRowFormat(rowFormat string) ReaderOption {
	return options.NoError(func(c *config) {
		c.rowFormat = rowFormat
	})
}
