// Package sas7bdat reads SAS7BDAT datasets: the header, the metadata
// subheaders describing columns, and the row data, optionally RLE
// decompressed, as a stream of rows.
package sas7bdat

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/kadekirby/sas7bdat/compress"
	"github.com/kadekirby/sas7bdat/endian"
	"github.com/kadekirby/sas7bdat/errs"
	"github.com/kadekirby/sas7bdat/format"
	"github.com/kadekirby/sas7bdat/internal/logging"
	"github.com/kadekirby/sas7bdat/internal/options"
	"github.com/kadekirby/sas7bdat/internal/pool"
	"github.com/kadekirby/sas7bdat/internal/textenc"
	"github.com/kadekirby/sas7bdat/metadata"
	"github.com/kadekirby/sas7bdat/row"
	"github.com/kadekirby/sas7bdat/section"
	"github.com/kadekirby/sas7bdat/source"
)

// Column is a column's schema: stable index, name, label, format string,
// semantic type, and its byte length within a row.
type Column = metadata.Column

// Properties exposes the file-level metadata gathered while parsing the
// header and walking the schema (§3 "File-level properties").
type Properties = section.Properties

// Reader decodes one SAS7BDAT file. It owns its Source and must be closed.
type Reader struct {
	src    source.Source
	cfg    *config
	log    *logging.Logger
	engine endian.EndianEngine
	props  *section.Properties
	schema *metadata.Decoder
	codec  compress.Codec
	text   *textenc.Decoder
	formats *row.FormatSets

	pages      int
	pageLength int
	headerLen  int

	rowDec     *row.Decoder
	emitted    int
	headerRowPending bool

	rowLocations []rowLocation
	cursor       int

	cachedPageIndex int
	cachedPageBuf   *pool.ByteBuffer

	closed bool
}

// rowLocation identifies where one physical row's bytes live: either packed
// on a DATA/MIX page at a computed offset, or pointed to directly by a
// META-page subheader classified as row data (§4.3, §4.4 "Data subheader").
type rowLocation struct {
	pageIndex int
	// isPointer distinguishes a META-page Data subheader pointer (true)
	// from a packed DATA/MIX page row located by offset (false).
	isPointer bool
	offset    int
	length    int // only meaningful when isPointer
}

// Open opens path as a plain file.
func Open(path string, opts ...ReaderOption) (*Reader, error) {
	src, err := source.OpenFile(path)
	if err != nil {
		return nil, err
	}

	return NewReader(src, opts...)
}

// OpenMmap memory-maps path read-only and opens it.
func OpenMmap(path string, opts ...ReaderOption) (*Reader, error) {
	src, err := source.OpenMmap(path)
	if err != nil {
		return nil, err
	}

	return NewReader(src, opts...)
}

// NewReader constructs a Reader over an already-open Source, parsing the
// header and walking every metadata subheader up front so Properties and
// Columns are available before the first row is emitted.
func NewReader(src source.Source, opts ...ReaderOption) (*Reader, error) {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	textDec, err := textenc.Resolve(cfg.encoding)
	if err != nil {
		return nil, err
	}

	formats := row.NewDefaultFormatSets()
	formats.AddTime(cfg.extraTimeFormats...)
	formats.AddDateTime(cfg.extraDateTimeFormats...)
	formats.AddDate(cfg.extraDateFormats...)

	props, err := section.ParseHeader(src)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		src:     src,
		cfg:     cfg,
		log:     logging.New(cfg.logLevel),
		engine:  props.Endianness,
		props:   props,
		schema:  metadata.NewDecoder(props),
		text:    textDec,
		formats: formats,
		pageLength: props.PageLength,
		headerLen:  props.HeaderLength,
		pages:      props.PageCount,
		headerRowPending: !cfg.skipHeader,
	}

	if err := r.walkSchemaPages(); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(props.Compression)
	if err != nil {
		return nil, err
	}
	r.codec = codec

	r.rowDec = &row.Decoder{
		Columns:     r.schema.Columns,
		DataOffsets: r.schema.ColumnDataOffsets(),
		DataLengths: r.schema.ColumnDataLengths(),
		RowLength:   props.RowLength,
		Engine:      r.engine,
		Codec:       r.codec,
		Formats:     r.formats,
		Text:        r.text,
	}

	r.cachedPageIndex = -1

	return r, nil
}

// walkSchemaPages reads every page once, dispatching subheader handlers for
// META/MIX/AMD pages so the schema (Properties, Columns) is complete before
// any row is requested (§4.2-§4.4).
func (r *Reader) walkSchemaPages() error {
	for i := 0; i < r.pages; i++ {
		err := r.scanPage(i)
		if err != nil {
			return err
		}
	}

	if r.props.ColCountP1 != 0 && r.props.ColCountP1+r.props.ColCountP2 != r.props.ColumnCount {
		r.props.Warn(fmt.Sprintf("col_count_p1+col_count_p2 (%d) != column_count (%d)",
			r.props.ColCountP1+r.props.ColCountP2, r.props.ColumnCount))
	}

	for _, w := range r.props.Warnings {
		if strings.HasPrefix(w, "unknown subheader signature") {
			r.log.Debugf("%s", w)
		} else {
			r.log.Warnf("%s", w)
		}
	}

	return nil
}

// scanPage reads page i once, via a pooled buffer returned to the pool
// before scanPage returns, and dispatches its subheaders and row locations.
func (r *Reader) scanPage(i int) error {
	bb, err := r.readPage(i)
	if err != nil {
		return err
	}
	defer pool.PutPageBuffer(bb)

	page := bb.Bytes()

	ph, err := section.ParsePageHeader(page, r.props.U64, r.engine)
	if err != nil {
		return err
	}

	if !ph.Type.Known() {
		return nil
	}

	ptrLen := section.SubheaderPointerLen(r.props.U64)
	subheaderCount := 0

	if ph.Type.IsMetaMixAMD() {
		pointers := section.ParseSubheaderPointers(page, ph, r.props.U64, r.engine)
		subheaderCount = len(pointers)
		r.schema.DataPointers = nil

		for _, sp := range pointers {
			if err := r.schema.HandleSubheader(page, sp, r.props.U64, r.engine); err != nil {
				return err
			}
		}

		for _, sp := range r.schema.DataPointers {
			r.rowLocations = append(r.rowLocations, rowLocation{
				pageIndex: i,
				isPointer: true,
				offset:    sp.Offset,
				length:    sp.Length,
			})
		}
	}

	if ph.Type.HasRows() {
		isMix := ph.Type != format.PageData
		alignCorrection := section.MixAlignCorrection(ph, subheaderCount, ptrLen, r.cfg.alignCorrection && isMix)

		limit := ph.BlockCount
		if isMix {
			limit = r.props.MixPageRowCount
			if r.props.RowCount < limit {
				limit = r.props.RowCount
			}
		}

		for k := 0; k < limit; k++ {
			base := section.RowBaseOffset(ph, k, r.props.RowLength, subheaderCount, ptrLen, alignCorrection, isMix)
			r.rowLocations = append(r.rowLocations, rowLocation{
				pageIndex: i,
				isPointer: false,
				offset:    base,
				length:    r.props.RowLength,
			})
		}
	}

	return nil
}

// readPage reads the i-th fixed-size page into a pooled buffer. The caller
// owns the returned buffer and must return it via pool.PutPageBuffer once
// done with it.
func (r *Reader) readPage(i int) (*pool.ByteBuffer, error) {
	off := int64(r.headerLen + i*r.pageLength)

	bb := pool.GetPageBuffer()
	bb.Reset()
	bb.ExtendOrGrow(r.pageLength)

	n, err := r.src.ReadAt(bb.Bytes(), off)
	if n < r.pageLength {
		pool.PutPageBuffer(bb)
		return nil, fmt.Errorf("%w: page %d, got %d of %d bytes", errs.ErrIncompleteRead, i, n, r.pageLength)
	}

	return bb, nil
}

// Columns returns the file's columns in declaration order.
func (r *Reader) Columns() []Column {
	return r.schema.Columns
}

// ColumnByName returns the column with the given name, if present.
func (r *Reader) ColumnByName(name string) (Column, bool) {
	for _, c := range r.schema.Columns {
		if c.Name == name {
			return c, true
		}
	}

	return Column{}, false
}

// Properties returns the file-level properties gathered during parsing.
func (r *Reader) Properties() *Properties {
	return r.props
}

// Close releases the underlying Source and the pooled page buffer, if any.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if r.cachedPageBuf != nil {
		pool.PutPageBuffer(r.cachedPageBuf)
		r.cachedPageBuf = nil
	}

	return r.src.Close()
}

// pageFor returns the page bytes containing rowLocation loc, reusing the
// last page read when consecutive rows share a page (§4.5 sequential scan).
// The returned slice is only valid until the next call to pageFor or Close.
func (r *Reader) pageFor(loc rowLocation) ([]byte, error) {
	if loc.pageIndex == r.cachedPageIndex && r.cachedPageBuf != nil {
		return r.cachedPageBuf.Bytes(), nil
	}

	bb, err := r.readPage(loc.pageIndex)
	if err != nil {
		return nil, err
	}

	if r.cachedPageBuf != nil {
		pool.PutPageBuffer(r.cachedPageBuf)
	}

	r.cachedPageIndex = loc.pageIndex
	r.cachedPageBuf = bb

	return bb.Bytes(), nil
}

// headerRow returns a synthetic row of column names, emitted once before
// the first data row unless WithSkipHeader(true) was given.
func (r *Reader) headerRow() []any {
	names := make([]any, len(r.schema.Columns))
	for i, c := range r.schema.Columns {
		names[i] = c.Name
	}

	return names
}

func (r *Reader) headerRowMap() map[string]any {
	m := make(map[string]any, len(r.schema.Columns))
	for _, c := range r.schema.Columns {
		m[c.Name] = c.Name
	}

	return m
}

func (r *Reader) rowToMap(values []any) map[string]any {
	m := make(map[string]any, len(values))
	for i, v := range values {
		if i >= len(r.schema.Columns) {
			break
		}
		m[r.schema.Columns[i].Name] = v
	}

	return m
}

// NextRow returns the next row as a []any in column order, or (nil, io.EOF)
// once every row (and, unless skipped, the synthetic header row) has been
// emitted. Reaching the end closes the Reader (and its Source); later calls
// keep returning io.EOF. When WithRowFormat("map") is set, use NextRowMap
// instead.
func (r *Reader) NextRow() ([]any, error) {
	if r.closed {
		if !r.headerRowPending && r.cursor >= len(r.rowLocations) {
			return nil, io.EOF
		}
		return nil, errs.ErrReaderClosed
	}

	if r.headerRowPending {
		r.headerRowPending = false
		return r.headerRow(), nil
	}

	if r.cursor >= len(r.rowLocations) {
		if err := r.Close(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}

	loc := r.rowLocations[r.cursor]
	r.cursor++

	if loc.isPointer {
		page, err := r.pageFor(loc)
		if err != nil {
			return nil, err
		}

		rowBytes, err := r.rowDec.ExtractRow(page, loc.offset, loc.length)
		if err != nil {
			return nil, err
		}

		values, err := r.rowDec.DecodeRow(rowBytes)
		if err != nil {
			return nil, err
		}

		r.emitted++
		return values, nil
	}

	page, err := r.pageFor(loc)
	if err != nil {
		return nil, err
	}

	rowBytes, err := r.rowDec.ExtractRow(page, loc.offset, r.props.RowLength)
	if err != nil {
		return nil, err
	}

	values, err := r.rowDec.DecodeRow(rowBytes)
	if err != nil {
		return nil, err
	}

	r.emitted++
	return values, nil
}

// NextRowMap is NextRow's map-keyed-by-column-name variant, regardless of
// the configured WithRowFormat.
func (r *Reader) NextRowMap() (map[string]any, error) {
	if r.headerRowPending {
		r.headerRowPending = false
		return r.headerRowMap(), nil
	}

	values, err := r.NextRow()
	if err != nil {
		return nil, err
	}

	return r.rowToMap(values), nil
}

// RowStream iterates a Reader's rows as (row, error) pairs, in the shape
// WithRowFormat selected: []any by default, or map[string]any when
// WithRowFormat("map") was given. Iteration stops at the first error.
type RowStream = iter.Seq2[any, error]

// All returns a RowStream over every remaining row, for use with range.
func (r *Reader) All() RowStream {
	return func(yield func(any, error) bool) {
		for {
			var (
				next any
				err  error
			)

			if r.cfg.rowFormat == "map" {
				next, err = r.NextRowMap()
			} else {
				next, err = r.NextRow()
			}

			if err == io.EOF {
				return
			}
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(next, nil) {
				return
			}
		}
	}
}
