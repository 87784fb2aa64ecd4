package wrapped

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// tradeColumns are the columns a trade export must provide.
var tradeColumns = []string{"userId", "executedAt", "ISIN", "direction", "executionSize", "executionPrice", "executionFee", "type"}

// tradeRecord is the raw shape of a trade in every supported format.
type tradeRecord struct {
	User       string          `json:"userId"`
	ExecutedAt string          `json:"executedAt"`
	ISIN       string          `json:"ISIN"`
	Direction  string          `json:"direction"`
	Size       decimal.Decimal `json:"executionSize"`
	Price      decimal.Decimal `json:"executionPrice"`
	Fee        decimal.Decimal `json:"executionFee"`
	Type       string          `json:"type"`
}

func (r tradeRecord) trade() (Trade, error) {
	if r.User == "" {
		return Trade{}, fmt.Errorf("%w: missing userId", ErrMalformedRecord)
	}
	executedAt, err := ParseTimestamp(r.ExecutedAt)
	if err != nil {
		return Trade{}, fmt.Errorf("%w: executedAt: %w", ErrMalformedRecord, err)
	}
	direction, err := ParseDirection(r.Direction)
	if err != nil {
		return Trade{}, fmt.Errorf("%w: direction: %w", ErrMalformedRecord, err)
	}
	if r.Fee.IsNegative() {
		return Trade{}, fmt.Errorf("%w: executionFee: negative fee %v", ErrMalformedRecord, r.Fee)
	}
	return Trade{
		User:       r.User,
		ExecutedAt: executedAt,
		ISIN:       strings.TrimSpace(r.ISIN),
		Direction:  direction,
		Size:       r.Size,
		Price:      r.Price,
		Fee:        r.Fee,
		Type:       TradeType(strings.ToUpper(strings.TrimSpace(r.Type))),
	}, nil
}

// DecodeTradesCSV decodes a CSV trade export with a header row.
//
// Columns are matched by name and may come in any order; extra columns are
// ignored. An empty executionFee is read as zero.
func DecodeTradesCSV(r io.Reader) ([]Trade, error) {
	table, err := readCSV(r, tradeColumns...)
	if err != nil {
		return nil, err
	}
	var trades []Trade
	for line, row := range table.rows() {
		var rec tradeRecord
		rec.User = table.get(row, "userId")
		rec.ExecutedAt = table.get(row, "executedAt")
		rec.ISIN = table.get(row, "ISIN")
		rec.Direction = table.get(row, "direction")
		rec.Type = table.get(row, "type")
		if rec.Size, err = table.decimal(row, "executionSize", false); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Price, err = table.decimal(row, "executionPrice", false); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.Fee, err = table.decimal(row, "executionFee", true); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		t, err := rec.trade()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trades = append(trades, t)
	}
	if err := table.err; err != nil {
		return nil, err
	}
	return trades, nil
}

// DecodeTradesJSONL decodes one JSON trade object per line.
func DecodeTradesJSONL(r io.Reader) ([]Trade, error) {
	var trades []Trade
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var rec tradeRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ErrMalformedRecord, err)
		}
		t, err := rec.trade()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trades = append(trades, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trades: %w", err)
	}
	return trades, nil
}

// DecodeTradesJSON decodes a JSON document and reads the trades found at the
// JSONPath expression recordsPath, e.g. "$.data.executions[*]". An empty path
// reads the whole document, which must be an array of trades.
func DecodeTradesJSON(r io.Reader, recordsPath string) ([]Trade, error) {
	records, err := jsonRecords(r, recordsPath)
	if err != nil {
		return nil, err
	}
	trades := make([]Trade, 0, len(records))
	for i, raw := range records {
		var rec tradeRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("record %d: %w: %w", i, ErrMalformedRecord, err)
		}
		t, err := rec.trade()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		trades = append(trades, t)
	}
	return trades, nil
}

// jsonRecords extracts the objects selected by a JSONPath expression, each re-encoded as raw JSON.
func jsonRecords(r io.Reader, recordsPath string) ([]json.RawMessage, error) {
	if recordsPath == "" {
		recordsPath = "$"
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("decoding json document: %w", err)
	}
	jval, err := jsonpath.Get(recordsPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("evaluating %q: %w", recordsPath, err)
	}
	// jsonpath returns a single object, or a list of them depending on the expression.
	var objects []any
	switch v := jval.(type) {
	case []any:
		objects = v
		// "$.trades" returns the list itself, "$.trades[*]" a list of objects: both are fine,
		// but a list of lists means the expression selected several arrays.
		if len(v) > 0 {
			if inner, ok := v[0].([]any); ok && len(v) == 1 {
				objects = inner
			}
		}
	case map[string]any:
		objects = []any{v}
	default:
		return nil, fmt.Errorf("%q selects a %T, want objects", recordsPath, jval)
	}
	records := make([]json.RawMessage, 0, len(objects))
	for i, o := range objects {
		if _, ok := o.(map[string]any); !ok {
			return nil, fmt.Errorf("record %d: %w: got a %T, want an object", i, ErrMalformedRecord, o)
		}
		raw, err := json.Marshal(o)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, raw)
	}
	return records, nil
}

// csvTable reads a CSV file with a header row, giving access to columns by name.
type csvTable struct {
	r      *csv.Reader
	header map[string]int
	err    error
}

// readCSV reads the header and checks that all required columns are there.
func readCSV(r io.Reader, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header", ErrEmptyLedger)
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	t := &csvTable{r: cr, header: make(map[string]int, len(header))}
	for i, name := range header {
		t.header[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	var missing []string
	for _, col := range required {
		if _, ok := t.header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %s", ErrMalformedRecord, strings.Join(missing, ", "))
	}
	return t, nil
}

// rows iterates over data rows with their line number. Reading errors stop
// the iteration and are available in t.err.
func (t *csvTable) rows() iter.Seq2[int, []string] {
	return func(yield func(int, []string) bool) {
		line := 1
		for {
			row, err := t.r.Read()
			line++
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				t.err = fmt.Errorf("line %d: %w", line, err)
				return
			}
			if !yield(line, row) {
				return
			}
		}
	}
}

func (t *csvTable) get(row []string, col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *csvTable) decimal(row []string, col string, zeroIfEmpty bool) (decimal.Decimal, error) {
	s := t.get(row, col)
	if s == "" && zeroIfEmpty {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %w", ErrMalformedRecord, col, err)
	}
	return d, nil
}
