package wrapped

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// LoadTrades opens and decodes a trade export, the format is chosen from the
// file extension: ".csv", ".jsonl" or ".json". For JSON documents recordsPath is
// the JSONPath expression selecting the trades, the whole document if empty.
//
// The returned ledger's source is the file path.
func LoadTrades(path, recordsPath string) (*TradeLedger, error) {
	trades, err := decodeFile(path, map[string]func(io.Reader) ([]Trade, error){
		".csv":   DecodeTradesCSV,
		".jsonl": DecodeTradesJSONL,
		".json":  func(r io.Reader) ([]Trade, error) { return DecodeTradesJSON(r, recordsPath) },
	})
	if err != nil {
		return nil, err
	}
	l, err := NewTradeLedger(filepath.Clean(path), trades)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"source": l.Source(), "rows": l.Len()}).Info("trade ledger loaded")
	return l, nil
}

// LoadBanking opens and decodes a banking export, like LoadTrades.
func LoadBanking(path, recordsPath string) (*BankingLedger, error) {
	txs, err := decodeFile(path, map[string]func(io.Reader) ([]BankingTransaction, error){
		".csv":   DecodeBankingCSV,
		".jsonl": DecodeBankingJSONL,
		".json":  func(r io.Reader) ([]BankingTransaction, error) { return DecodeBankingJSON(r, recordsPath) },
	})
	if err != nil {
		return nil, err
	}
	l, err := NewBankingLedger(filepath.Clean(path), txs)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"source": l.Source(), "rows": l.Len()}).Info("banking ledger loaded")
	return l, nil
}

// decodeFile opens path and decodes it with the decoder registered for its extension.
func decodeFile[T any](path string, decoders map[string]func(io.Reader) ([]T, error)) ([]T, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported ledger format %q for %q", ext, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open ledger file %q: %w", path, err)
	}
	defer f.Close()

	records, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode ledger file %q: %w", path, err)
	}
	return records, nil
}
