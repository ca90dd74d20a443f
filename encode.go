package folio

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/etnz/folio/date"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeTransactions reads one JSON transaction per line. Blank lines are skipped.
// Every transaction is validated, and gets an ID when it has none.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for n := 1; scanner.Scan(); n++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("format error on line %d %q: %w", n, string(line), err)
		}
		tx, err := NewTransaction(tx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return txs, nil
}

// EncodeTransactions writes one JSON transaction per line.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		b, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("failed to encode transaction %s: %w", tx.ID, err)
		}
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// csvRow is the broker export layout understood by DecodeTransactionsCSV.
type csvRow struct {
	Date      string `csv:"date"`
	Type      string `csv:"type"`
	Symbol    string `csv:"symbol"`
	Quantity  string `csv:"quantity"`
	UnitPrice string `csv:"unitPrice"`
	Fee       string `csv:"fee"`
	Currency  string `csv:"currency"`
	Account   string `csv:"account"`
	Draft     string `csv:"draft"`
}

// DecodeTransactionsCSV reads transactions from a CSV file with a header row.
// Columns are date, type, symbol, quantity, unitPrice, fee, currency, account and draft.
// Empty fee and draft columns default to zero and false.
func DecodeTransactionsCSV(r io.Reader) ([]Transaction, error) {
	var rows []csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	txs := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.transaction()
		if err != nil {
			// +2: header and 1-based numbering
			return nil, fmt.Errorf("csv row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (row csvRow) transaction() (Transaction, error) {
	on, err := date.Parse(row.Date)
	if err != nil {
		return Transaction{}, err
	}
	typ, err := ParseType(row.Type)
	if err != nil {
		return Transaction{}, err
	}
	var nums [3]decimal.Decimal
	for i, s := range []string{row.Quantity, row.UnitPrice, row.Fee} {
		if s == "" {
			continue
		}
		if nums[i], err = decimal.NewFromString(s); err != nil {
			return Transaction{}, fmt.Errorf("%w: invalid number %q", ErrInvalidTransaction, s)
		}
	}
	var draft bool
	if row.Draft != "" {
		if draft, err = strconv.ParseBool(row.Draft); err != nil {
			return Transaction{}, fmt.Errorf("%w: invalid draft flag %q", ErrInvalidTransaction, row.Draft)
		}
	}
	tx := Transaction{
		Symbol:    row.Symbol,
		Type:      typ,
		Date:      on,
		Quantity:  nums[0],
		UnitPrice: nums[1],
		Fee:       nums[2],
		Currency:  row.Currency,
		Draft:     draft,
	}
	if row.Account != "" {
		tx.Account = &Account{Name: row.Account}
	}
	return NewTransaction(tx)
}

// EncodeTransactionsCSV writes transactions in the layout read by DecodeTransactionsCSV.
// Profiles and IDs are not part of that layout.
func EncodeTransactionsCSV(w io.Writer, txs []Transaction) error {
	rows := make([]csvRow, 0, len(txs))
	for _, tx := range txs {
		row := csvRow{
			Date:      tx.Date.String(),
			Type:      string(tx.Type),
			Symbol:    tx.Symbol,
			Quantity:  tx.Quantity.String(),
			UnitPrice: tx.UnitPrice.String(),
			Fee:       tx.Fee.String(),
			Currency:  tx.Currency,
			Draft:     strconv.FormatBool(tx.Draft),
		}
		if tx.Account != nil {
			row.Account = tx.Account.Name
		}
		rows = append(rows, row)
	}
	return gocsv.Marshal(rows, w)
}
