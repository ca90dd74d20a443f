package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/folio/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidTransaction is wrapped by every validation error.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Type is the kind of a transaction.
type Type string

const (
	Buy  Type = "BUY"
	Sell Type = "SELL"
	// Item records a position without trading it: it counts as a transaction
	// for its symbol but changes neither quantity nor investment.
	Item Type = "ITEM"
)

// ParseType accepts upper or lower case names.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(s)); t {
	case Buy, Sell, Item:
		return t, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, s)
	}
}

// Account identifies where a transaction was booked.
type Account struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// CountryWeight is the share of a security exposed to one country (ISO 3166 alpha-2 code).
type CountryWeight struct {
	Code   string  `json:"code"`
	Weight float64 `json:"weight"`
}

// SectorWeight is the share of a security exposed to one sector.
type SectorWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// Profile describes what a symbol is exposed to.
type Profile struct {
	Countries []CountryWeight `json:"countries,omitempty"`
	Sectors   []SectorWeight  `json:"sectors,omitempty"`
}

func (p Profile) clone() Profile {
	return Profile{Countries: slices.Clone(p.Countries), Sectors: slices.Clone(p.Sectors)}
}

// Transaction is a single buy, sell or item event.
//
// A Draft transaction is a planned trade: it never changes the reconstructed
// history, only the projection computed by Portfolio.AddFuture.
type Transaction struct {
	ID         string
	Symbol     string
	Profile    Profile
	Type       Type
	Date       date.Date
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Fee        decimal.Decimal
	Currency   string
	DataSource string
	Account    *Account // nil when unknown
	Draft      bool
}

// NewTransaction returns a validated transaction, with a random ID if tx has none.
func NewTransaction(tx Transaction) (Transaction, error) {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	tx.Profile = tx.Profile.clone()
	if tx.Account != nil {
		acc := *tx.Account
		tx.Account = &acc
	}
	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// Validate checks the transaction fields.
func (tx Transaction) Validate() error {
	switch {
	case tx.Symbol == "":
		return fmt.Errorf("%w: missing symbol", ErrInvalidTransaction)
	case tx.Date.IsZero():
		return fmt.Errorf("%w %s: missing date", ErrInvalidTransaction, tx.Symbol)
	case tx.Quantity.IsNegative():
		return fmt.Errorf("%w %s: negative quantity %v", ErrInvalidTransaction, tx.Symbol, tx.Quantity)
	case tx.UnitPrice.IsNegative():
		return fmt.Errorf("%w %s: negative unit price %v", ErrInvalidTransaction, tx.Symbol, tx.UnitPrice)
	case tx.Fee.IsNegative():
		return fmt.Errorf("%w %s: negative fee %v", ErrInvalidTransaction, tx.Symbol, tx.Fee)
	case tx.Currency == "":
		return fmt.Errorf("%w %s: missing currency", ErrInvalidTransaction, tx.Symbol)
	}
	if _, err := ParseType(string(tx.Type)); err != nil {
		return err
	}
	return nil
}

// Total is quantity times unit price, in the transaction currency.
func (tx Transaction) Total() decimal.Decimal { return tx.Quantity.Mul(tx.UnitPrice) }

// AccountName returns the account name or UnknownKey.
func (tx Transaction) AccountName() string {
	if tx.Account == nil || tx.Account.Name == "" {
		return UnknownKey
	}
	return tx.Account.Name
}

// MarshalJSON writes the flat JSONL form of a transaction.
func (tx Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", tx.ID)
	w.Append("type", tx.Type)
	w.Append("date", tx.Date)
	w.Append("symbol", tx.Symbol)
	w.Append("quantity", tx.Quantity)
	w.Append("unitPrice", tx.UnitPrice)
	w.Optional("fee", nonZero(tx.Fee))
	w.Append("currency", tx.Currency)
	w.Optional("dataSource", tx.DataSource)
	if tx.Account != nil {
		w.Append("account", tx.Account)
	}
	w.Optional("draft", tx.Draft)
	w.Optional("countries", tx.Profile.Countries)
	w.Optional("sectors", tx.Profile.Sectors)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the form written by MarshalJSON. It does not validate.
func (tx *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID         string          `json:"id"`
		Type       string          `json:"type"`
		Date       date.Date       `json:"date"`
		Symbol     string          `json:"symbol"`
		Quantity   decimal.Decimal `json:"quantity"`
		UnitPrice  decimal.Decimal `json:"unitPrice"`
		Fee        decimal.Decimal `json:"fee"`
		Currency   string          `json:"currency"`
		DataSource string          `json:"dataSource"`
		Account    *Account        `json:"account"`
		Draft      bool            `json:"draft"`
		Countries  []CountryWeight `json:"countries"`
		Sectors    []SectorWeight  `json:"sectors"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*tx = Transaction{
		ID:         temp.ID,
		Symbol:     temp.Symbol,
		Profile:    Profile{Countries: temp.Countries, Sectors: temp.Sectors},
		Type:       Type(strings.ToUpper(temp.Type)),
		Date:       temp.Date,
		Quantity:   temp.Quantity,
		UnitPrice:  temp.UnitPrice,
		Fee:        temp.Fee,
		Currency:   temp.Currency,
		DataSource: temp.DataSource,
		Account:    temp.Account,
		Draft:      temp.Draft,
	}
	return nil
}

// nonZero maps a zero decimal to nil so that Optional skips it.
func nonZero(d decimal.Decimal) any {
	if d.IsZero() {
		return nil
	}
	return d
}
