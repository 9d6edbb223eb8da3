package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// TransactionStatus is the lifecycle state of a ledger record
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

func ParseTransactionStatus(s string) (TransactionStatus, error) {
	switch status := TransactionStatus(s); status {
	case StatusPending, StatusCompleted, StatusFailed:
		return status, nil
	}
	return "", fmt.Errorf("unknown transaction status %q", s)
}

// IsTerminal reports whether no further transition is defined from the status
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// TransactionType categorises a transfer for the daily summaries
type TransactionType string

const (
	TypeSend     TransactionType = "send"
	TypeReceive  TransactionType = "receive"
	TypeFaucet   TransactionType = "faucet"
	TypeBetting  TransactionType = "betting"
	TypeContract TransactionType = "contract"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch t := TransactionType(s); t {
	case TypeSend, TypeReceive, TypeFaucet, TypeBetting, TypeContract:
		return t, nil
	}
	return "", fmt.Errorf("unknown transaction type %q", s)
}

// UserId identifies a user of the directory. Zero means "not supplied".
//
// Frontends send ids either as JSON numbers or as numeric strings, so both are accepted.
type UserId int64

func (u *UserId) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*u = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*u = 0
			return nil
		}
		data = []byte(s)
	}
	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid user id %s", string(data))
	}
	*u = UserId(id)
	return nil
}

func ParseUserId(s string) (UserId, error) {
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return UserId(id), nil
}

const DateLayout = "2006-01-02"

// Date is a calendar day in UTC, stored and rendered as YYYY-MM-DD
type Date struct {
	time.Time
}

func NewDate(t time.Time) Date {
	y, m, d := t.UTC().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
	case string:
		// Drivers may hand back a full timestamp for a DATE column
		day := v
		if len(day) > len(DateLayout) {
			day = day[:len(DateLayout)]
		}
		parsed, err := ParseDate(day)
		if err != nil {
			return fmt.Errorf("cannot scan date %q: %w", v, err)
		}
		*d = parsed
	case []byte:
		return d.Scan(string(v))
	case nil:
		*d = Date{}
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}
