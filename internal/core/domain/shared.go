package domain

import "strconv"

// ID is a repository-assigned positive integer identifier.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParseID(s string) (ID, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return ID(n), true
}

// Amount is a monetary value in cents.
type Amount int64

func NewAmountFromCents(cents int64) Amount {
	return Amount(cents)
}

type Event interface {
	GetName() string
	GetEntityName() string
}
