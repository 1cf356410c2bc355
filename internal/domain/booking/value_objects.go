package booking

import (
	"errors"
	"strings"
)

var (
	ErrPassengerNameTooShort = errors.New("passenger name must be at least 2 characters")
	ErrIDNumberTooShort      = errors.New("passenger ID number must be at least 5 characters")
	ErrPhoneTooShort         = errors.New("phone number must be at least 10 digits")
	ErrNextOfKinNameTooShort = errors.New("next of kin name must be at least 2 characters")
	ErrInvalidPaymentMethod  = errors.New("invalid payment method")
	ErrNegativeAmount        = errors.New("amount cannot be negative")
)

const (
	minNameLength  = 2
	minIDNumberLen = 5
	minPhoneDigits = 10
)

// Passenger carries the traveller identity printed on the ticket plus an
// emergency contact. Immutable once the booking is confirmed.
type Passenger struct {
	name           string
	idNumber       string
	phone          string
	nextOfKinName  string
	nextOfKinPhone string
}

func NewPassenger(name, idNumber, phone, nextOfKinName, nextOfKinPhone string) (Passenger, error) {
	name = strings.TrimSpace(name)
	idNumber = strings.TrimSpace(idNumber)
	phone = strings.TrimSpace(phone)
	nextOfKinName = strings.TrimSpace(nextOfKinName)
	nextOfKinPhone = strings.TrimSpace(nextOfKinPhone)

	if len(name) < minNameLength {
		return Passenger{}, ErrPassengerNameTooShort
	}
	if len(idNumber) < minIDNumberLen {
		return Passenger{}, ErrIDNumberTooShort
	}
	if countDigits(phone) < minPhoneDigits {
		return Passenger{}, ErrPhoneTooShort
	}
	if len(nextOfKinName) < minNameLength {
		return Passenger{}, ErrNextOfKinNameTooShort
	}
	if countDigits(nextOfKinPhone) < minPhoneDigits {
		return Passenger{}, ErrPhoneTooShort
	}

	return Passenger{
		name:           name,
		idNumber:       idNumber,
		phone:          phone,
		nextOfKinName:  nextOfKinName,
		nextOfKinPhone: nextOfKinPhone,
	}, nil
}

func (p Passenger) Name() string           { return p.name }
func (p Passenger) IDNumber() string       { return p.idNumber }
func (p Passenger) Phone() string          { return p.phone }
func (p Passenger) NextOfKinName() string  { return p.nextOfKinName }
func (p Passenger) NextOfKinPhone() string { return p.nextOfKinPhone }

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Dollars() float64 {
	return float64(m.cents) / 100.0
}
