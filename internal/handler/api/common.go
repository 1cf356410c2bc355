package api

import (
	"errors"
	"strconv"
)

var errNotPositive = errors.New("value must be positive")

func parsePositiveInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, errNotPositive
	}
	return v, nil
}
