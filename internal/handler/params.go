package handler

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
)

// optionalInt parses an optional integer query parameter.
func optionalInt(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &n, nil
}

// optionalCoord parses one optional coordinate and checks its range.
func optionalCoord(q url.Values, key string, limit float64) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, coordRangeError(key, limit)
	}
	if err := checkCoord(key, &v, limit); err != nil {
		return nil, err
	}
	return &v, nil
}

// checkCoord rejects a coordinate outside [-limit, limit]. nil passes.
func checkCoord(key string, v *float64, limit float64) error {
	if v != nil && (math.IsNaN(*v) || math.Abs(*v) > limit) {
		return coordRangeError(key, limit)
	}
	return nil
}

func coordRangeError(key string, limit float64) error {
	return fmt.Errorf("%s must be a number between -%g and %g", key, limit, limit)
}
