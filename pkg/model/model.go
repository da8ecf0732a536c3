package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Keys read from the feeder's monitor.json.
const (
	FieldLastACSentTime      = "feed_last_ac_sent_time"
	FieldADSBTracked         = "feed_num_ac_adsb_tracked"
	FieldNonADSBTracked      = "feed_num_ac_non_adsb_tracked"
	FieldTracked             = "feed_num_ac_tracked"
	FieldFeedStatus          = "feed_status"
	FieldLastRxConnectStatus = "last_rx_connect_status"
	FieldLastConnectedTime   = "feed_last_connected_time"
)

// TimestampLayout is the UTC layout used when reporting feeder timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Snapshot is the decoded monitor.json body. The feeder publishes a flat
// object and every value is kept as decoded.
type Snapshot map[string]interface{}

type number interface {
	Int64() (int64, error)
	Float64() (float64, error)
}

// Int reads key as an integer. Numbers with a fractional part are truncated
// and numeric strings are accepted, matching what the feeder has been seen
// to publish.
func (s Snapshot) Int(key string) (int64, error) {
	v, ok := s[key]
	if !ok {
		return 0, fmt.Errorf("field %q missing", key)
	}

	switch n := v.(type) {
	case number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", key, err)
		}
		return truncate(key, f)
	case float64:
		return truncate(key, n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", key, err)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("field %q has type %T, want number", key, v)
	}
}

// String reads key as a string.
func (s Snapshot) String(key string) (string, error) {
	v, ok := s[key]
	if !ok {
		return "", fmt.Errorf("field %q missing", key)
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q has type %T, want string", key, v)
	}
	return str, nil
}

// Unix seconds of the first and last instant that TimestampLayout can render
// with a four digit year.
var (
	minUnix = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxUnix = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// Time reads key as Unix seconds. Timestamps outside the years 1 to 9999,
// such as millisecond values, are rejected.
func (s Snapshot) Time(key string) (time.Time, error) {
	sec, err := s.Int(key)
	if err != nil {
		return time.Time{}, err
	}
	if sec < minUnix || sec > maxUnix {
		return time.Time{}, fmt.Errorf("field %q: timestamp %d out of range", key, sec)
	}
	return time.Unix(sec, 0).UTC(), nil
}

func truncate(key string, f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("field %q: %v out of range", key, f)
	}
	return int64(f), nil
}

type Metrics struct {
	ADSBTracked    int64
	NonADSBTracked int64
	SumTracked     int64
}

type Status struct {
	FeedStatus          string
	LastRxConnectStatus string
	LastConnected       time.Time
}

// LastConnectedString renders LastConnected in UTC using TimestampLayout.
func (s Status) LastConnectedString() string {
	return s.LastConnected.UTC().Format(TimestampLayout)
}
