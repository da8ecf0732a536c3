// Package check turns a feeder snapshot into a plugin result.
package check

import (
	"context"
	"strconv"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/slim-bean/check-fr24feed/pkg/cfg"
	"github.com/slim-bean/check-fr24feed/pkg/model"
	"github.com/slim-bean/check-fr24feed/pkg/plugin"
)

// Source provides the current feeder snapshot.
type Source interface {
	Fetch(ctx context.Context) (model.Snapshot, error)
}

type Checker struct {
	logger log.Logger
	config cfg.Config
	source Source
	now    func() time.Time
}

func New(logger log.Logger, config cfg.Config, source Source) *Checker {
	return &Checker{
		logger: log.With(logger, "component", "check"),
		config: config,
		source: source,
		now:    time.Now,
	}
}

// Run fetches one snapshot and evaluates it. Any returned error is a *Error
// and supersedes the result. The first failing step aborts the whole run.
func (c *Checker) Run(ctx context.Context) (plugin.Result, error) {
	snap, err := c.source.Fetch(ctx)
	if err != nil {
		return plugin.Result{}, fetchError(err)
	}

	elapsed, err := Freshness(snap, c.now())
	if err != nil {
		return plugin.Result{}, err
	}
	metrics, err := ExtractMetrics(snap)
	if err != nil {
		return plugin.Result{}, err
	}
	status, err := ExtractStatus(snap)
	if err != nil {
		return plugin.Result{}, err
	}
	level.Debug(c.logger).Log("msg", "snapshot parsed", "elapsed", elapsed, "tracked", metrics.SumTracked, "feed_status", status.FeedStatus)

	state, msg := Evaluate(elapsed, c.config.Warning, c.config.Critical, status)
	return plugin.Result{State: state, Message: msg, Perfdata: Perfdata(metrics)}, nil
}

// Freshness returns the whole seconds between now and the feeder's last
// aircraft upload. The value is an absolute difference so a feeder clock
// running ahead still yields a magnitude. Seconds are counted in int64
// rather than time.Duration, which saturates after 292 years.
func Freshness(snap model.Snapshot, now time.Time) (int64, error) {
	sent, err := snap.Time(model.FieldLastACSentTime)
	if err != nil {
		return 0, &Error{Code: CodeFreshness, Msg: MsgFreshness, Err: err}
	}
	secs := now.Unix() - sent.Unix()
	if secs >= 0 {
		return secs, nil
	}
	// sent is a whole second, so a fractional now shortens the gap.
	if now.Nanosecond() > 0 {
		return -secs - 1, nil
	}
	return -secs, nil
}

func ExtractMetrics(snap model.Snapshot) (model.Metrics, error) {
	var (
		m   model.Metrics
		err error
	)
	for _, f := range []struct {
		key string
		dst *int64
	}{
		{model.FieldADSBTracked, &m.ADSBTracked},
		{model.FieldNonADSBTracked, &m.NonADSBTracked},
		{model.FieldTracked, &m.SumTracked},
	} {
		if *f.dst, err = snap.Int(f.key); err != nil {
			return model.Metrics{}, &Error{Code: CodeMetrics, Msg: MsgMetrics, Err: err}
		}
	}
	return m, nil
}

func ExtractStatus(snap model.Snapshot) (model.Status, error) {
	fail := func(err error) (model.Status, error) {
		return model.Status{}, &Error{Code: CodeStatus, Msg: MsgStatus, Err: err}
	}

	feed, err := snap.String(model.FieldFeedStatus)
	if err != nil {
		return fail(err)
	}
	rx, err := snap.String(model.FieldLastRxConnectStatus)
	if err != nil {
		return fail(err)
	}
	connected, err := snap.Time(model.FieldLastConnectedTime)
	if err != nil {
		return fail(err)
	}
	return model.Status{
		FeedStatus:          feed,
		LastRxConnectStatus: rx,
		LastConnected:       connected,
	}, nil
}

// Evaluate compares elapsed against the thresholds. Critical is checked
// first and both bounds are exclusive.
func Evaluate(elapsed int64, warning, critical int, status model.Status) (plugin.State, string) {
	e := strconv.FormatInt(elapsed, 10)
	switch {
	case elapsed > int64(critical):
		return plugin.Critical, "CRIT threshold reached: " + e
	case elapsed > int64(warning):
		return plugin.Warning, "WARN threshold reached: " + e
	default:
		return plugin.OK, "Feeder: OK - " + e + "s since last upload" +
			"\nStatus: " + status.FeedStatus + " since " + status.LastConnectedString()
	}
}

// Perfdata reports the tracked aircraft counters, bounded below by zero.
func Perfdata(m model.Metrics) []plugin.Perfdata {
	return []plugin.Perfdata{
		{Label: "adsb_tracked", Value: float64(m.ADSBTracked), Min: "0"},
		{Label: "non_adsb_tracked", Value: float64(m.NonADSBTracked), Min: "0"},
		{Label: "sum_tracked", Value: float64(m.SumTracked), Min: "0"},
	}
}
