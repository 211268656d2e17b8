package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/markbook/core/metrics"
	"github.com/kilianp07/markbook/infra/logger"
)

// InfluxSink writes grading runs to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
	students bool
}

// InfluxConfig holds the connection settings of the influx sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
	// Students also writes one point per student.
	Students bool `json:"students"`
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
		students: cfg.Students,
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes a grading_run point and, when enabled, a student_mark
// point per record.
func (s *InfluxSink) RecordRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ts := ev.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	p := write.NewPointWithMeasurement("grading_run").
		AddTag("run_id", ev.RunID).
		AddTag("input", ev.Input).
		AddTag("status", ev.Status()).
		AddField("students", ev.Summary.Total).
		AddField("first", ev.Summary.First).
		AddField("second", ev.Summary.Second).
		AddField("third", ev.Summary.Third).
		AddField("fail", ev.Summary.Fail).
		AddField("mean", round3(ev.Summary.Stats.Mean)).
		AddField("duration_ms", ev.Duration.Milliseconds()).
		SetTime(ts)
	if ev.ErrorKind != "" {
		p.AddTag("error_kind", ev.ErrorKind)
	}
	points := []*write.Point{p}
	if s.students && !ev.Failed() {
		for _, r := range ev.Records {
			points = append(points, write.NewPointWithMeasurement("student_mark").
				AddTag("run_id", ev.RunID).
				AddTag("reg_no", strconv.Itoa(r.RegNo)).
				AddTag("grade", r.Grade.Label()).
				AddField("exam", r.ExamMark).
				AddField("coursework", r.CourseworkMark).
				AddField("overall", r.OverallMark).
				SetTime(ts))
		}
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// Close releases the client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
