package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ime-grupo10/vibration-monitor/internal/api"
	"github.com/ime-grupo10/vibration-monitor/internal/bridge"
	"github.com/ime-grupo10/vibration-monitor/internal/export"
	"github.com/ime-grupo10/vibration-monitor/internal/listener"
	"github.com/ime-grupo10/vibration-monitor/internal/metrics"
	"github.com/ime-grupo10/vibration-monitor/internal/model"
	"github.com/ime-grupo10/vibration-monitor/internal/monitor"
	"github.com/ime-grupo10/vibration-monitor/internal/parser"
	"github.com/ime-grupo10/vibration-monitor/pkg/mqtt"
)

func main() {
	cfg := loadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	core := monitor.NewCore(cfg.HistoryCapacity, cfg.AlertThreshold)

	// exporters available to POST /api/v1/export and to auto-export
	csvExporter := &export.CSVExporter{Path: cfg.ExportPath, Timestamped: true}
	exporters := map[string]export.Exporter{"csv": csvExporter}
	if cfg.InfluxURL != "" {
		influx, err := export.NewInfluxExporter(export.InfluxConfig{
			URL:         cfg.InfluxURL,
			Token:       cfg.InfluxToken,
			Org:         cfg.InfluxOrg,
			Bucket:      cfg.InfluxBucket,
			Measurement: cfg.InfluxMeasurement,
		})
		if err != nil {
			log.Fatalf("influx exporter: %v", err)
		}
		exporters["influx"] = influx
	}

	// optional MQTT bridge
	var br *bridge.Bridge
	if cfg.MQTTHost != "" {
		client, err := mqtt.NewConn(&mqtt.Config{
			Host:     cfg.MQTTHost,
			Port:     cfg.MQTTPort,
			User:     cfg.MQTTUser,
			Password: cfg.MQTTPassword,
			ClientID: cfg.MQTTClientID,
		}, ctx)
		if err != nil {
			log.Fatalf("mqtt: %v", err)
		}
		br = bridge.New(core,
			mqtt.NewPublisher(client, bridge.TopicReadings),
			mqtt.NewPublisher(client, bridge.TopicAlerts),
			mqtt.NewConsumer(client, bridge.TopicThreshold, nil))
		go br.Start(ctx)
	}

	l := listener.New(core)
	l.SetCallbacks(
		func(r model.Reading, tr model.Transition) {
			metrics.ObserveData(r, tr)
			if tr != model.TransitionNone {
				log.Printf("monitor: %s at value=%d", tr, r.Value)
			}
			if br != nil {
				br.OnData(r, tr)
			}
		},
		func(err error, fatal bool) {
			if fatal {
				log.Printf("monitor: fatal listener error: %v", err)
				cancel()
				return
			}
			if errors.Is(err, parser.ErrMalformedFields) ||
				errors.Is(err, parser.ErrInvalidTimestamp) ||
				errors.Is(err, parser.ErrInvalidValue) {
				metrics.ParseErrorsTotal.Inc()
			} else {
				metrics.ReceiveErrorsTotal.Inc()
			}
			log.Printf("monitor: %v", err)
		},
	)

	if err := l.Start(cfg.UDPHost, cfg.UDPPort); err != nil {
		log.Fatalf("listener: %v", err)
	}
	defer l.Stop()

	if cfg.AutoExportInterval > 0 {
		auto := export.NewAutoExporter(core.Snapshot, csvExporter, cfg.AutoExportInterval)
		go auto.Run(ctx)
		log.Printf("monitor: auto-export every %s to %s", cfg.AutoExportInterval, cfg.ExportPath)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.NewServer(core, exporters).Router(),
	}
	go func() {
		log.Printf("monitor: http api on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("monitor: http server: %v", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("monitor: shutting down")
	case <-ctx.Done():
	}

	cancel()
	_ = srv.Shutdown(context.Background())
	l.Stop()
}
