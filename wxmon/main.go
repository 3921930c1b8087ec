package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/itohio/gowx/pkg/ads"
	"github.com/itohio/gowx/pkg/calibration"
	"github.com/itohio/gowx/pkg/config"
	"github.com/itohio/gowx/pkg/device"
	"github.com/itohio/gowx/pkg/report"
	"github.com/itohio/gowx/pkg/sink"
	"github.com/itohio/gowx/pkg/station"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	var (
		portFlag    = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag  = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag    = flag.Bool("mock", false, "Use simulated sensors instead of the serial port")
		localFlag   = flag.Bool("local", false, "Sample an ADS1115 on the local I2C bus instead of the serial port")
		listFlag    = flag.Bool("list", false, "List serial ports and exit")
		mqttFlag    = flag.String("mqtt", "", "MQTT broker override (e.g., tcp://localhost:1883)")
		metricsFlag = flag.String("metrics", "", "Prometheus listen address override (e.g., :9100)")
	)
	flag.Parse()

	if *listFlag {
		if err := listPorts(); err != nil {
			log.Fatal(err)
		}
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *mqttFlag != "" {
		cfg.MQTT.Broker = *mqttFlag
	}
	if *metricsFlag != "" {
		cfg.Metrics.Addr = *metricsFlag
	}

	dev, err := openDevice(cfg, *mockFlag, *localFlag)
	if err != nil {
		log.Fatalf("Failed to open device: %v", err)
	}

	reporters, closers, err := buildReporters(cfg)
	if err != nil {
		log.Fatalf("Failed to set up outputs: %v", err)
	}
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	if err := dev.Connect(); err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down")
		dev.Close()
	}()

	for s := range dev.Samples() {
		if err := reporters.Report(s.Reading); err != nil {
			log.Printf("Failed to report reading: %v", err)
		}
	}

	dev.Close()
}

func listPorts() error {
	ports, err := device.Ports()
	if err != nil {
		return err
	}
	for _, p := range ports {
		fmt.Println(p.Name)
	}
	return nil
}

// openDevice selects the reading source.
func openDevice(cfg *config.Config, mock, local bool) (device.Device, error) {
	switch {
	case mock && local:
		return nil, errors.New("-mock and -local are mutually exclusive")
	case mock:
		log.Println("Using simulated sensors")
		return device.NewMock(&cfg.Mock), nil
	case local:
		s, err := ads.Open(cfg.ADS1115)
		if err != nil {
			return nil, err
		}
		log.Printf("Sampling ADS1115 at 0x%02x every %v", cfg.ADS1115.Address, cfg.Station.Interval)
		return device.NewLocal(station.Averaged(s, cfg.Station.Oversample), calibration.Default(), cfg.Station.Interval, device.DefaultBufferSize), nil
	default:
		log.Printf("Reading reports from %s at %d baud", cfg.Serial.Port, cfg.Serial.BaudRate)
		return device.New(cfg.Serial.Port, cfg.Serial.BaudRate, device.DefaultBufferSize), nil
	}
}

// buildReporters wires stdout, MQTT and Prometheus outputs.
func buildReporters(cfg *config.Config) (sink.Multi, []func(), error) {
	w := report.NewWriter(os.Stdout)
	w.SetPrecision(cfg.Station.Precision)

	reporters := sink.Multi{w}
	var closers []func()

	if cfg.MQTT.Broker != "" {
		pub, err := sink.DialMQTT(cfg.MQTT)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Publishing to %s topic %s", cfg.MQTT.Broker, cfg.MQTT.Topic)
		reporters = append(reporters, pub)
		closers = append(closers, func() { pub.Close() })
	}

	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		m, err := sink.NewMetrics(reg)
		if err != nil {
			return nil, nil, err
		}
		reporters = append(reporters, m)

		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: sink.Handler(reg)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("Metrics server failed: %v", err)
			}
		}()
		log.Printf("Serving metrics on %s/metrics", cfg.Metrics.Addr)
		closers = append(closers, func() { srv.Close() })
	}

	return reporters, closers, nil
}
