package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	server "github.com/scoutingnl/opkomst-ical"
	"github.com/scoutingnl/opkomst-ical/feed"
	"github.com/sirupsen/logrus"
)

func main() {
	var (
		addr       string
		logFile    string
		logLevel   string
		configFile string
		eventsFile string
		out        string
	)
	flag.StringVar(&logFile, "logfile", "", "File to log to")
	flag.StringVar(&logLevel, "loglevel", "info", "log level")
	flag.StringVar(&addr, "addr", "0.0.0.0:80", "local address:port to bind to")
	flag.StringVar(&configFile, "config", "", "YAML file with feed settings")
	flag.StringVar(&eventsFile, "events", "events.yaml", "YAML or JSON file with the events")
	flag.StringVar(&out, "out", "", "Write the feed to this file and exit, - for stdout")
	flag.Parse()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Invalid log level")
		os.Exit(1)
	}
	logrus.SetLevel(level)

	if logFile != "" {
		logFH, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to open log file: ", err)
			os.Exit(1)
		}
		defer logFH.Close()
		logrus.SetOutput(logFH)
	}

	cfg, err := feed.LoadConfig(configFile)
	if err != nil {
		logrus.Fatal(err)
	}
	builder, err := feed.New(cfg)
	if err != nil {
		logrus.Fatalf("Invalid config: %s", err)
	}
	source := server.FileSource{Path: eventsFile}

	if out != "" {
		if err := writeFeed(builder, source, out); err != nil {
			logrus.Fatal(err)
		}
		return
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if err := server.New(router, source, server.WithBuilder(builder)); err != nil {
		logrus.Fatal(err)
	}

	logrus.Infof("Serving %s on %s", server.FeedPath, addr)
	logrus.Error(http.ListenAndServe(addr, router))
}

func writeFeed(builder *feed.Builder, source server.EventSource, out string) error {
	events, err := source.Events(context.Background())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("error creating %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}

	return builder.Write(w, events)
}
