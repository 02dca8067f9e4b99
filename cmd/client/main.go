// Package main runs the focus-time client: it logs in, starts a ticking
// focus session against the server, and flushes the final tally on exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omsandippatil/9Lives-sub003/internal/client/focus"
	"github.com/omsandippatil/9Lives-sub003/internal/logger"
)

var (
	version   string
	buildDate string
)

// main parses command-line flags, authenticates, and runs a focus session
// until interrupted.
func main() {
	var (
		baseURL  string
		loginStr string
		password string
		showVer  bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&loginStr, "login", "", "username")
	flag.StringVar(&password, "password", "", "password")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Focus Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	if loginStr == "" || password == "" {
		log.Fatal("please provide -login and -password")
	}

	zl := logger.New()
	if err := zl.Init("info"); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Log.Sync() }()

	client := &http.Client{Timeout: 10 * time.Second}

	ctx := context.Background()
	token, err := focus.Login(ctx, client, baseURL, loginStr, password)
	if err != nil {
		log.Fatal(err)
	}

	session := focus.NewSession(client, baseURL, token, zl.Log)
	if err := session.Start(ctx); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("focus session started at %d seconds, Ctrl+C to stop\n", session.Elapsed())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if err := session.End(); err != nil {
		log.Printf("final flush failed: %v", err)
	}
	fmt.Printf("focus session ended at %d seconds\n", session.Elapsed())
}
