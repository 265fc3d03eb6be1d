package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/letterflow/letterflow/config"
	"github.com/letterflow/letterflow/pkg/emailbuilder"
	"github.com/letterflow/letterflow/pkg/logger"
)

func main() {
	in := flag.String("in", "", "compile request JSON file (default stdin)")
	out := flag.String("out", "", "output HTML file (default stdout)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.NewLoggerWithLevel(cfg.LogLevel)

	var input []byte
	if *in != "" {
		input, err = os.ReadFile(*in)
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.WithField("error", err.Error()).Error("failed to read compile request")
		os.Exit(1)
	}

	var req emailbuilder.CompileRequest
	if err := json.Unmarshal(input, &req); err != nil {
		log.WithField("error", err.Error()).Error("failed to decode compile request")
		os.Exit(1)
	}

	// Config supplies the tracking defaults the request leaves blank.
	if req.Tracking.Endpoint == "" {
		req.Tracking.Endpoint = cfg.Tracking.Endpoint
	}
	if req.Tracking.UTMSource == "" {
		req.Tracking.UTMSource = cfg.Tracking.UTMSource
	}
	if req.Tracking.UTMMedium == "" {
		req.Tracking.UTMMedium = cfg.Tracking.UTMMedium
	}
	if req.Tracking.UTMCampaign == "" {
		req.Tracking.UTMCampaign = cfg.Tracking.UTMCampaign
	}

	compiler := emailbuilder.NewCompiler(emailbuilder.AssetResolver{BaseURL: cfg.Assets.BaseURL})
	resp, err := compiler.CompileTemplate(req)
	if err != nil {
		log.WithField("error", err.Error()).Error("compile failed")
		os.Exit(1)
	}
	if !resp.Success {
		log.WithField("error", *resp.Error).Error("compile rejected")
		os.Exit(1)
	}

	if *out != "" {
		if err := os.WriteFile(*out, []byte(*resp.HTML), 0o644); err != nil {
			log.WithField("error", err.Error()).Error("failed to write output")
			os.Exit(1)
		}
		log.WithField("path", *out).Info("wrote compiled email")
		return
	}
	fmt.Print(*resp.HTML)
}
