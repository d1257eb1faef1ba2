package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/tagscan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	// Logger is nil unless --verbose is set.
	Logger *slog.Logger

	Fetcher    tagscan.Fetcher
	Extractors map[string]tagscan.TagExtractor
	Cleaner    tagscan.Cleaner
	Converter  tagscan.Converter
	Runs       tagscan.RunService
	Writer     tagscan.RunWriter
	Limiter    tagscan.DomainLimiter

	// RetryDelays overrides the batch fetch backoff. Nil uses the default.
	RetryDelays []time.Duration
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `help:"SQLite database path" env:"TAGSCAN_DB" type:"path"`
	Verbose bool   `short:"v" help:"Log fetches, extractions and diagnostics to stderr"`

	Extract ExtractCmd `cmd:"" help:"Extract tag content from a file, URL or standard input"`
	Compare CompareCmd `cmd:"" help:"Compare the scan, dom and xml approaches on one source"`
	Batch   BatchCmd   `cmd:"" help:"Extract tags from many sources concurrently"`
	Runs    RunsCmd    `cmd:"" help:"List stored runs"`
	Show    ShowCmd    `cmd:"" help:"Show a stored run"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a stored run"`
}

// SourceFlags are shared by commands that read markup.
type SourceFlags struct {
	Tags   []string `short:"t" name:"tag" required:"" help:"Tag name to extract (repeatable or comma-separated)"`
	Clean  string   `enum:"none,trafilatura,readability" default:"none" help:"Narrow web pages to their main content first (none, trafilatura, readability)"`
	Render bool     `help:"Render web pages in headless Chrome before scanning"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source string `arg:"" help:"File path, http(s) URL, or - for standard input"`
	SourceFlags

	Approach string `short:"a" enum:"scan,dom,xml" default:"scan" help:"Extraction approach (scan, dom, xml)"`
	Store    bool   `help:"Collect diagnostics and print them after the records"`
	Context  int    `help:"Show this many bytes of input around each diagnostic"`
	Full     bool   `help:"Print full record content"`
	Markdown bool   `help:"Render record content as Markdown"`
	JSON     bool   `name:"json" help:"Print the run as JSON"`
	Save     bool   `help:"Store the run in the database"`
	Out      string `type:"path" help:"Write a Markdown report to this directory"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	Source string `arg:"" help:"File path, http(s) URL, or - for standard input"`
	SourceFlags

	Iterations int `short:"n" default:"10" help:"Runs per approach; timings are averaged"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	Sources []string `arg:"" help:"File paths or http(s) URLs"`
	SourceFlags

	Approach    string  `short:"a" enum:"scan,dom,xml" default:"scan" help:"Extraction approach (scan, dom, xml)"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent source limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per host"`
	Save        bool    `help:"Store every run in the database"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Source   string `help:"Only runs of this source"`
	Approach string `help:"Only runs of this approach"`
	Limit    int    `default:"20" help:"Maximum runs to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Run ID"`
	Full bool   `help:"Print full record content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}
