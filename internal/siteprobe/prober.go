// Package siteprobe fetches a company's homepage and records what a crawler
// sees there.
package siteprobe

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

const userAgent = "AIVisibility-Probe/1.0"

// Snapshot is what the probe observed on the homepage
type Snapshot struct {
	URL         string `json:"url"`
	Reachable   bool   `json:"reachable"`
	StatusCode  int    `json:"status_code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Prober struct {
	timeout time.Duration
	logger  *logrus.Logger
}

func NewProber(timeout time.Duration, logger *logrus.Logger) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Prober{timeout: timeout, logger: logger}
}

// Probe visits the website once. It never fails: an unreachable site is
// reported with Reachable false.
func (p *Prober) Probe(ctx context.Context, website string) Snapshot {
	target := strings.TrimSpace(website)
	lower := strings.ToLower(target)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		target = "https://" + target
	}
	snapshot := Snapshot{URL: target}

	if ctx.Err() != nil {
		return snapshot
	}

	timeout, ok := p.requestTimeout(ctx)
	if !ok {
		return snapshot
	}

	// A fresh collector per probe keeps visited-URL state out of later requests
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(timeout)

	c.OnResponse(func(r *colly.Response) {
		snapshot.StatusCode = r.StatusCode
		snapshot.URL = r.Request.URL.String()
		snapshot.Reachable = true
	})

	c.OnHTML("head", func(e *colly.HTMLElement) {
		snapshot.Title, snapshot.Description = readHead(e.DOM)
	})

	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			snapshot.StatusCode = r.StatusCode
		}
		snapshot.Reachable = false
		p.logger.WithFields(logrus.Fields{
			"url":         target,
			"status_code": snapshot.StatusCode,
		}).WithError(err).Debug("Site probe failed")
	})

	if err := c.Visit(target); err != nil {
		snapshot.Reachable = false
		return snapshot
	}

	p.logger.WithFields(logrus.Fields{
		"url":         snapshot.URL,
		"status_code": snapshot.StatusCode,
		"has_title":   snapshot.Title != "",
	}).Debug("Site probed")

	return snapshot
}

func readHead(head *goquery.Selection) (string, string) {
	title := strings.TrimSpace(head.Find("title").First().Text())

	description := head.Find(`meta[name="description"]`).AttrOr("content", "")
	if description == "" {
		description = head.Find(`meta[property="og:description"]`).AttrOr("content", "")
	}
	return title, strings.TrimSpace(description)
}

// requestTimeout bounds the probe by the context deadline. A zero or negative
// http.Client timeout disables the limit, so an exhausted budget reports false.
func (p *Prober) requestTimeout(ctx context.Context) (time.Duration, bool) {
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	return timeout, timeout > 0
}
