package services

import (
	"fmt"
	"time"

	"github.com/fenilmodi00/ipo-tracker/models"
	"github.com/fenilmodi00/ipo-tracker/shared"
	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"
)

// CompanyProfileEnricher scrapes a newly listed company's profile page for
// the optional fields archived alongside the listing. Enrichment is best
// effort: any failure is logged and the listing is archived without a
// profile.
type CompanyProfileEnricher struct {
	RequestPacer   *shared.RequestPacer
	utilityService *UtilityService
}

// NewCompanyProfileEnricher creates an enricher with conservative pacing for
// the per-company page fetches.
func NewCompanyProfileEnricher() *CompanyProfileEnricher {
	return &CompanyProfileEnricher{
		RequestPacer:   shared.NewRequestPacer(2 * time.Second),
		utilityService: NewUtilityService(),
	}
}

// FetchProfile scrapes the company page linked from a listing row and
// extracts the about text, website, and sector when present.
func (e *CompanyProfileEnricher) FetchProfile(companyLink string) (*models.CompanyProfile, error) {
	logger := logrus.WithFields(logrus.Fields{
		"component": "CompanyProfileEnricher",
		"method":    "FetchProfile",
		"url":       companyLink,
	})

	e.RequestPacer.Wait()

	profile := &models.CompanyProfile{}

	c := colly.NewCollector()

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})

	c.OnHTML("div.company-profile, div.about, section#profile", func(element *colly.HTMLElement) {
		if profile.About == "" {
			profile.About = e.utilityService.NormalizeWhitespace(element.DOM.Find("p").First().Text())
		}
	})

	c.OnHTML("div.company-links a[href], a.company-website[href]", func(element *colly.HTMLElement) {
		if profile.Website == "" {
			profile.Website = element.Attr("href")
		}
	})

	c.OnHTML("p.sub, div.sub", func(element *colly.HTMLElement) {
		if profile.Sector == "" {
			profile.Sector = e.utilityService.NormalizeWhitespace(element.Text)
		}
	})

	var fetchError error
	c.OnError(func(r *colly.Response, err error) {
		fetchError = err
		logger.WithError(err).WithField("status_code", r.StatusCode).Warn("Company page fetch failed")
	})

	if visitError := c.Visit(companyLink); visitError != nil {
		return nil, fmt.Errorf("failed to visit company page %s: %w", companyLink, visitError)
	}
	if fetchError != nil {
		return nil, fmt.Errorf("failed to fetch company page %s: %w", companyLink, fetchError)
	}

	if profile.About == "" && profile.Website == "" && profile.Sector == "" {
		logger.Debug("Company page carried no recognizable profile fields")
		return nil, nil
	}

	logger.WithFields(logrus.Fields{
		"has_about":   profile.About != "",
		"has_website": profile.Website != "",
		"has_sector":  profile.Sector != "",
	}).Debug("Extracted company profile")

	return profile, nil
}
