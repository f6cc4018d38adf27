package app

import (
	"fmt"

	claimsClient "github.com/apexclaims/feedback/internal/claims/client"
	claimsHTTP "github.com/apexclaims/feedback/internal/claims/http"
	claimsRepository "github.com/apexclaims/feedback/internal/claims/repository"
	claimsUsecase "github.com/apexclaims/feedback/internal/claims/usecase"
	"github.com/apexclaims/feedback/internal/metrics"
)

// ClaimRepository returns the in-memory claim store shared by the enricher
// and the claims handler.
func (c *Container) ClaimRepository() *claimsRepository.MemoryClaimRepository {
	c.claimRepoInit.Do(func() {
		c.claimRepo = claimsRepository.NewMemoryClaimRepository()
	})
	return c.claimRepo
}

// Enricher returns the claim enrichment use case instance.
func (c *Container) Enricher() (*claimsUsecase.Enricher, error) {
	var err error
	c.enricherInit.Do(func() {
		c.enricher, err = c.initEnricher()
		if err != nil {
			c.initErrors["enricher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["enricher"]; exists {
		return nil, storedErr
	}
	return c.enricher, nil
}

// FraudScorer returns the fraud scoring use case instance.
func (c *Container) FraudScorer() (*claimsUsecase.FraudScorer, error) {
	var err error
	c.fraudScorerInit.Do(func() {
		var business metrics.BusinessMetrics
		business, err = c.BusinessMetrics()
		if err != nil {
			c.initErrors["fraudScorer"] = err
			return
		}
		c.fraudScorer = claimsUsecase.NewFraudScorer(business, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fraudScorer"]; exists {
		return nil, storedErr
	}
	return c.fraudScorer, nil
}

// GeocodeLookup returns the hosted geocoding lookup instance.
func (c *Container) GeocodeLookup() *claimsUsecase.GeocodeLookup {
	c.geocodeLookupInit.Do(func() {
		c.geocodeLookup = claimsUsecase.NewGeocodeLookup(
			c.RemoteClient(),
			c.config.MapsSearchURL,
			c.config.MapsKey,
			c.Logger(),
		)
	})
	return c.geocodeLookup
}

// WeatherLookup returns the hosted historical weather lookup instance.
func (c *Container) WeatherLookup() *claimsUsecase.WeatherLookup {
	c.weatherLookupInit.Do(func() {
		c.weatherLookup = claimsUsecase.NewWeatherLookup(
			c.RemoteClient(),
			c.config.MeteoArchiveURL,
			c.Logger(),
		)
	})
	return c.weatherLookup
}

// ClaimsHandler returns the claims HTTP handler instance.
func (c *Container) ClaimsHandler() (*claimsHTTP.ClaimsHandler, error) {
	var err error
	c.claimsHandlerInit.Do(func() {
		c.claimsHandler, err = c.initClaimsHandler()
		if err != nil {
			c.initErrors["claimsHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["claimsHandler"]; exists {
		return nil, storedErr
	}
	return c.claimsHandler, nil
}

// initEnricher creates the enricher with its lookup clients and claim store.
func (c *Container) initEnricher() (*claimsUsecase.Enricher, error) {
	logger := c.Logger()
	client := c.RemoteClient()
	policy := c.RetryPolicy()

	business, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for enricher: %w", err)
	}

	geocoder := claimsClient.NewGeocodeClient(client, policy, c.config.GeocodeAPIURL, c.config.GeocodeAPIKey, logger)
	weather := claimsClient.NewWeatherClient(client, policy, c.config.WeatherAPIURL, c.config.WeatherAPIKey, logger)

	return claimsUsecase.NewEnricher(geocoder, weather, c.ClaimRepository(), business, logger), nil
}

// initClaimsHandler creates the claims handler with all its use cases.
func (c *Container) initClaimsHandler() (*claimsHTTP.ClaimsHandler, error) {
	scorer, err := c.FraudScorer()
	if err != nil {
		return nil, fmt.Errorf("failed to get fraud scorer for claims handler: %w", err)
	}

	enricher, err := c.Enricher()
	if err != nil {
		return nil, fmt.Errorf("failed to get enricher for claims handler: %w", err)
	}

	return claimsHTTP.NewClaimsHandler(
		scorer,
		c.GeocodeLookup(),
		c.WeatherLookup(),
		enricher,
		c.ClaimRepository(),
		c.Logger(),
	), nil
}
