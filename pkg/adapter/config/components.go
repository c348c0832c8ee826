package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dwarthen/coffeeshops/pkg/adapter/db/postgres"
	"github.com/dwarthen/coffeeshops/pkg/adapter/db/postgres/seedrp"
	"github.com/dwarthen/coffeeshops/pkg/adapter/geocode/google"
	"github.com/dwarthen/coffeeshops/pkg/adapter/geocode/nominatim"
	"github.com/dwarthen/coffeeshops/pkg/adapter/restful/gin"
	"github.com/dwarthen/coffeeshops/pkg/adapter/seed/csvseed"
	"github.com/dwarthen/coffeeshops/pkg/adapter/seed/s3seed"
	"github.com/dwarthen/coffeeshops/pkg/core/geocode"
	"github.com/dwarthen/coffeeshops/pkg/core/repo"
	"github.com/dwarthen/coffeeshops/pkg/core/usecase/shopsuc"
)

// Addr returns the listening address of the HTTP server.
func (s Server) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// NewEngine instantiates a new gin-gonic engine instance based on
// the `g` settings. The request ID middleware is always installed.
func (g Gin) NewEngine() *gin.Engine {
	middlewares := make([]gin.HandlerFunc, 0, 4)
	middlewares = append(middlewares, gin.RequestID())
	if *g.Logger {
		middlewares = append(middlewares, gin.Logger())
	}
	if *g.Recovery {
		middlewares = append(middlewares, gin.Recovery())
	}
	if *g.CORS {
		middlewares = append(middlewares, gin.CORS())
	}
	return gin.New(middlewares...)
}

// NewSeeds instantiates the seeds repository which is selected by the
// `s` settings. The returned close function must be called after the
// seeds are loaded in order to release their resources (e.g., database
// connections). It is never nil when the error is nil.
func (s Seed) NewSeeds(ctx context.Context) (repo.Seeds, func(), error) {
	nop := func() {}
	switch s.Source {
	case SourceFile:
		return csvseed.File{Path: s.Path}, nop, nil
	case SourceS3:
		o, err := s3seed.New(s3seed.Options{
			Endpoint:  s.S3.Endpoint,
			AccessKey: s.S3.AccessKey,
			SecretKey: s.S3.SecretKey,
			UseSSL:    s.S3.UseSSL,
			Region:    s.S3.Region,
		}, s.S3.Bucket, s.S3.Object)
		if err != nil {
			return nil, nil, fmt.Errorf("creating s3 seeds: %w", err)
		}
		return o, nop, nil
	case SourcePostgres:
		r, closer, err := s.Database.NewSeedsRepo(ctx)
		if err != nil {
			return nil, nil, err
		}
		return r, closer, nil
	default:
		return nil, nil, fmt.Errorf("unsupported seed source: %q", s.Source)
	}
}

// NewSeedsRepo connects to the `d` database and instantiates a seeds
// repository for its coffee_shops table. The returned close function
// releases the database connections.
func (d Database) NewSeedsRepo(ctx context.Context) (
	*seedrp.Repo, func(), error,
) {
	if d.URL == "" {
		return nil, nil, errors.New("database url is not configured")
	}
	p, err := postgres.NewPool(ctx, d.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("creating DB pool: %w", err)
	}
	return seedrp.New(p), func() { _ = p.Close() }, nil
}

// NewGeocoder instantiates the geocoding provider which is selected by
// the `g` settings. Its HTTP client times out a bit later than the
// configured timeout, so the context deadline is reported first.
func (g Geocoder) NewGeocoder() (geocode.Geocoder, error) {
	hc := &http.Client{Timeout: time.Duration(*g.Timeout) + time.Second}
	switch g.Provider {
	case ProviderGoogle:
		gc, err := google.New(g.APIKey, g.BaseURL, hc)
		if err != nil {
			return nil, fmt.Errorf("creating google geocoder: %w", err)
		}
		return gc, nil
	case ProviderNominatim:
		return nominatim.New(g.BaseURL, g.UserAgent, hc), nil
	default:
		return nil, fmt.Errorf("unsupported geocoder: %q", g.Provider)
	}
}

// NewShopsUseCase instantiates the coffee shops use case, wrapping the
// `shops` registry and the configured geocoding provider.
// Seeding is left to the caller.
func (c *Config) NewShopsUseCase(shops repo.Shops) (*shopsuc.UseCase, error) {
	g, err := c.Geocoder.NewGeocoder()
	if err != nil {
		return nil, err
	}
	return shopsuc.New(
		shops, g,
		shopsuc.WithGeocodeTimeout(time.Duration(*c.Geocoder.Timeout)),
	)
}
