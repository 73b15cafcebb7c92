package elastic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/olivere/elastic/v7"

	"github.com/rdkhare/CourtFinder/internal/core/domain"
	"github.com/rdkhare/CourtFinder/internal/core/ports/driven"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.PlaceSearch = (*Client)(nil)

// DefaultIndex is the index queried when none is configured.
const DefaultIndex = "courts"

// defaultSize matches one page of Places text search results.
const defaultSize = 20

var esLog = logger.Component("elastic")

// Config configures the Elasticsearch client.
type Config struct {
	URL          string
	Index        string
	RadiusMeters int
	Size         int
}

// Client searches a courts index.
type Client struct {
	es     *elastic.Client
	index  string
	radius int
	size   int
}

// courtDocument is the stored form of a court. Decoding goes through the
// embedded Court, which rejects incomplete records.
type courtDocument struct {
	domain.Court
	Location elastic.GeoPoint `json:"location"`
}

// NewClient connects to the cluster at cfg.URL. Sniffing and background
// health checks are disabled so single-node and proxied clusters work.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: elasticsearch url is required", domain.ErrInvalidInput)
	}
	es, err := elastic.NewClient(
		elastic.SetURL(cfg.URL),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: creating elasticsearch client: %v", domain.ErrNetworkFailure, err)
	}

	if cfg.Index == "" {
		cfg.Index = DefaultIndex
	}
	if cfg.Size <= 0 {
		cfg.Size = defaultSize
	}
	return &Client{es: es, index: cfg.Index, radius: cfg.RadiusMeters, size: cfg.Size}, nil
}

// SearchNearby returns indexed courts ordered by distance from point.
func (c *Client) SearchNearby(ctx context.Context, point domain.Coordinate) ([]domain.Court, error) {
	var query elastic.Query = elastic.NewMatchAllQuery()
	if c.radius > 0 {
		query = elastic.NewBoolQuery().Filter(
			elastic.NewGeoDistanceQuery("location").
				Lat(point.Lat).
				Lon(point.Lng).
				Distance(strconv.Itoa(c.radius) + "m"),
		)
	}

	result, err := c.es.Search().
		Index(c.index).
		Query(query).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(point.Lat, point.Lng).
			Asc().
			Unit("m").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(c.size).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: searching %s: %v", domain.ErrNetworkFailure, c.index, err)
	}

	courts := make([]domain.Court, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var doc courtDocument
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			if errors.Is(err, domain.ErrDecodeFailure) {
				return nil, fmt.Errorf("hit %s: %w", hit.Id, err)
			}
			return nil, fmt.Errorf("%w: hit %s: %v", domain.ErrDecodeFailure, hit.Id, err)
		}
		courts = append(courts, doc.Court)
	}

	esLog.Debug("found %d courts near %s in %s", len(courts), point, c.index)
	return courts, nil
}

// EnsureIndex creates the index with the courts mapping if it is missing.
func (c *Client) EnsureIndex(ctx context.Context) error {
	exists, err := c.es.IndexExists(c.index).Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: checking index %s: %v", domain.ErrNetworkFailure, c.index, err)
	}
	if exists {
		return nil
	}

	created, err := c.es.CreateIndex(c.index).BodyString(indexMapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("%w: creating index %s: %v", domain.ErrNetworkFailure, c.index, err)
	}
	if !created.Acknowledged {
		esLog.Warn("create index %s was not acknowledged", c.index)
	}
	return nil
}

// Index stores courts keyed by PlaceID and returns how many were accepted.
func (c *Client) Index(ctx context.Context, courts []domain.Court) (int, error) {
	if len(courts) == 0 {
		return 0, nil
	}

	bulk := c.es.Bulk().Index(c.index)
	for _, court := range courts {
		if court.PlaceID == "" {
			return 0, fmt.Errorf("%w: court %q has no place id", domain.ErrInvalidInput, court.Name)
		}
		court.DistanceMiles = nil
		loc := court.Location()
		bulk.Add(elastic.NewBulkIndexRequest().
			Id(court.PlaceID).
			Doc(courtDocument{Court: court, Location: elastic.GeoPoint{Lat: loc.Lat, Lon: loc.Lng}}))
	}

	resp, err := bulk.Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: bulk indexing: %v", domain.ErrNetworkFailure, err)
	}

	failed := resp.Failed()
	for _, item := range failed {
		if item.Error != nil {
			esLog.Warn("indexing %s failed: %s", item.Id, item.Error.Reason)
		}
	}
	return len(courts) - len(failed), nil
}
