package postgres_adapter

import (
	"context"
	"discovery-service/internal/contextkeys"
	"discovery-service/internal/core/domain"
	"discovery-service/internal/core/port"
	_ "embed"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed migrations/schema.sql
var schemaSQL string

// demoNamespace - пространство имен для детерминированных id демо-исполнителей
var demoNamespace = uuid.MustParse("3f0c6a52-7a1e-4e55-9d0b-8c2f5e4b1a90")

// SeedReport - сколько записей каждого вида записано
type SeedReport struct {
	Cities    int
	Genres    int
	Amenities int
	Artists   int
	Venues    int
}

type Seeder struct {
	pool *pgxpool.Pool
}

func NewSeeder(pool *pgxpool.Pool) (*Seeder, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &Seeder{pool: pool}, nil
}

// Migrate применяет встроенную схему, повторный запуск безопасен
func (s *Seeder) Migrate(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "Seeder", "method": "Migrate"})

	// без аргументов pgx использует простой протокол, несколько команд за раз допустимы
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		logger.Error("Failed to apply schema", err, nil)
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	logger.Info("Schema applied", nil)
	return nil
}

// DemoVendorID - детерминированный id демо-исполнителя
func DemoVendorID(vendorType domain.VendorType, name string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte(string(vendorType)+":"+name))
}

// SeedDemo записывает демо-справочники и исполнителей одним батчем в транзакции.
// Записи обновляются по ключу, повторный запуск не плодит дубликаты.
func (s *Seeder) SeedDemo(ctx context.Context) (*SeedReport, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "Seeder", "method": "SeedDemo"})

	batch, report, err := buildDemoBatch()
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			results.Close()
			logger.Error("Demo batch statement failed", err, port.Fields{"statement": i})
			return nil, fmt.Errorf("demo batch statement %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("failed to close demo batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Info("Demo data seeded", port.Fields{
		"cities":  report.Cities,
		"genres":  report.Genres,
		"artists": report.Artists,
		"venues":  report.Venues,
	})
	return report, nil
}

func buildDemoBatch() (*pgx.Batch, *SeedReport, error) {
	batch := &pgx.Batch{}
	report := &SeedReport{}

	cities := make(map[string]demoCity, len(demoCities))
	for _, c := range demoCities {
		cities[c.Slug] = c
		batch.Queue(`
			INSERT INTO cities (slug, name, latitude, longitude, geohash) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude, geohash = EXCLUDED.geohash`,
			c.Slug, c.Name, c.Lat, c.Lng, encodePoint(c.Lat, c.Lng))
		report.Cities++
	}

	genreSlugs := make([]string, 0, len(demoGenres))
	for slug := range demoGenres {
		genreSlugs = append(genreSlugs, slug)
	}
	sort.Strings(genreSlugs)
	for _, slug := range genreSlugs {
		batch.Queue(`INSERT INTO genres (slug, name) VALUES ($1, $2) ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name`,
			slug, demoGenres[slug])
		report.Genres++
	}

	for _, slug := range demoAmenities {
		batch.Queue(`INSERT INTO amenities (slug, name) VALUES ($1, $2) ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name`,
			slug, displayName(slug))
		report.Amenities++
	}

	const upsertVendor = `
		INSERT INTO vendors (id, vendor_type, name, description, city_id, category_ids, venue_type, amenity_ids,
			price_min, price_max, capacity_min, capacity_max, rating, image_url, geohash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description,
			city_id = EXCLUDED.city_id, category_ids = EXCLUDED.category_ids, venue_type = EXCLUDED.venue_type,
			amenity_ids = EXCLUDED.amenity_ids, price_min = EXCLUDED.price_min, price_max = EXCLUDED.price_max,
			capacity_min = EXCLUDED.capacity_min, capacity_max = EXCLUDED.capacity_max, rating = EXCLUDED.rating,
			image_url = EXCLUDED.image_url, geohash = EXCLUDED.geohash, created_at = EXCLUDED.created_at`

	for i, a := range demoArtists {
		city, ok := cities[a.CitySlug]
		if !ok {
			return nil, nil, fmt.Errorf("demo artist %q references unknown city %q", a.Name, a.CitySlug)
		}
		batch.Queue(upsertVendor,
			DemoVendorID(domain.VendorTypeArtist, a.Name), string(domain.VendorTypeArtist), a.Name, a.Bio, a.CitySlug,
			a.Genres, nil, []string{}, a.HourlyRate, a.HourlyRate, nil, nil, a.Rating,
			imageURL(a.ImageID), encodePoint(city.Lat, city.Lng), demoEpoch.Add(time.Duration(i)*time.Hour))
		report.Artists++
	}

	for i, v := range demoVenues {
		city, ok := cities[v.CitySlug]
		if !ok {
			return nil, nil, fmt.Errorf("demo venue %q references unknown city %q", v.Name, v.CitySlug)
		}
		batch.Queue(upsertVendor,
			DemoVendorID(domain.VendorTypeVenue, v.Name), string(domain.VendorTypeVenue), v.Name, v.Description, v.CitySlug,
			[]string{}, v.Type, v.Amenities, nil, nil, v.CapacityMin, v.CapacityMax, v.Rating,
			imageURL(v.ImageID), encodePoint(city.Lat, city.Lng), demoEpoch.Add(time.Duration(i)*time.Hour))
		report.Venues++
	}

	return batch, report, nil
}

func imageURL(id int) string {
	return fmt.Sprintf("https://picsum.photos/id/%d/800/600", id)
}
