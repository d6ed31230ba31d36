package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/mmcloughlin/geohash"
)

// Размеры ячейки geohash на экваторе в км по индексу точности (1..7)
var cellSizesKm = [...]struct{ Width, Height float64 }{
	{0, 0},
	{5009.4, 4992.6},
	{1252.3, 624.1},
	{156.5, 156},
	{39.1, 19.5},
	{4.9, 4.9},
	{1.2, 0.61},
	{0.15, 0.15},
}

// Точность, с которой хранится geohash исполнителя
const storedGeohashPrecision = 9

// geoArea - набор ячеек, покрывающих круг поиска
type geoArea struct {
	Precision uint
	Cells     []string
}

// precisionForRadius выбирает самую мелкую ячейку, у которой обе стороны не меньше радиуса.
// Центральная ячейка и восемь соседних тогда покрывают весь круг.
// Ширина ячейки сжимается к полюсам пропорционально cos(широты).
func precisionForRadius(radiusKm int, lat float64) uint {
	r := float64(radiusKm)
	shrink := math.Cos(lat * math.Pi / 180)
	for p := len(cellSizesKm) - 1; p > 1; p-- {
		size := cellSizesKm[p]
		if min(size.Width*shrink, size.Height) >= r {
			return uint(p)
		}
	}
	return 1
}

func coverArea(lat, lng float64, radiusKm int) geoArea {
	precision := precisionForRadius(radiusKm, lat)
	center := geohash.EncodeWithPrecision(lat, lng, precision)

	cells := append([]string{center}, geohash.Neighbors(center)...)
	slices.Sort(cells)
	return geoArea{Precision: precision, Cells: slices.Compact(cells)}
}

// encodePoint - geohash точки в точности хранения
func encodePoint(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, storedGeohashPrecision)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// lookupArea находит покрытие вокруг центра города.
// Для неизвестного города возвращает nil: фильтр сводится к совпадению city_id.
func lookupArea(ctx context.Context, q rowQuerier, cityID string, radiusKm int) (*geoArea, error) {
	if cityID == "" || radiusKm <= 0 {
		return nil, nil
	}

	var lat, lng float64
	err := q.QueryRow(ctx, `SELECT latitude, longitude FROM cities WHERE slug = $1`, cityID).Scan(&lat, &lng)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up city %q: %w", cityID, err)
	}

	area := coverArea(lat, lng, radiusKm)
	return &area, nil
}
