package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/moroccotransfers/booking-backend/internal/models"
)

// RouteRepository handles database operations for the routes table
type RouteRepository struct {
	db DB
}

// NewRouteRepository creates a new RouteRepository
func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

const routeColumns = `
	id, pickup, dropoff,
	vito_one_way, dacia_one_way, octavia_one_way, karoq_one_way,
	vito_round_trip, dacia_round_trip, octavia_round_trip, karoq_round_trip,
	created_at, updated_at
`

// GetAll retrieves all routes ordered by pickup name ascending.
// The result is the snapshot the pricing engine operates on.
func (r *RouteRepository) GetAll() ([]models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes ORDER BY pickup ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch routes: %w", err)
	}
	defer rows.Close()

	routes := []models.Route{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, *route)
	}

	return routes, rows.Err()
}

// GetByID retrieves a route by ID
func (r *RouteRepository) GetByID(routeID string) (*models.Route, error) {
	query := `SELECT ` + routeColumns + ` FROM routes WHERE id = $1`

	rows, err := r.db.Query(query, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}

	return scanRoute(rows)
}

// Create inserts a new route. (pickup, dropoff) carries a unique
// constraint; violations surface as ErrDuplicateRoute.
func (r *RouteRepository) Create(req *models.RouteRequest) (*models.Route, error) {
	route := &models.Route{
		ID:        uuid.New().String(),
		Pickup:    req.Pickup,
		Dropoff:   req.Dropoff,
		OneWay:    req.OneWay,
		RoundTrip: normalizeRoundTrip(req.RoundTrip),
	}

	query := `
		INSERT INTO routes (
			id, pickup, dropoff,
			vito_one_way, dacia_one_way, octavia_one_way, karoq_one_way,
			vito_round_trip, dacia_round_trip, octavia_round_trip, karoq_round_trip
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		query,
		route.ID, route.Pickup, route.Dropoff,
		route.OneWay[models.VehicleVito], route.OneWay[models.VehicleDacia],
		route.OneWay[models.VehicleOctavia], route.OneWay[models.VehicleKaroq],
		nullableInt(route.RoundTrip[models.VehicleVito]), nullableInt(route.RoundTrip[models.VehicleDacia]),
		nullableInt(route.RoundTrip[models.VehicleOctavia]), nullableInt(route.RoundTrip[models.VehicleKaroq]),
	).Scan(&route.CreatedAt, &route.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateRoute
		}
		return nil, fmt.Errorf("failed to create route: %w", err)
	}

	return route, nil
}

// Update replaces a route's corridor and prices
func (r *RouteRepository) Update(routeID string, req *models.RouteRequest) error {
	roundTrip := normalizeRoundTrip(req.RoundTrip)

	query := `
		UPDATE routes SET
			pickup = $1, dropoff = $2,
			vito_one_way = $3, dacia_one_way = $4, octavia_one_way = $5, karoq_one_way = $6,
			vito_round_trip = $7, dacia_round_trip = $8, octavia_round_trip = $9, karoq_round_trip = $10,
			updated_at = NOW()
		WHERE id = $11
	`

	result, err := r.db.Exec(
		query,
		req.Pickup, req.Dropoff,
		req.OneWay[models.VehicleVito], req.OneWay[models.VehicleDacia],
		req.OneWay[models.VehicleOctavia], req.OneWay[models.VehicleKaroq],
		nullableInt(roundTrip[models.VehicleVito]), nullableInt(roundTrip[models.VehicleDacia]),
		nullableInt(roundTrip[models.VehicleOctavia]), nullableInt(roundTrip[models.VehicleKaroq]),
		routeID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRoute
		}
		return fmt.Errorf("failed to update route: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// Delete removes a route
func (r *RouteRepository) Delete(routeID string) error {
	result, err := r.db.Exec(`DELETE FROM routes WHERE id = $1`, routeID)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ErrDuplicateRoute indicates a (pickup, dropoff) pair that already exists.
var ErrDuplicateRoute = fmt.Errorf("route with this pickup and dropoff already exists")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func scanRoute(rows *sql.Rows) (*models.Route, error) {
	route := &models.Route{}
	var vitoRT, daciaRT, octaviaRT, karoqRT sql.NullInt64
	var vitoOW, daciaOW, octaviaOW, karoqOW int

	err := rows.Scan(
		&route.ID, &route.Pickup, &route.Dropoff,
		&vitoOW, &daciaOW, &octaviaOW, &karoqOW,
		&vitoRT, &daciaRT, &octaviaRT, &karoqRT,
		&route.CreatedAt, &route.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	route.OneWay = map[models.Vehicle]int{
		models.VehicleVito:    vitoOW,
		models.VehicleDacia:   daciaOW,
		models.VehicleOctavia: octaviaOW,
		models.VehicleKaroq:   karoqOW,
	}
	route.RoundTrip = map[models.Vehicle]*int{
		models.VehicleVito:    intFromNull(vitoRT),
		models.VehicleDacia:   intFromNull(daciaRT),
		models.VehicleOctavia: intFromNull(octaviaRT),
		models.VehicleKaroq:   intFromNull(karoqRT),
	}

	return route, nil
}

// normalizeRoundTrip ensures every vehicle has an entry so lookups are
// deterministic regardless of the request shape.
func normalizeRoundTrip(in map[models.Vehicle]*int) map[models.Vehicle]*int {
	out := map[models.Vehicle]*int{}
	for _, v := range models.Vehicles() {
		out[v] = in[v]
	}
	return out
}

func intFromNull(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	value := int(n.Int64)
	return &value
}

func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
