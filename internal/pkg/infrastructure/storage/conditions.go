package storage

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/diwise/iot-telemetry-alerts/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/jackc/pgx/v5"
)

// MaxLimit caps page sizes requested through query parameters.
const MaxLimit = 1000

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	SensorID   string
	LocationID *int
	Severity   *types.Severity
	Tenants    []string

	Since time.Time
	Until time.Time

	sortOrder string

	offset *int
	limit  *int
}

func (c Condition) SortOrder() string {
	if c.sortOrder == "" {
		return "DESC"
	}
	return c.sortOrder
}

func (c Condition) Offset() int {
	if c.offset == nil {
		return 0
	}
	return *c.offset
}

func (c Condition) Limit() int {
	if c.limit == nil {
		return 0
	}
	return *c.limit
}

func (c Condition) OffsetLimit() string {
	offsetLimit := ""
	if c.offset != nil {
		offsetLimit += "OFFSET @offset "
	}
	if c.limit != nil {
		offsetLimit += "LIMIT @limit "
	}
	return offsetLimit
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.SensorID != "" {
		args["sensor_id"] = c.SensorID
	}
	if c.LocationID != nil {
		args["location_id"] = *c.LocationID
	}
	if c.Severity != nil {
		args["severity"] = int(*c.Severity)
	}
	if len(c.Tenants) > 0 {
		args["tenants"] = c.Tenants
	}
	if !c.Since.IsZero() {
		args["since"] = c.Since.UTC()
	}
	if !c.Until.IsZero() {
		args["until"] = c.Until.UTC()
	}
	if c.offset != nil {
		args["offset"] = *c.offset
	}
	if c.limit != nil {
		args["limit"] = *c.limit
	}

	return args
}

// Where renders the filter for a table whose time column is timeColumn.
func (c Condition) Where(timeColumn string) string {
	where := []string{}

	if c.SensorID != "" {
		where = append(where, "sensor_id = @sensor_id")
	}

	if c.LocationID != nil {
		where = append(where, "location_id = @location_id")
	}

	if c.Severity != nil {
		where = append(where, "severity = @severity")
	}

	if len(c.Tenants) > 0 {
		where = append(where, "tenant = ANY(@tenants)")
	}

	if !c.Since.IsZero() {
		where = append(where, timeColumn+" >= @since")
	}

	if !c.Until.IsZero() {
		where = append(where, timeColumn+" < @until")
	}

	if len(where) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(where, " AND ")
}

func WithSensorID(sensorID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.SensorID = types.NormalizeSensorID(sensorID)
		return c
	}
}

func WithLocationID(locationID int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.LocationID = &locationID
		return c
	}
}

func WithSeverity(s types.Severity) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Severity = &s
		return c
	}
}

func WithTenants(tenants []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tenants = unique(tenants)
		return c
	}
}

func WithSince(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Since = ts
		return c
	}
}

func WithUntil(ts time.Time) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Until = ts
		return c
	}
}

func WithSortDesc(desc bool) ConditionFunc {
	return func(c *Condition) *Condition {
		if desc {
			c.sortOrder = "DESC"
		} else {
			c.sortOrder = "ASC"
		}
		return c
	}
}

func WithOffset(offset int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = &offset
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}

func unique(s []string) []string {
	keys := make(map[string]bool)
	list := []string{}
	for _, entry := range s {
		if _, value := keys[entry]; !value {
			keys[entry] = true
			list = append(list, entry)
		}
	}
	return list
}

func ParseConditions(ctx context.Context, params map[string][]string) []ConditionFunc {
	log := logging.GetFromContext(ctx)

	conditions := make([]ConditionFunc, 0)

	for k, v := range params {
		switch strings.ToLower(k) {
		case "sensorid", "sensor_id":
			conditions = append(conditions, WithSensorID(v[0]))
		case "locationid", "location_id":
			if id, err := strconv.Atoi(v[0]); err == nil {
				conditions = append(conditions, WithLocationID(id))
			}
		case "severity":
			if s, err := types.ParseSeverity(v[0]); err == nil {
				conditions = append(conditions, WithSeverity(s))
			}
		case "limit":
			if limit, err := strconv.Atoi(v[0]); err == nil && limit > 0 {
				conditions = append(conditions, WithLimit(min(limit, MaxLimit)))
			} else {
				log.Debug("ignoring invalid limit", "limit", v[0])
			}
		case "offset":
			if offset, err := strconv.Atoi(v[0]); err == nil && offset >= 0 {
				conditions = append(conditions, WithOffset(offset))
			} else {
				log.Debug("ignoring invalid offset", "offset", v[0])
			}
		case "sortorder":
			conditions = append(conditions, WithSortDesc(strings.EqualFold(v[0], "desc")))
		case "since":
			if t, err := time.Parse(time.RFC3339, v[0]); err == nil {
				conditions = append(conditions, WithSince(t))
			}
		case "until":
			if t, err := time.Parse(time.RFC3339, v[0]); err == nil {
				conditions = append(conditions, WithUntil(t))
			}
		default:
			log.Debug("unknown query parameter", "param", k, "value", v[0])
		}
	}
	return conditions
}
