package postgres

import (
	"fmt"
	"strings"
	"time"

	"zonewatch/internal/domain"

	"github.com/jackc/pgx/v5"
)

// point builds a geography point from two placeholders holding lng and lat.
func point(lngArg, latArg int) string {
	return fmt.Sprintf("ST_SetSRID(ST_MakePoint($%d::float8, $%d::float8), 4326)::geography", lngArg, latArg)
}

// pgTime drops sub-microsecond precision so values read back compare equal.
func pgTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	v := pgTime(t)
	return &v
}

func kindStrings(kinds []domain.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// where accumulates AND-ed conditions with numbered placeholders.
type where struct {
	conds []string
	args  []any
}

func (w *where) arg(v any) int {
	w.args = append(w.args, v)
	return len(w.args)
}

func (w *where) add(format string, vals ...any) {
	idx := make([]any, len(vals))
	for i, v := range vals {
		idx[i] = w.arg(v)
	}
	w.conds = append(w.conds, fmt.Sprintf(format, idx...))
}

func (w *where) addRaw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

const zoneColumns = `id, kind, ST_Y(center::geometry), ST_X(center::geometry), radius_m, status, started_at, opened_at, restored_at`

func zoneColumnsOf(alias string) string {
	return fmt.Sprintf("%[1]s.id, %[1]s.kind, ST_Y(%[1]s.center::geometry), ST_X(%[1]s.center::geometry), %[1]s.radius_m, %[1]s.status, %[1]s.started_at, %[1]s.opened_at, %[1]s.restored_at", alias)
}

func scanZone(row pgx.Row) (domain.Zone, error) {
	var (
		z          domain.Zone
		status     string
		restoredAt *time.Time
	)
	if err := row.Scan(&z.ID, &z.Kind, &z.Center.Lat, &z.Center.Lng, &z.RadiusM, &status, &z.StartedAt, &z.OpenedAt, &restoredAt); err != nil {
		return domain.Zone{}, err
	}
	state, err := domain.ZoneStateFromRow(domain.ZoneStatus(status), restoredAt)
	if err != nil {
		return domain.Zone{}, err
	}
	z.State = state
	return z, nil
}
