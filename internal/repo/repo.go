package repo

import (
	"context"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormRepo owns every storefront table. Schema is validated at config time
// and prefixed to each table name.
type GormRepo struct {
	DB     *gorm.DB
	Schema string
}

func (r *GormRepo) table(name string) string {
	if r.Schema == "" {
		return name
	}
	return r.Schema + "." + name
}

// quoted renders a schema-qualified table name for raw SQL.
func (r *GormRepo) quoted(name string) string {
	if r.Schema == "" {
		return pq.QuoteIdentifier(name)
	}
	return pq.QuoteIdentifier(r.Schema) + "." + pq.QuoteIdentifier(name)
}

func (r *GormRepo) from(ctx context.Context, name string) *gorm.DB {
	return r.DB.WithContext(ctx).Table(r.table(name))
}
