package repository

import (
	"context"
	"strings"

	"tailorshop/internal/database"
	"tailorshop/internal/pkg/apperr"
	"tailorshop/internal/pkg/pagination"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type scope = func(*gorm.DB) *gorm.DB

// crud is the shared gorm plumbing behind every table repository. Optional tables
// answer SchemaNotReady before touching SQL when the schema reports them missing.
type crud[T any] struct {
	db       *gorm.DB
	schema   *database.Schema
	table    string
	resource string
}

func newCrud[T any](db *gorm.DB, schema *database.Schema, table, resource string) crud[T] {
	return crud[T]{db: db, schema: schema, table: table, resource: resource}
}

func (c crud[T]) conn(ctx context.Context) (*gorm.DB, error) {
	if !c.schema.Has(c.table) {
		return nil, apperr.SchemaNotReady(c.table)
	}
	return database.Conn(ctx, c.db), nil
}

func (c crud[T]) classify(err error) error {
	if database.IsUndefinedTable(err) {
		c.schema.MarkMissing(c.table)
	}
	return database.Classify(err, c.resource)
}

func (c crud[T]) Create(ctx context.Context, v *T) error {
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return c.classify(db.Omit(clause.Associations).Create(v).Error)
}

func (c crud[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	var v T
	if err := db.First(&v, id).Error; err != nil {
		return nil, c.classify(err)
	}
	return &v, nil
}

// Update writes every column of v.
func (c crud[T]) Update(ctx context.Context, v *T) error {
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}
	return c.classify(db.Omit(clause.Associations).Save(v).Error)
}

func (c crud[T]) Delete(ctx context.Context, id int64) error {
	db, err := c.conn(ctx)
	if err != nil {
		return err
	}
	var v T
	res := db.Delete(&v, id)
	if res.Error != nil {
		return c.classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(c.resource)
	}
	return nil
}

// All returns every row in id order.
func (c crud[T]) All(ctx context.Context) ([]T, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := db.Order("id").Find(&out).Error; err != nil {
		return nil, c.classify(err)
	}
	return out, nil
}

func (c crud[T]) Count(ctx context.Context, scopes ...scope) (int64, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.Model(new(T)).Scopes(scopes...).Count(&n).Error; err != nil {
		return 0, c.classify(err)
	}
	return n, nil
}

func (c crud[T]) page(ctx context.Context, p pagination.Params, order string, scopes ...scope) ([]T, int64, error) {
	return c.pageWith(ctx, p, order, nil, scopes...)
}

// pageWith counts and fetches one page; onFind (preloads) applies to the fetch only.
func (c crud[T]) pageWith(ctx context.Context, p pagination.Params, order string, onFind scope, scopes ...scope) ([]T, int64, error) {
	db, err := c.conn(ctx)
	if err != nil {
		return nil, 0, err
	}
	q := db.Model(new(T)).Scopes(scopes...)

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, c.classify(err)
	}
	find := q.Session(&gorm.Session{}).Order(order).Limit(p.Limit).Offset(p.Offset())
	if onFind != nil {
		find = onFind(find)
	}
	out := []T{}
	if err := find.Find(&out).Error; err != nil {
		return nil, 0, c.classify(err)
	}
	return out, total, nil
}

func eq(column string, v any) scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where(column+" = ?", v) }
}

// like matches any of columns case-insensitively; both dialects support LOWER/LIKE.
func like(term string, columns ...string) scope {
	term = strings.ToLower(strings.TrimSpace(term))
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + term + "%"
		parts := make([]string, len(columns))
		args := make([]any, len(columns))
		for i, col := range columns {
			parts[i] = "LOWER(" + col + ") LIKE ?"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(parts, " OR ")+")", args...)
	}
}

// when applies s only if cond holds.
func when(cond bool, s scope) scope {
	if !cond {
		return func(db *gorm.DB) *gorm.DB { return db }
	}
	return s
}
