// Package iostore implements catalog.AuthorStore with GORM.
// The same code serves PostgreSQL and SQLite connections opened by iodb.
package iostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/bookshelf/pkg/catalog"
	"github.com/gnames/bookshelf/pkg/db"
	"github.com/gnames/bookshelf/pkg/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type store struct {
	operator  db.Operator
	batchSize int
}

// New creates an AuthorStore on top of a connected operator.
// batchSize limits the number of rows in one INSERT statement.
func New(op db.Operator, batchSize int) catalog.AuthorStore {
	if batchSize <= 0 {
		batchSize = 1_000
	}
	return &store{operator: op, batchSize: batchSize}
}

func (s *store) conn(ctx context.Context) (*gorm.DB, error) {
	gormDB := s.operator.GORM()
	if gormDB == nil {
		return nil, NotConnectedError()
	}
	return gormDB.WithContext(ctx), nil
}

// Create inserts a single author.
func (s *store) Create(ctx context.Context, author *schema.Author) error {
	tx, err := s.conn(ctx)
	if err != nil {
		return err
	}

	if err = tx.Create(author).Error; err != nil {
		return CreateError(author.Name, err)
	}
	return nil
}

// BulkCreate inserts authors in batches inside one transaction.
func (s *store) BulkCreate(
	ctx context.Context,
	authors []schema.Author,
	ignoreConflicts bool,
) (int, error) {
	if len(authors) == 0 {
		return 0, nil
	}

	tx, err := s.conn(ctx)
	if err != nil {
		return 0, err
	}

	// GORM writes generated IDs back into the slice.
	batch := slices.Clone(authors)
	if ignoreConflicts {
		tx = tx.Clauses(clause.OnConflict{DoNothing: true})
	}

	res := tx.CreateInBatches(&batch, s.batchSize)
	if res.Error != nil {
		return 0, BulkCreateError(len(authors), res.Error)
	}

	inserted := int(res.RowsAffected)
	slog.Info("Authors bulk insert",
		"candidates", len(authors),
		"inserted", inserted,
		"ignore_conflicts", ignoreConflicts,
	)
	return inserted, nil
}

// List returns a page of authors matching the filter, ordered by ID,
// and the total count of matching authors.
func (s *store) List(
	ctx context.Context,
	filter catalog.AuthorFilter,
) ([]schema.Author, int64, error) {
	tx, err := s.conn(ctx)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	err = tx.Model(&schema.Author{}).
		Scopes(nameContains(filter.Name)).
		Count(&total).Error
	if err != nil {
		return nil, 0, ListError(filter.Name, err)
	}

	q := tx.Scopes(nameContains(filter.Name)).Order("id")
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	authors := make([]schema.Author, 0, filter.Limit)
	if err = q.Find(&authors).Error; err != nil {
		return nil, 0, ListError(filter.Name, err)
	}
	return authors, total, nil
}

// Get returns an author by ID.
func (s *store) Get(ctx context.Context, id uint) (*schema.Author, error) {
	tx, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	var author schema.Author
	err = tx.First(&author, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: id %d", catalog.ErrAuthorNotFound, id)
	}
	if err != nil {
		return nil, GetError(id, err)
	}
	return &author, nil
}

// Ping checks that the database answers.
func (s *store) Ping(ctx context.Context) error {
	tx, err := s.conn(ctx)
	if err != nil {
		return err
	}
	sqlDB, err := tx.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// nameContains limits a query to authors whose name contains the
// given substring, ignoring case.
func nameContains(name string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if name == "" {
			return tx
		}
		pattern := "%" + escapeLike(strings.ToLower(name)) + "%"
		return tx.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}
}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}
