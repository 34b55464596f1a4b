package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	booksTable     = "books"
	defaultTimeout = 3 * time.Second
)

var (
	dialect     = goqu.Dialect("postgres")
	bookColumns = []any{"id", "title", "author", "publish_year", "created_at", "updated_at"}
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
	tracer  trace.Tracer
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PostgresRepo{
		db:      db,
		timeout: timeout,
		tracer:  otel.Tracer("bookcatalog/book"),
	}
}

// begin opens a span and a per-call deadline. The returned func ends both.
func (r *PostgresRepo) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	attrs = append(attrs, attribute.String("db.system", "postgresql"), attribute.String("db.sql.table", booksTable))
	ctx, span := r.tracer.Start(ctx, "books."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	return ctx, func(err error) {
		cancel()
		if err != nil && !errors.Is(err, ErrNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

func (r *PostgresRepo) Create(ctx context.Context, in Input) (b Book, err error) {
	ctx, done := r.begin(ctx, "create")
	defer func() { done(err) }()

	query, args, err := dialect.Insert(booksTable).
		Rows(goqu.Record{
			"id":           uuid.NewString(),
			"title":        in.Title,
			"author":       in.Author,
			"publish_year": in.PublishYear,
		}).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build insert: %w", err)
	}

	b, err = scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return Book{}, fmt.Errorf("insert book: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) List(ctx context.Context) (out []Book, err error) {
	ctx, done := r.begin(ctx, "list")
	defer func() { done(err) }()

	query, args, err := dialect.From(booksTable).
		Select(bookColumns...).
		Order(goqu.C("created_at").Asc(), goqu.C("id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out = []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (b Book, err error) {
	ctx, done := r.begin(ctx, "get", attribute.String("book.id", id))
	defer func() { done(err) }()

	query, args, err := dialect.From(booksTable).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build select: %w", err)
	}

	b, err = scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Update(ctx context.Context, id string, in Input) (b Book, err error) {
	ctx, done := r.begin(ctx, "update", attribute.String("book.id", id))
	defer func() { done(err) }()

	query, args, err := dialect.Update(booksTable).
		Set(goqu.Record{
			"title":        in.Title,
			"author":       in.Author,
			"publish_year": in.PublishYear,
			"updated_at":   goqu.L("NOW()"),
		}).
		Where(goqu.C("id").Eq(id)).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build update: %w", err)
	}

	b, err = scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("update book: %w", err)
	}
	return b, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) (b Book, err error) {
	ctx, done := r.begin(ctx, "delete", attribute.String("book.id", id))
	defer func() { done(err) }()

	query, args, err := dialect.Delete(booksTable).
		Where(goqu.C("id").Eq(id)).
		Returning(bookColumns...).
		Prepared(true).
		ToSQL()
	if err != nil {
		return Book{}, fmt.Errorf("build delete: %w", err)
	}

	b, err = scanBook(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, fmt.Errorf("delete book: %w", err)
	}
	return b, nil
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.PublishYear, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
