package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"architylez/internal/domain/models"
	"architylez/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// rowScanner общий интерфейс pgx.Row и pgx.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

const uniqueViolation = "23505"

func newBuilder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

// buildUpdate собирает UPDATE ... RETURNING по разрешенным полям.
// Ключи сортируются, чтобы SQL был детерминированным.
func buildUpdate(
	sb sq.StatementBuilderType,
	table string,
	id uuid.UUID,
	updates map[string]interface{},
	allowed map[string]bool,
	returning []string,
) (string, []interface{}, error) {
	if len(updates) == 0 {
		return "", nil, errors.New("no fields to update")
	}

	fields := make([]string, 0, len(updates))
	for field := range updates {
		if !allowed[field] {
			return "", nil, fmt.Errorf("field '%s' is not allowed for update", field)
		}
		fields = append(fields, field)
	}
	sort.Strings(fields)

	builder := sb.Update(table).Set("updated_at", time.Now().UTC())
	for _, field := range fields {
		builder = builder.Set(field, jsonb(updates[field]))
	}

	return builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(returning)).
		ToSql()
}

func deleteByID(ctx context.Context, db *pgxpool.Pool, sb sq.StatementBuilderType, table string, id uuid.UUID) error {
	query, args, err := sb.Delete(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func countRows(ctx context.Context, db *pgxpool.Pool, sb sq.StatementBuilderType, table string) (int, error) {
	query, args, err := sb.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	if err := db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error execute query: %w (SQL: %s)", err, query)
	}

	return count, nil
}

// mapError переводит ошибки pgx в доменные сигнальные ошибки.
func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return storage.ErrAlreadyExists
	}

	return err
}

// jsonb приводит значения к виду, который pgx пишет в jsonb и text[] колонки.
// Пустая ссылка становится NULL, пустой список пустым массивом.
func jsonb(value interface{}) interface{} {
	switch v := value.(type) {
	case models.AssetRef:
		if v.IsZero() {
			return nil
		}
		b, _ := json.Marshal(v)
		return b
	case *models.AssetRef:
		if v == nil {
			return nil
		}
		return jsonb(*v)
	case models.AssetRefs:
		if v == nil {
			v = models.AssetRefs{}
		}
		b, _ := json.Marshal([]models.AssetRef(v))
		return b
	case []string:
		return nonNilStrings(v)
	case json.RawMessage:
		if v == nil {
			return []byte("null")
		}
		return []byte(v)
	default:
		return value
	}
}

func joinColumns(columns []string) string {
	res := ""
	for i, c := range columns {
		if i > 0 {
			res += ", "
		}
		res += c
	}
	return res
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
