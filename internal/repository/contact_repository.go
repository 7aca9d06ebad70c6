package repository

import (
	"context"
	"fmt"

	"architylez/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

var contactColumns = []string{
	"id", "name", "email", "phone", "service", "message", "created_at", "updated_at",
}

type ContactRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewContactRepository(db *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{
		db: db,
		sb: newBuilder(),
	}
}

func (r *ContactRepo) SaveContact(ctx context.Context, contact models.ContactForm) (*models.ContactForm, error) {
	const op = "repository.contact_repository.SaveContact"

	query, args, err := r.sb.Insert("contact_forms").
		Columns("name", "email", "phone", "service", "message").
		Values(contact.Name, contact.Email, contact.Phone, contact.Service, contact.Message).
		Suffix("RETURNING " + joinColumns(contactColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := scanContact(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapError(err))
	}

	return saved, nil
}

func (r *ContactRepo) GetContacts(ctx context.Context) ([]models.ContactForm, error) {
	const op = "repository.contact_repository.GetContacts"

	query, args, err := r.sb.Select(contactColumns...).
		From("contact_forms").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	contacts := make([]models.ContactForm, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		contacts = append(contacts, *contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return contacts, nil
}

func (r *ContactRepo) DeleteContact(ctx context.Context, id uuid.UUID) error {
	const op = "repository.contact_repository.DeleteContact"

	if err := deleteByID(ctx, r.db, r.sb, "contact_forms", id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func scanContact(row rowScanner) (*models.ContactForm, error) {
	var c models.ContactForm
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.Service,
		&c.Message,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}
