package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
)

const memberColumns = `id, name, COALESCE(code, ''), COALESCE(telephone, ''), active,
	COALESCE(ministry_id, ''), COALESCE(community_id, ''), created_at`

type MemberStore struct {
	db *DB
}

func NewMemberStore(db *DB) *MemberStore {
	return &MemberStore{db: db}
}

func (s *MemberStore) Create(ctx context.Context, m *domain.Member) error {
	query := `
		INSERT INTO members (id, name, code, telephone, active, ministry_id, community_id, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NULLIF($6, ''), NULLIF($7, ''), $8)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		m.ID,
		m.Name,
		m.Code,
		m.Telephone,
		m.Active,
		m.MinistryID,
		m.CommunityID,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

func (s *MemberStore) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	var m domain.Member
	err := s.db.Pool.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.Name, &m.Code, &m.Telephone, &m.Active,
		&m.MinistryID, &m.CommunityID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &m, nil
}

func (s *MemberStore) List(ctx context.Context) ([]domain.Member, error) {
	return s.query(ctx, `SELECT `+memberColumns+` FROM members ORDER BY name`)
}

func (s *MemberStore) AllActive(ctx context.Context) ([]domain.Member, error) {
	return s.query(ctx, `SELECT `+memberColumns+` FROM members WHERE active ORDER BY name`)
}

func (s *MemberStore) ActiveByMinistry(ctx context.Context, ministryID string) ([]domain.Member, error) {
	return s.query(ctx, `SELECT `+memberColumns+` FROM members WHERE active AND ministry_id = $1 ORDER BY name`, ministryID)
}

func (s *MemberStore) ActiveByCommunity(ctx context.Context, communityID string) ([]domain.Member, error) {
	return s.query(ctx, `SELECT `+memberColumns+` FROM members WHERE active AND community_id = $1 ORDER BY name`, communityID)
}

func (s *MemberStore) query(ctx context.Context, query string, args ...any) ([]domain.Member, error) {
	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Code, &m.Telephone, &m.Active,
			&m.MinistryID, &m.CommunityID, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}

type MinistryStore struct {
	db *DB
}

func NewMinistryStore(db *DB) *MinistryStore {
	return &MinistryStore{db: db}
}

func (s *MinistryStore) Create(ctx context.Context, m *domain.Ministry) error {
	query := `INSERT INTO ministries (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := s.db.Pool.Exec(ctx, query, m.ID, m.Name, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to create ministry: %w", err)
	}
	return nil
}

func (s *MinistryStore) List(ctx context.Context) ([]domain.Ministry, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT id, name, created_at FROM ministries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ministries: %w", err)
	}
	defer rows.Close()

	var ministries []domain.Ministry
	for rows.Next() {
		var m domain.Ministry
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, err
		}
		ministries = append(ministries, m)
	}

	return ministries, rows.Err()
}

type CommunityStore struct {
	db *DB
}

func NewCommunityStore(db *DB) *CommunityStore {
	return &CommunityStore{db: db}
}

func (s *CommunityStore) Create(ctx context.Context, c *domain.Community) error {
	query := `INSERT INTO communities (id, name, created_at) VALUES ($1, $2, $3)`
	if _, err := s.db.Pool.Exec(ctx, query, c.ID, c.Name, c.CreatedAt); err != nil {
		return fmt.Errorf("failed to create community: %w", err)
	}
	return nil
}

func (s *CommunityStore) List(ctx context.Context) ([]domain.Community, error) {
	rows, err := s.db.Pool.Query(ctx, `SELECT id, name, created_at FROM communities ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list communities: %w", err)
	}
	defer rows.Close()

	var communities []domain.Community
	for rows.Next() {
		var c domain.Community
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		communities = append(communities, c)
	}

	return communities, rows.Err()
}
