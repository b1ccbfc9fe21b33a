package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

// GetUser obtiene un usuario por ID; (nil, nil) si no existe.
func (s *Storage) GetUser(ctx context.Context, id string) (*entity.User, error) {
	snap, err := s.get(ctx, ColUsers, id)
	if err != nil || snap == nil {
		return nil, err
	}
	return decodeUser(snap)
}

// GetUserByEmail busca por igualdad de email; (nil, nil) si no hay coincidencias.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	q := repository.Query{Collection: ColUsers, Limit: 1}.Where("email", strings.TrimSpace(email))
	snaps, err := s.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario por email: %w", err)
	}
	if len(snaps) == 0 {
		return nil, nil
	}
	return decodeUser(&snaps[0])
}

// CreateUser inserta el usuario y lo relee. La unicidad del email se verifica con una
// consulta previa (ErrEmailAlreadyExists); no hay índice único en el store.
func (s *Storage) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := s.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.timestamp()
	}
	snap, err := s.insert(ctx, ColUsers, encodeUser(user))
	if err != nil {
		return nil, fmt.Errorf("crear usuario: %w", err)
	}
	return decodeUser(snap)
}

// UpdateUser mezcla los campos no nil y relee. domain.ErrNotFound si el ID no existe.
func (s *Storage) UpdateUser(ctx context.Context, id string, updates entity.UserUpdate) (*entity.User, error) {
	if updates.IsEmpty() {
		u, err := s.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, domain.ErrNotFound
		}
		return u, nil
	}
	fields := repository.Document{}
	if updates.Email != nil {
		email := strings.TrimSpace(*updates.Email)
		if email == "" {
			return nil, domain.ErrInvalidInput
		}
		other, err := s.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, domain.ErrEmailAlreadyExists
		}
		fields["email"] = email
	}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Phone != nil {
		fields["phone"] = *updates.Phone
	}
	if updates.Address != nil {
		fields["address"] = *updates.Address
	}
	snap, err := s.merge(ctx, ColUsers, id, fields)
	if err != nil {
		return nil, err
	}
	return decodeUser(snap)
}
