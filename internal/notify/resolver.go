package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
	"github.com/spacecadet3008/Kristo-mfalme/internal/store"
)

// Resolver expands a notification's target descriptor into the concrete
// member list. Members without a phone number are included on purpose:
// the dispatcher logs a failed attempt for them, which keeps
// total_recipients honest against the intended audience.
type Resolver struct {
	members store.MemberStore
}

func NewResolver(members store.MemberStore) *Resolver {
	return &Resolver{members: members}
}

func (r *Resolver) Resolve(ctx context.Context, n *domain.Notification) ([]domain.Member, error) {
	switch n.TargetType {
	case domain.TargetMember:
		if n.TargetID == "" {
			return nil, nil
		}
		m, err := r.members.GetByID(ctx, n.TargetID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("resolve member target: %w", err)
		}
		return []domain.Member{*m}, nil

	case domain.TargetMinistry:
		if n.TargetID == "" {
			return nil, nil
		}
		members, err := r.members.ActiveByMinistry(ctx, n.TargetID)
		if err != nil {
			return nil, fmt.Errorf("resolve ministry target: %w", err)
		}
		return members, nil

	case domain.TargetCommunity:
		if n.TargetID == "" {
			return nil, nil
		}
		members, err := r.members.ActiveByCommunity(ctx, n.TargetID)
		if err != nil {
			return nil, fmt.Errorf("resolve community target: %w", err)
		}
		return members, nil

	case domain.TargetAll:
		members, err := r.members.AllActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve all-members target: %w", err)
		}
		return members, nil

	default:
		return nil, nil
	}
}
