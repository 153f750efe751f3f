package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopnet/marketplace/internal/models"
	"github.com/shopnet/marketplace/internal/repo"
	"github.com/shopnet/marketplace/internal/transport"
)

type GroupingService struct {
	Repo *repo.GormRepo
}

// SendRequest creates a pending edge from the caller's active shop to
// the receiver. Whatever status the client sent is ignored.
func (s *GroupingService) SendRequest(ctx context.Context, userUID uuid.UUID, req transport.CreateGroupingRequest) (*models.UserGroup, error) {
	_, sender, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}

	receiver, err := s.Repo.ShopByUID(ctx, req.Receiver)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown receiver shop", ErrValidation)
		}
		return nil, err
	}
	if receiver.ID == sender.ID {
		return nil, fmt.Errorf("%w: cannot send a request to your own shop", ErrValidation)
	}

	if _, err := s.Repo.GroupByPair(ctx, sender.ID, receiver.ID); err == nil {
		return nil, fmt.Errorf("%w: request already exists", ErrValidation)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	group := &models.UserGroup{
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Status:     models.StatusPending,
	}
	if err := s.Repo.CreateGroup(ctx, group); err != nil {
		return nil, err
	}
	group.Sender = *sender
	group.Receiver = *receiver
	return group, nil
}

// IncomingRequests lists open requests addressed to the active shop.
func (s *GroupingService) IncomingRequests(ctx context.Context, userUID uuid.UUID) ([]models.UserGroup, error) {
	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}
	return s.Repo.IncomingPending(ctx, shop.ID)
}

// OutgoingRequests lists open requests the active shop has sent.
func (s *GroupingService) OutgoingRequests(ctx context.Context, userUID uuid.UUID) ([]models.UserGroup, error) {
	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}
	return s.Repo.OutgoingPending(ctx, shop.ID)
}

// Friends returns the counterpart shop of every accepted edge touching
// the active shop, regardless of which side sent the request.
func (s *GroupingService) Friends(ctx context.Context, userUID uuid.UUID) ([]models.Shop, error) {
	_, shop, err := activeShop(ctx, s.Repo, userUID)
	if err != nil {
		return nil, err
	}

	edges, err := s.Repo.AcceptedEdges(ctx, shop.ID)
	if err != nil {
		return nil, err
	}

	friends := make([]models.Shop, 0, len(edges))
	for _, edge := range edges {
		if edge.SenderID == shop.ID {
			friends = append(friends, edge.Receiver)
		} else {
			friends = append(friends, edge.Sender)
		}
	}
	return friends, nil
}

// GetRequest returns the edge; only the two participants may see it.
func (s *GroupingService) GetRequest(ctx context.Context, userUID, groupUID uuid.UUID) (*models.UserGroup, error) {
	group, err := s.participantEdge(ctx, userUID, groupUID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateStatus accepts or rejects a pending request. Only the user
// owning the receiving shop may decide, and decided requests are
// terminal.
func (s *GroupingService) UpdateStatus(ctx context.Context, userUID, groupUID uuid.UUID, req transport.PatchGroupingRequest) (*models.UserGroup, error) {
	group, err := s.groupByUID(ctx, groupUID)
	if err != nil {
		return nil, err
	}

	receiver, err := s.Repo.UserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if group.Receiver.UserID != receiver.ID {
		return nil, fmt.Errorf("%w: only the receiving shop may decide", ErrForbidden)
	}

	if req.Status != models.StatusAccepted && req.Status != models.StatusRejected {
		return nil, fmt.Errorf("%w: status must be accepted or rejected", ErrValidation)
	}
	if group.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: request already %s", ErrConflict, group.Status)
	}

	group.Status = req.Status
	if err := s.Repo.SaveGroup(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteRequest removes the edge; either participant may do it.
func (s *GroupingService) DeleteRequest(ctx context.Context, userUID, groupUID uuid.UUID) error {
	group, err := s.participantEdge(ctx, userUID, groupUID)
	if err != nil {
		return err
	}
	return s.Repo.DeleteGroup(ctx, group)
}

func (s *GroupingService) groupByUID(ctx context.Context, groupUID uuid.UUID) (*models.UserGroup, error) {
	group, err := s.Repo.GroupByUID(ctx, groupUID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return group, nil
}

func (s *GroupingService) participantEdge(ctx context.Context, userUID, groupUID uuid.UUID) (*models.UserGroup, error) {
	group, err := s.groupByUID(ctx, groupUID)
	if err != nil {
		return nil, err
	}
	caller, err := s.Repo.UserByUID(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if group.Sender.UserID != caller.ID && group.Receiver.UserID != caller.ID {
		return nil, fmt.Errorf("%w: not a participant", ErrForbidden)
	}
	return group, nil
}
