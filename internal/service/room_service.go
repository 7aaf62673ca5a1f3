package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"roomfeed/internal/models"
	"roomfeed/internal/repository"
)

type RoomService interface {
	CreateRoom(ctx context.Context, name string) (*models.Room, error)
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
}

type roomService struct {
	repo repository.RoomRepository
}

func NewRoomService(repo repository.RoomRepository) RoomService {
	return &roomService{repo: repo}
}

func (s *roomService) CreateRoom(ctx context.Context, name string) (*models.Room, error) {
	if strings.TrimSpace(name) == "" {
		return nil, missingField("name")
	}

	room := &models.Room{Name: name}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", fromRepository(err, ""))
	}

	log.Printf("Room %d created: %s", room.ID, room.Name)
	return room, nil
}

func (s *roomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fromRepository(err, "Room not found")
	}
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}
