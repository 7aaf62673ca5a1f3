package service

import (
	"context"
	"errors"
	"testing"

	"roomfeed/internal/models"
	"roomfeed/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoomService_CreateRoom(t *testing.T) {
	tcases := []struct {
		name      string
		roomName  string
		repoCall  bool
		repoErr   error
		wantErr   error
		wantField string
	}{
		{
			name:     "creates a room",
			roomName: "Kitchen",
			repoCall: true,
		},
		{
			name:      "rejects an empty name",
			roomName:  "",
			wantErr:   ErrValidation,
			wantField: "name",
		},
		{
			name:      "rejects a blank name",
			roomName:  "   ",
			wantErr:   ErrValidation,
			wantField: "name",
		},
		{
			name:     "surfaces store failures",
			roomName: "Kitchen",
			repoCall: true,
			repoErr:  errors.New("db down"),
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &repository.MockRoomRepository{}
			defer repo.AssertExpectations(t)

			if tc.repoCall {
				repo.On("Create", mock.Anything, mock.MatchedBy(func(r *models.Room) bool {
					return r.Name == tc.roomName
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*models.Room).ID = 7
				}).Return(tc.repoErr).Once()
			}

			room, err := NewRoomService(repo).CreateRoom(context.Background(), tc.roomName)

			switch {
			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tc.wantField, verr.Field)
			case tc.repoErr != nil:
				require.ErrorIs(t, err, tc.repoErr)
				assert.Nil(t, room)
			default:
				require.NoError(t, err)
				assert.Equal(t, uint(7), room.ID)
				assert.Equal(t, tc.roomName, room.Name)
			}
		})
	}
}

func TestRoomService_GetRoom(t *testing.T) {
	repo := &repository.MockRoomRepository{}
	defer repo.AssertExpectations(t)

	repo.On("GetByID", mock.Anything, uint(1)).Return(&models.Room{ID: 1, Name: "Hall"}, nil).Once()
	repo.On("GetByID", mock.Anything, uint(2)).Return(nil, repository.ErrNotFound).Once()

	svc := NewRoomService(repo)

	room, err := svc.GetRoom(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Hall", room.Name)

	_, err = svc.GetRoom(context.Background(), 2)
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "Room not found")
}

func TestRoomService_ListRooms(t *testing.T) {
	repo := &repository.MockRoomRepository{}
	defer repo.AssertExpectations(t)

	repo.On("List", mock.Anything).Return([]models.Room{{ID: 1, Name: "Hall"}}, nil).Once()

	rooms, err := NewRoomService(repo).ListRooms(context.Background())
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}
